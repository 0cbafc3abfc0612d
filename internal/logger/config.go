package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeLocation = "Local"

	// special OutputPath values
	OutputStdout  = "stdout"
	OutputStderr  = "stderr"
	OutputDiscard = "discard"
)

type (
	// GlobalConfig is the application wide logging configuration.
	GlobalConfig struct {
		DefaultLevel  LogLevel
		PackageLevels map[string]LogLevel
		Writer        io.Writer
		ConsoleFormat bool
		ShowCaller    bool
		TimeLocation  string
	}

	// FileConfig is the YAML representation of GlobalConfig.
	FileConfig struct {
		DefaultLevel  string            `yaml:"defaultLevel"`
		PackageLevels map[string]string `yaml:"packageLevels"`
		OutputPath    string            `yaml:"outputPath"`
		// ConsoleFormat is detected from the output when not set
		ConsoleFormat *bool  `yaml:"consoleFormat"`
		ShowCaller    bool   `yaml:"showCaller"`
		TimeLocation  string `yaml:"timeLocation"`
	}
)

// defaultConfiguration logs INFO and up to stderr, human readable when stderr is a terminal.
func defaultConfiguration() GlobalConfig {
	return GlobalConfig{
		DefaultLevel:  INFO,
		PackageLevels: map[string]LogLevel{},
		Writer:        os.Stderr,
		ConsoleFormat: isTerminal(os.Stderr),
		TimeLocation:  defaultTimeLocation,
	}
}

// LoadFileConfig reads logger configuration from YAML file.
func LoadFileConfig(fileName string) (*FileConfig, error) {
	f, err := os.Open(filepath.Clean(fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read logger config file: %w", err)
	}
	defer f.Close()

	cfg := &FileConfig{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to unmarshal logger config: %w", err)
	}
	return cfg, nil
}

// GlobalConfig converts file configuration into GlobalConfig, opening the output if needed.
func (fc *FileConfig) GlobalConfig() (GlobalConfig, error) {
	defaultLevel, err := ParseLevel(fc.DefaultLevel)
	if err != nil {
		return GlobalConfig{}, err
	}
	packageLevels := make(map[string]LogLevel, len(fc.PackageLevels))
	for k, v := range fc.PackageLevels {
		if packageLevels[k], err = ParseLevel(v); err != nil {
			return GlobalConfig{}, fmt.Errorf("package %s: %w", k, err)
		}
	}
	w, err := OutputWriter(fc.OutputPath)
	if err != nil {
		return GlobalConfig{}, err
	}
	cfg := GlobalConfig{
		DefaultLevel:  defaultLevel,
		PackageLevels: packageLevels,
		Writer:        w,
		ShowCaller:    fc.ShowCaller,
		TimeLocation:  fc.TimeLocation,
	}
	if fc.ConsoleFormat != nil {
		cfg.ConsoleFormat = *fc.ConsoleFormat
	} else {
		cfg.ConsoleFormat = isTerminal(w)
	}
	if fc.OutputPath == OutputDiscard {
		cfg.DefaultLevel = NONE
	}
	return cfg, nil
}

/*
OutputWriter returns writer for the log output. Besides file name
path may be one of the special values "stdout", "stderr" or "discard".
Empty path means stderr.
*/
func OutputWriter(path string) (io.Writer, error) {
	switch strings.ToLower(path) {
	case "", OutputStderr:
		return os.Stderr, nil
	case OutputStdout:
		return os.Stdout, nil
	case OutputDiscard, os.DevNull:
		return io.Discard, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating log file directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // -rw-------
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
