package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alphabill-org/rbtree/internal/logger"
	"github.com/alphabill-org/rbtree/internal/util"
)

type baseConfiguration struct {
	// The rbtree home directory
	HomeDir string
	// Configuration file URL. If it's relative, then it's relative from the HomeDir.
	CfgFile string
	// Logger configuration file URL.
	LogCfgFile string
}

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "RBT"
	// The default name for config file.
	defaultConfigFile = "config.props"
	// the default rbtree directory.
	defaultRBTreeDir = ".rbtree"
	// The default logger configuration file name.
	defaultLoggerConfigFile = "logger-config.yaml"
	// The configuration key for home directory.
	keyHome = "home"
	// The configuration key for config file name.
	keyConfig = "config"

	flagNameLoggerCfgFile = "logger-config"
	flagNameLogOutputFile = "log-file"
	flagNameLogLevel      = "log-level"
	flagNameLogFormat     = "log-format"

	logFormatConsole = "console"
	logFormatJSON    = "json"
)

func (r *baseConfiguration) addConfigurationFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&r.HomeDir, keyHome, "", fmt.Sprintf("set the RBT_HOME for this invocation (default is %s)", rbtreeHomeDir()))
	cmd.PersistentFlags().StringVar(&r.CfgFile, keyConfig, "", fmt.Sprintf("config file URL (default is $RBT_HOME/%s)", defaultConfigFile))

	cmd.PersistentFlags().StringVar(&r.LogCfgFile, flagNameLoggerCfgFile, defaultLoggerConfigFile, "logger config file URL. Considered absolute if starts with '/'. Otherwise relative from $RBT_HOME.")
	// no default values, unset flag means value from the logger config file is used
	cmd.PersistentFlags().String(flagNameLogOutputFile, "", "log file path or one of the special values: stdout, stderr, discard")
	cmd.PersistentFlags().String(flagNameLogLevel, "", "logging level, one of: NONE, ERROR, WARNING, INFO, DEBUG, TRACE")
	cmd.PersistentFlags().String(flagNameLogFormat, "", "log format, one of: console, json")
}

func (r *baseConfiguration) initConfigFileLocation() {
	// Home dir is loaded from command line argument. If it's not set, then from env. If that's not set, then default is used.
	if r.HomeDir == "" {
		r.HomeDir = os.Getenv(envKey(keyHome))
		if r.HomeDir == "" {
			r.HomeDir = rbtreeHomeDir()
		}
	}

	if r.CfgFile == "" {
		r.CfgFile = os.Getenv(envKey(keyConfig))
		if r.CfgFile == "" {
			r.CfgFile = defaultConfigFile
		}
	}
	if !filepath.IsAbs(r.CfgFile) {
		r.CfgFile = filepath.Join(r.HomeDir, r.CfgFile)
	}
}

// LoggerCfgFilename returns the value of the logger config flag, relative names are resolved against HomeDir.
func (r *baseConfiguration) LoggerCfgFilename() string {
	if !filepath.IsAbs(r.LogCfgFile) {
		return filepath.Join(r.HomeDir, r.LogCfgFile)
	}
	return r.LogCfgFile
}

func (r *baseConfiguration) configFileExists() bool {
	return util.FileExists(r.CfgFile)
}

/*
initLogger updates the global logger configuration from the logger config
file and the log flags of "cmd". Missing default config file is not an error.
*/
func (r *baseConfiguration) initLogger(cmd *cobra.Command) error {
	cfg := &logger.FileConfig{}

	loggerCfgFile := filepath.Clean(r.LoggerCfgFilename())
	if _, err := os.Stat(loggerCfgFile); err != nil {
		defaultLoggerCfg := filepath.Join(r.HomeDir, defaultLoggerConfigFile)
		if !(errors.Is(err, os.ErrNotExist) && loggerCfgFile == defaultLoggerCfg) {
			return fmt.Errorf("opening logger configuration file: %w", err)
		}
	} else {
		if cfg, err = logger.LoadFileConfig(loggerCfgFile); err != nil {
			return err
		}
	}

	getFlagValueIfSet := func(flagName string, value *string) error {
		if cmd.Flags().Changed(flagName) {
			var err error
			if *value, err = cmd.Flags().GetString(flagName); err != nil {
				return fmt.Errorf("failed to read %s flag value: %w", flagName, err)
			}
		}
		return nil
	}

	// flags override values loaded from cfg file.
	if err := getFlagValueIfSet(flagNameLogLevel, &cfg.DefaultLevel); err != nil {
		return err
	}
	if err := getFlagValueIfSet(flagNameLogOutputFile, &cfg.OutputPath); err != nil {
		return err
	}
	var format string
	if err := getFlagValueIfSet(flagNameLogFormat, &format); err != nil {
		return err
	}
	switch consoleFormat := false; strings.ToLower(format) {
	case "":
	case logFormatConsole:
		consoleFormat = true
		cfg.ConsoleFormat = &consoleFormat
	case logFormatJSON:
		cfg.ConsoleFormat = &consoleFormat
	default:
		return fmt.Errorf("unsupported log format %q", format)
	}

	globalCfg, err := cfg.GlobalConfig()
	if err != nil {
		return fmt.Errorf("building logger configuration: %w", err)
	}
	logger.UpdateGlobalConfig(globalCfg)
	return nil
}

func envKey(key string) string {
	return strings.ToUpper(envPrefix + "_" + key)
}

func rbtreeHomeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		panic("default user home dir not defined: " + err.Error())
	}
	return filepath.Join(dir, defaultRBTreeDir)
}
