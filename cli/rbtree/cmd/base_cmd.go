package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alphabill-org/rbtree/internal/logger"
)

var log = logger.CreateForPackage()

const (
	logContextCmd = "cmd"

	// separates list items in env variable and config file values, vectors use space and comma
	listSeparator = ";"
)

type rbtreeApp struct {
	baseCmd    *cobra.Command
	baseConfig *baseConfiguration
}

// New creates a new rbtree application
func New() *rbtreeApp {
	baseCmd, baseConfig := newBaseCmd()
	return &rbtreeApp{baseCmd, baseConfig}
}

// Execute adds all child commands and runs the application
func (a *rbtreeApp) Execute(ctx context.Context) error {
	return a.addAndExecuteCommand(ctx)
}

func (a *rbtreeApp) addAndExecuteCommand(ctx context.Context) error {
	a.baseCmd.AddCommand(newVectorsCmd(a.baseConfig))
	a.baseCmd.AddCommand(newWordsCmd(a.baseConfig))
	a.baseCmd.AddCommand(newIDsCmd(a.baseConfig))
	return a.baseCmd.ExecuteContext(ctx)
}

func newBaseCmd() (*cobra.Command, *baseConfiguration) {
	config := &baseConfiguration{}
	// baseCmd represents the base command when called without any subcommands
	var baseCmd = &cobra.Command{
		Use:           "rbtree",
		Short:         "Sorted sets of vectors, words and unit identifiers",
		Long:          `rbtree loads elements from input files into a red-black tree and prints aggregates of the ordered set.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// If subcommand does not define PersistentPreRunE, the one from base cmd is used.
			if err := initializeConfig(cmd, config); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			// every log line of the run carries the subcommand name
			logger.SetContext(logContextCmd, cmd.Name())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.ClearContext(logContextCmd)
		},
	}
	config.addConfigurationFlags(baseCmd)

	return baseCmd, config
}

func initializeConfig(cmd *cobra.Command, config *baseConfiguration) error {
	var errs []error

	if err := config.initializeConfig(cmd); err != nil {
		errs = append(errs, fmt.Errorf("reading configuration: %w", err))
	}

	if err := config.initLogger(cmd); err != nil {
		errs = append(errs, fmt.Errorf("initializing logger: %w", err))
	}

	return errors.Join(errs...)
}

// initializeConfig reads in config file and ENV variables if set.
func (config *baseConfiguration) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	config.initConfigFileLocation()

	if config.configFileExists() {
		v.SetConfigFile(config.CfgFile)
	}

	// It's okay if there isn't a config file, but it must parse when there is one.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	// flag like --max-elements binds to RBT_MAX_ELEMENTS
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindFlagErr []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == keyHome || f.Name == keyConfig {
			// handled by initConfigFileLocation
			return
		}

		// Environment variables can't have dashes in them
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				bindFlagErr = append(bindFlagErr, fmt.Errorf("binding env to flag %q: %w", f.Name, err))
				return
			}
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			if err := setFlagValue(cmd.Flags(), f, v.Get(f.Name)); err != nil {
				bindFlagErr = append(bindFlagErr, fmt.Errorf("setting flag %q value: %w", f.Name, err))
			}
		}
	})

	return errors.Join(bindFlagErr...)
}

// setFlagValue sets flag value from config. List values given as a single
// string are split on listSeparator, ie RBT_DELETE="1 2;3" is "1 2" and "3".
func setFlagValue(flags *pflag.FlagSet, f *pflag.Flag, val interface{}) error {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		var items []string
		switch t := val.(type) {
		case []interface{}:
			for _, it := range t {
				items = append(items, fmt.Sprintf("%v", it))
			}
		default:
			for _, it := range strings.Split(fmt.Sprintf("%v", t), listSeparator) {
				if it = strings.TrimSpace(it); it != "" {
					items = append(items, it)
				}
			}
		}
		return sv.Replace(items)
	}
	return flags.Set(f.Name, fmt.Sprintf("%v", val))
}
