// Package commands implements the CLI commands for tabclean.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tabclean/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tabclean",
	Short: "Clean tabular datasets with a fixed pipeline of optional stages",
	Long: `Tabclean loads a CSV, XLSX or HTML table, runs the cleaning stages you
enable in a fixed order, and writes the cleaned dataset as CSV together
with a cleaning log.

Stages always run in this order, whichever flags are given:
  remove_duplicates, handle_missing, remove_outliers, standardize_columns,
  remove_special_chars, remove_invalid_entries, trim_whitespace

Examples:
  # Drop duplicates and trim whitespace
  tabclean clean people.csv --remove-duplicates --trim-whitespace

  # Run every stage and write a JSON report
  tabclean clean sales.xlsx --all -o sales_clean.csv --report-format json

  # Enable stages from the environment
  TABCLEAN_CLEAN_HANDLE_MISSING=true tabclean clean data.csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
}

// configErr holds the failure to read an explicitly requested config file.
var configErr error

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.tabclean.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("json-logs", false, "emit logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
}

func initConfig() {
	configErr = nil
	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".tabclean")
		viper.SetConfigType("yaml")
	}

	// Environment variables: clean.trim_whitespace -> TABCLEAN_CLEAN_TRIM_WHITESPACE
	viper.SetEnvPrefix("TABCLEAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// A missing default config file is fine; an explicit one must load.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

// initLogger applies the global logging flags.
func initLogger() {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("json_logs"),
	})
	if f := viper.ConfigFileUsed(); f != "" {
		logger.Debug("config loaded", "path", f)
	}
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
