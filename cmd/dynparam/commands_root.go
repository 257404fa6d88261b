package main

import (
	"github.com/spf13/cobra"
)

var (
	configDir    string
	optionsDir   string
	outputFormat string
	logLevel     string
	logFormat    string
)

var rootCmd = &cobra.Command{
	Use:          "dynparam",
	Short:        "Dependent-option build parameters",
	Long:         "dynparam serves build parameters whose second list of allowed values depends on the value picked in the first list",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "jobs", "Config directory holding <job>/job.yaml definitions (use * or ** for recursive scanning)")
	rootCmd.PersistentFlags().StringVar(&optionsDir, "options-dir", "", "Base directory for relative dependent options files (default: working directory)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text/json/yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log output format (text/json)")

	registerJobsCommand(rootCmd)
	registerOptionsCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerBuildCommand(rootCmd)
	registerServeCommand(rootCmd)
}
