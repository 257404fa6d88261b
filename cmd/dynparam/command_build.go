package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sourceplane/dynparam/internal/param"
	"github.com/sourceplane/dynparam/internal/runner"
	"github.com/spf13/cobra"
)

var (
	buildValues  []string
	buildExecute bool
	buildWorkDir string
)

var buildCmd = &cobra.Command{
	Use:   "build <job>",
	Short: "Bind parameter values and run a job",
	Long:  "Bind the submitted values of every parameter of a job and run its steps with them exported as environment variables (dry-run unless --execute).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		form, err := parseSetFlags(buildValues)
		if err != nil {
			return err
		}

		job, ok := env.store.JobByFullName(args[0])
		if !ok {
			return fmt.Errorf("job not found: %s: %w", args[0], param.ErrNotFound)
		}

		values, err := env.descriptor.BindJob(identityFor(job.FullName), job, form)
		if err != nil {
			return err
		}

		dryRun := !buildExecute
		if dryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "□ Dry-run mode enabled. Use --execute to run commands.")
		}
		r := runner.NewRunner(buildWorkDir, cmd.OutOrStdout(), cmd.ErrOrStderr(), dryRun)
		return r.Run(cmd.Context(), job.FullName, job.Steps, values...)
	},
}

// parseSetFlags turns NAME=VALUE pairs into submitted form values
func parseSetFlags(pairs []string) (url.Values, error) {
	form := url.Values{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, expected NAME=VALUE", pair)
		}
		form.Add(name, value)
	}
	return form, nil
}

func registerBuildCommand(root *cobra.Command) {
	root.AddCommand(buildCmd)

	buildCmd.Flags().StringArrayVarP(&buildValues, "set", "s", nil, "Parameter value as NAME=VALUE (repeatable)")
	buildCmd.Flags().BoolVarP(&buildExecute, "execute", "x", false, "Actually execute commands (default is dry-run)")
	buildCmd.Flags().StringVar(&buildWorkDir, "workdir", ".", "Working directory for job steps")
}
