package main

import (
	"errors"
	"fmt"

	"github.com/sourceplane/dynparam/internal/param"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate job definitions and their dependent options",
	Long:  "Load and schema-check every job, then resolve the dependent options of every dynamic parameter for each primary option to surface unreadable files and malformed lines.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "□ Loading jobs...")
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ %d jobs are valid\n", len(env.files))

		fmt.Fprintln(out, "□ Resolving dependent options...")
		resolver := param.NewResolver(optionsDir)
		var errs []error
		for _, job := range env.jobs() {
			for _, p := range job.Parameters {
				if p.Kind != param.Kind {
					continue
				}
				primaries := p.Dynamic.PrimaryOptionList()
				if len(primaries) == 0 {
					primaries = []string{""}
				}
				for _, primary := range primaries {
					labels, err := resolver.ResolveSecondaryOptions(p.Dynamic, primary)
					if err != nil {
						errs = append(errs, fmt.Errorf("job %s parameter %s: %w", job.FullName, p.Name, err))
						break
					}
					if len(labels) == 0 {
						fmt.Fprintf(out, "  ! %s/%s: no dependent options for %q\n", job.FullName, p.Name, primary)
					}
				}
			}
		}

		if len(errs) > 0 {
			return errors.Join(errs...)
		}
		fmt.Fprintln(out, "✓ All validation passed")
		return nil
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}
