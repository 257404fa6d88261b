package main

import (
	"fmt"

	"github.com/sourceplane/dynparam/internal/render"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:     "jobs",
	Aliases: []string{"job"},
	Short:   "List configured jobs and their parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		if outputFormat == render.FormatText {
			fmt.Fprint(cmd.OutOrStdout(), render.NewJobViewer(env.jobs()).ViewTree())
			return nil
		}

		docs := make(map[string]interface{}, len(env.files))
		for _, f := range env.files {
			docs[f.FullName] = f.Document
		}
		return render.Write(cmd.OutOrStdout(), docs, outputFormat)
	},
}

func registerJobsCommand(root *cobra.Command) {
	root.AddCommand(jobsCmd)
}
