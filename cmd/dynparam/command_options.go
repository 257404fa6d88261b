package main

import (
	"github.com/sourceplane/dynparam/internal/render"
	"github.com/spf13/cobra"
)

var (
	primaryValue string
	showPrimary  bool
)

var optionsCmd = &cobra.Command{
	Use:   "options <job> <parameter>",
	Short: "List the options of a dynamic parameter",
	Long:  "List the primary options of a dynamic parameter, or with --value the dependent options allowed for that primary value.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		identity := identityFor(args[0])
		if showPrimary || !cmd.Flags().Changed("value") {
			items := env.descriptor.FillValueItems(identity, args[1])
			return render.Write(cmd.OutOrStdout(), items.Values(), outputFormat)
		}

		items, err := env.descriptor.FillDynamicValueItems(identity, args[1], primaryValue)
		if err != nil {
			return err
		}
		return render.Write(cmd.OutOrStdout(), items.Values(), outputFormat)
	},
}

func registerOptionsCommand(root *cobra.Command) {
	root.AddCommand(optionsCmd)

	optionsCmd.Flags().StringVarP(&primaryValue, "value", "v", "", "Primary value to list dependent options for")
	optionsCmd.Flags().BoolVar(&showPrimary, "primary", false, "List primary options even when --value is set")
}
