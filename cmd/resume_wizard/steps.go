package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/observability"
	"github.com/jonathan/resume-wizard/internal/wizard"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

var stepsJSON bool

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the wizard steps in order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if stepsJSON {
			return writeJSON(cmd.OutOrStdout(), "", steps.All())
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintSteps(wizard.NewController().Steps())
		return nil
	},
}

func init() {
	stepsCmd.Flags().BoolVar(&stepsJSON, "json", false, "Print step descriptors as JSON")
	rootCmd.AddCommand(stepsCmd)
}
