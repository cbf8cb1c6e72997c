package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/mapper"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between persisted, working and payload resume shapes",
	Long: `Loads a persisted resume, a working document or a CV extraction and writes it
as a working document (--to working) or as the save payload the backend accepts (--to payload).`,
	RunE: runConvert,
}

var (
	convertInput  string
	convertFrom   string
	convertTo     string
	convertOutput string
)

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "in", "i", "", "Path to input JSON, or - for stdin (required)")
	convertCmd.Flags().StringVar(&convertFrom, "from", formatPersisted, "Input format: persisted, working or extraction")
	convertCmd.Flags().StringVar(&convertTo, "to", formatWorking, "Output format: working or payload")
	convertCmd.Flags().StringVarP(&convertOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := convertCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	if convertTo != formatWorking && convertTo != formatPayload {
		return fmt.Errorf("unknown output format %q (want working or payload)", convertTo)
	}

	data, err := readInput(convertInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	doc, warnings, err := loadWorkingDocument(data, convertFrom)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", w)
	}

	if convertTo == formatPayload {
		return writeJSON(cmd.OutOrStdout(), convertOutput, mapper.ToPersistencePayload(doc))
	}
	return writeJSON(cmd.OutOrStdout(), convertOutput, doc)
}
