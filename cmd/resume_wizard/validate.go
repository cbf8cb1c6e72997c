package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/classify"
	"github.com/jonathan/resume-wizard/internal/mapper"
	"github.com/jonathan/resume-wizard/internal/observability"
	"github.com/jonathan/resume-wizard/internal/schemas"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume document step by step",
	Long:  "Runs every wizard step validator over a resume document and, when it passes, checks the mapped save payload against the payload schema.",
	RunE:  runValidate,
}

var (
	validateInput  string
	validateFormat string
	validateOutput string
	validateJSON   bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to document JSON, or - for stdin (required)")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", formatWorking, "Input format: working, persisted or extraction")
	validateCmd.Flags().StringVarP(&validateOutput, "out", "o", "", "Write the validation result JSON to this file")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the validation result as JSON instead of a report")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := readInput(validateInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	doc, warnings, err := loadWorkingDocument(data, validateFormat)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", w)
	}

	result := validation.ValidateAll(&doc)

	// Schema check only makes sense for documents the wizard would submit
	if result.IsValid {
		if err := schemas.ValidatePayload(mapper.ToPersistencePayload(doc)); err != nil {
			var schemaErr *schemas.ValidationError
			if !errors.As(err, &schemaErr) {
				return fmt.Errorf("failed to check payload schema: %w", err)
			}
			result.Violations = classify.FromFieldErrors(schemaErr.FieldErrors(), types.SourceSchema)
			result.Errors = types.Messages(result.Violations)
			result.IsValid = false
		}
	}

	if validateOutput != "" {
		if err := writeJSON(cmd.OutOrStdout(), validateOutput, result); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if validateJSON {
		if err := writeJSON(out, "", result); err != nil {
			return err
		}
	} else {
		p := observability.NewPrinter(out)
		p.PrintDocumentSummary(doc)
		p.PrintValidationReport(result.ReportByStep())
	}

	if result.IsValid {
		_, _ = fmt.Fprintf(out, "Validation passed: No violations found\n")
		return nil
	}
	return fmt.Errorf("validation found %d violation(s)", len(result.Errors))
}
