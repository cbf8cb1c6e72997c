// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-wizard/internal/submit"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to max runes, marking the cut with "..."
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// PrintSteps outputs the step list with current, completed and error markers.
func (p *Printer) PrintSteps(statuses []wizard.StepStatus) {
	if len(statuses) == 0 {
		return
	}

	var sb strings.Builder
	for _, st := range statuses {
		marker := " "
		switch {
		case st.Current:
			marker = "▶"
		case st.Completed:
			marker = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s", marker, st.Ordinal+1, st.Title))
		if st.HasErrors {
			sb.WriteString(fmt.Sprintf("  ⚠ %d", st.ErrorCount))
		}
		sb.WriteString("\n")
	}

	p.printBox("WIZARD STEPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocumentSummary outputs the resume name, template and section sizes.
func (p *Printer) PrintDocumentSummary(doc types.WorkingDocument) {
	var sb strings.Builder

	name := doc.ResumeName
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Resume:    %s\n", name))
	if info := doc.PersonalInfo; info != nil {
		sb.WriteString(fmt.Sprintf("Owner:     %s %s\n", info.FirstName, info.LastName))
	}
	template := doc.SelectedTemplate
	if template == "" {
		template = "(none)"
	}
	sb.WriteString(fmt.Sprintf("Template:  %s\n", template))
	sb.WriteString("\n")

	sections := []struct {
		label string
		n     int
	}{
		{"Experience", len(doc.Experience)},
		{"Education", len(doc.Education)},
		{"Skills", len(doc.Skills)},
		{"Languages", len(doc.Languages)},
		{"Certificates", len(doc.Certificates)},
		{"Links", len(doc.Links)},
		{"Projects", len(doc.PersonalProjects)},
	}
	for _, s := range sections {
		sb.WriteString(fmt.Sprintf("  • %-13s %d\n", s.label, s.n))
	}

	p.printBox("RESUME SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationReport outputs local validation messages grouped by step.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationReport(reports []validation.StepReport) {
	total := 0
	for _, r := range reports {
		total += len(r.Messages)
	}
	if total == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n", total))

	for _, r := range reports {
		if len(r.Messages) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n⚠ %d. %s\n", r.Ordinal+1, r.Title))
		count := min(len(r.Messages), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s\n", r.Messages[i]))
		}
		if len(r.Messages) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Messages)-maxItemsToShow))
		}
	}

	p.printBox("VALIDATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSubmitResult outputs the outcome of a save and, on failure, where the
// problems are.
func (p *Printer) PrintSubmitResult(res submit.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Outcome:  %s\n", res.Outcome))

	switch res.Outcome {
	case submit.OutcomeSuccess:
		sb.WriteString(fmt.Sprintf("Resume:   %s\n", res.Name))
		sb.WriteString(fmt.Sprintf("ID:       %s\n", res.ResumeID))
	case submit.OutcomeFailed:
		sb.WriteString(fmt.Sprintf("Error:    %s\n", res.Banner))
	}

	if s := res.Summary; s != nil {
		if len(s.Current) > 0 {
			sb.WriteString("\nOn this step:\n")
			for _, msg := range s.Current {
				sb.WriteString(fmt.Sprintf("  • %s\n", msg))
			}
		}
		if len(s.Elsewhere) > 0 {
			sb.WriteString("\nAlso check:\n")
			for _, sc := range s.Elsewhere {
				sb.WriteString(fmt.Sprintf("  → %d. %s (%d)\n", sc.Ordinal+1, sc.Title, sc.Count))
			}
		}
		if len(s.General) > 0 {
			sb.WriteString("\nGeneral:\n")
			for _, msg := range s.General {
				sb.WriteString(fmt.Sprintf("  • %s\n", msg))
			}
		}
	}

	p.printBox("SUBMIT RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
