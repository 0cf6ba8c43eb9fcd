package observability

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jonathan/resuexpress/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of records to display per section
	maxItemsToShow = 5
	// progressWidth is the number of cells in the progress bar
	progressWidth = 20
)

// StepInfo is the subset of a wizard step view the printer shows.
type StepInfo struct {
	Step       int
	TotalSteps int
	Title      string
	Progress   float64
}

// TemplateInfo describes one selectable template.
type TemplateInfo struct {
	Key         string
	DisplayName string
}

// Printer handles formatted output for CLI status commands
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs a human-readable summary of the résumé document.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(doc.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(doc.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(doc.Phone)))
	sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", orDash(doc.LinkedIn)))
	sb.WriteString(fmt.Sprintf("Summary:  %s\n", orDash(doc.Summary)))
	sb.WriteString(fmt.Sprintf("Skills:   %s\n", orDash(doc.Skills)))
	sb.WriteString(fmt.Sprintf("Template: %s   Step: %d/%d\n", doc.SelectedTemplate, doc.CurrentStep, types.TotalSteps))

	for _, section := range types.Sections {
		records := doc.Records(section)
		sb.WriteString(fmt.Sprintf("\n%s (%d):\n", section, len(records)))
		count := min(len(records), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i, recordLabel(section, records[i])))
		}
		if len(records) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(records)-maxItemsToShow))
		}
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStep outputs the current step with a progress bar.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(step StepInfo) {
	filled := int(math.Round(step.Progress * progressWidth / 100))
	filled = max(0, min(filled, progressWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)
	fmt.Fprintf(p.out, "Step %d of %d: %s\n", step.Step, step.TotalSteps, step.Title)
	fmt.Fprintf(p.out, "%s %3.0f%%\n", bar, step.Progress)
}

// PrintTemplates lists the registered templates, marking the selected one.
func (p *Printer) PrintTemplates(templates []TemplateInfo, selected string) {
	if len(templates) == 0 {
		return
	}
	var sb strings.Builder
	for i, t := range templates {
		marker := " "
		if t.Key == selected {
			marker = "●"
		}
		sb.WriteString(fmt.Sprintf("%s %-10s %s", marker, t.Key, t.DisplayName))
		if i < len(templates)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("TEMPLATES", sb.String())
}

// PrintNotice outputs a blocking notice for the user.
func (p *Printer) PrintNotice(message string) {
	if message == "" {
		return
	}
	p.printBox("⚠ NOTICE", message)
}

func recordLabel(section types.Section, r types.Record) string {
	var primary, secondary string
	switch section {
	case types.SectionExperience:
		primary, secondary = r["jobTitle"], r["company"]
	case types.SectionEducation:
		primary, secondary = r["degree"], r["institution"]
	case types.SectionProjects:
		primary = r["name"]
	}
	switch {
	case primary == "" && secondary == "":
		return "(empty)"
	case secondary == "":
		return primary
	case primary == "":
		return secondary
	default:
		return primary + " @ " + secondary
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
