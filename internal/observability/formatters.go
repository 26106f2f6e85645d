// Package observability provides formatted terminal output for the chat CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-prep/internal/db"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the interactive session
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
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintInterview outputs the interview record the session is grounded in.
func (p *Printer) PrintInterview(interview *db.Interview) {
	if interview == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", interview.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", interview.JobTitle))

	if desc := strings.TrimSpace(interview.JobDescription); desc != "" {
		sb.WriteString("\nJob Description:\n")
		lines := strings.Split(desc, "\n")
		count := min(len(lines), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s\n", lines[i]))
		}
		if len(lines) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(lines)-maxItemsToShow))
		}
	}

	p.printBox("INTERVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResume outputs a summary of the resume backing the system prompt.
func (p *Printer) PrintResume(resume *db.Resume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	writeSection := func(name, content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		if len(content) > 50 {
			content = content[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-10s%s\n", name+":", content))
	}

	writeSection("Skills", resume.Skills)
	writeSection("Projects", resume.Projects)
	writeSection("Other", resume.Other)

	if len(resume.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(resume.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := resume.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s\n", exp.Position))
		}
		if len(resume.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experience)-maxItemsToShow))
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("(empty resume)")
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDegraded warns that the session is running without interview context.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDegraded(reason string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "⚠ CONTEXT UNAVAILABLE - USING DEFAULT PERSONA")
	if reason != "" {
		if len(reason) > boxWidth-4 {
			reason = reason[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, reason)
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintError outputs a failed exchange so the user knows to retry.
func (p *Printer) PrintError(err error) {
	if err == nil {
		return
	}
	p.printBox("EXCHANGE FAILED", err.Error())
}
