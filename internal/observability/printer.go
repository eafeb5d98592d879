// Package observability provides logging setup and formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// ruleWidth is the width of the horizontal rules around validation reports
	ruleWidth = 70
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// ANSI colors used for validation reports
const (
	colorRed    = "\033[91m"
	colorYellow = "\033[93m"
	colorGreen  = "\033[92m"
	colorBlue   = "\033[94m"
	colorReset  = "\033[0m"
)

// Printer handles formatted output for the CLI
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a new Printer that writes plain text to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// WithColor returns a copy of the printer that wraps report lines in ANSI colors
func (p *Printer) WithColor(enabled bool) *Printer {
	return &Printer{out: p.out, color: enabled}
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
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) colored(color, text string) {
	if p.color {
		fmt.Fprintf(p.out, "%s%s%s\n", color, text, colorReset)
		return
	}
	fmt.Fprintln(p.out, text)
}

// PrintValidationResult outputs every error and warning of a validation run, followed
// by a verdict and the summary line. Info messages are only shown when verbose is set.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationResult(result *types.ValidationResult, verbose bool) {
	if result == nil {
		return
	}
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintf(p.out, "\n%s\nVALIDATION RESULTS\n%s\n", rule, rule)

	if len(result.Errors) > 0 {
		p.colored(colorRed, fmt.Sprintf("\n✗ ERRORS (%d):", len(result.Errors)))
		for _, e := range result.Errors {
			p.colored(colorRed, "  "+e.String())
		}
	}
	if len(result.Warnings) > 0 {
		p.colored(colorYellow, fmt.Sprintf("\n⚠ WARNINGS (%d):", len(result.Warnings)))
		for _, w := range result.Warnings {
			p.colored(colorYellow, "  "+w.String())
		}
	}
	if verbose && len(result.Info) > 0 {
		p.colored(colorBlue, fmt.Sprintf("\nℹ INFO (%d):", len(result.Info)))
		for _, i := range result.Info {
			p.colored(colorBlue, "  "+i.String())
		}
	}

	fmt.Fprintf(p.out, "\n%s\n", rule)
	switch {
	case !result.HasErrors() && !result.HasWarnings():
		p.colored(colorGreen, "✓ VALIDATION PASSED - No issues found!")
	case !result.HasErrors():
		p.colored(colorYellow, "✓ VALIDATION PASSED - With warnings")
	default:
		p.colored(colorRed, "✗ VALIDATION FAILED")
	}
	fmt.Fprintf(p.out, "\nSummary: %s\n%s\n\n", result.Summary(), rule)
}

// PrintProfileInfo outputs a human-readable summary of a profile
func (p *Printer) PrintProfileInfo(info types.ProfileInfo) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", info.Name))
	if info.Slug != "" {
		sb.WriteString(fmt.Sprintf("Slug:     %s\n", info.Slug))
	}
	if info.Description != "" {
		sb.WriteString(fmt.Sprintf("About:    %s\n", info.Description))
	}
	sb.WriteString(fmt.Sprintf("Tags:     %s\n", strings.Join(info.IncludeTags, ", ")))
	if info.MaxBulletsPerJob != nil && *info.MaxBulletsPerJob > 0 {
		sb.WriteString(fmt.Sprintf("Bullets:  %d per job\n", *info.MaxBulletsPerJob))
	} else {
		sb.WriteString("Bullets:  unlimited\n")
	}
	sb.WriteString(fmt.Sprintf("Output:   %s", info.Filename))
	if info.TitleSuffix != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", info.TitleSuffix))
	}

	p.printBox("PROFILE", sb.String())
}

// PrintProfileList outputs the names of the available profiles
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProfileList(names []string) {
	if len(names) == 0 {
		fmt.Fprintln(p.out, "No profiles found")
		return
	}
	fmt.Fprintf(p.out, "Available profiles (%d):\n", len(names))
	for _, name := range names {
		fmt.Fprintf(p.out, "  • %s\n", name)
	}
}

// PrintFilterSummary outputs how many entries of each filtered section survived
func (p *Printer) PrintFilterSummary(sections []string, source, filtered types.Document) {
	var sb strings.Builder

	shown := 0
	for _, section := range sections {
		before, ok := source[section]
		if !ok {
			continue
		}
		if shown == maxItemsToShow*2 {
			sb.WriteString("...\n")
			break
		}
		sb.WriteString(fmt.Sprintf("%-18s %3d → %d\n", section, countEntries(before), countEntries(filtered[section])))
		shown++
	}
	if shown == 0 {
		sb.WriteString("No filterable sections present")
	}

	p.printBox("FILTER SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// countEntries counts list items, or positions for a company mapping
func countEntries(value any) int {
	switch v := value.(type) {
	case []any:
		return len(v)
	case map[string]any:
		total := 0
		for _, positions := range v {
			total += countEntries(positions)
		}
		return total
	default:
		return 0
	}
}
