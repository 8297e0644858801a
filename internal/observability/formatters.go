// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/A3V1/B2B-RFP/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSections outputs a summary of the document sections.
func (p *Printer) PrintSections(sections []types.Section) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d sections:\n\n", len(sections)))

	count := min(len(sections), maxItemsToShow)
	for i := 0; i < count; i++ {
		name := sections[i].Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s (%d chars)\n", name, len(sections[i].Content)))
	}
	if len(sections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more sections", len(sections)-maxItemsToShow))
	}

	p.printBox("DOCUMENT SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRequirements outputs the extracted requirements with their key specs.
func (p *Printer) PrintRequirements(requirements []types.Requirement) {
	if len(requirements) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d requirements:\n\n", len(requirements)))

	count := min(len(requirements), maxItemsToShow)
	for i := 0; i < count; i++ {
		req := requirements[i]
		desc := req.Description
		if len(desc) > 45 {
			desc = desc[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s  [%s/%s]\n", req.ID, req.Category, req.Priority))
		sb.WriteString(fmt.Sprintf("  %s\n", desc))

		specs := []string{}
		if req.Specifications.VoltageKV != nil {
			specs = append(specs, fmt.Sprintf("%gkV", *req.Specifications.VoltageKV))
		}
		if req.Specifications.CrossSectionMM2 != nil {
			specs = append(specs, fmt.Sprintf("%gmm²", *req.Specifications.CrossSectionMM2))
		}
		if req.Specifications.Conductor != nil {
			specs = append(specs, *req.Specifications.Conductor)
		}
		if len(specs) > 0 {
			sb.WriteString(fmt.Sprintf("  [%s]\n", strings.Join(specs, " ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(requirements) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more requirements", len(requirements)-maxItemsToShow))
	}

	p.printBox("EXTRACTED REQUIREMENTS", sb.String())
}

// PrintMatches outputs the best match per requirement with coverage scores.
func (p *Printer) PrintMatches(matches []types.RequirementMatch) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched %d requirements:\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		rm := matches[i]
		sb.WriteString(fmt.Sprintf("%s  coverage %.0f%%\n", rm.RequirementID, rm.CoverageScore))
		if rm.BestMatch != nil {
			name := rm.BestMatch.Name
			if len(name) > 40 {
				name = name[:37] + "..."
			}
			stock := "out of stock"
			if rm.BestMatch.InStock {
				stock = "in stock"
			}
			sb.WriteString(fmt.Sprintf("  → %s (%s, %s)\n", name, rm.BestMatch.SKU, stock))
		} else {
			sb.WriteString("  → no match found\n")
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more requirements", len(matches)-maxItemsToShow))
	}

	p.printBox("CATALOG MATCHES", sb.String())
}

// PrintResult outputs the final run outcome.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResult(result types.RunResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:        %s\n", result.Status))
	sb.WriteString(fmt.Sprintf("Overall score: %.1f/100\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Requirements:  %d matched of %d\n", result.MatchedCount, result.RequirementCount))

	if result.Proposal != nil {
		sb.WriteString(fmt.Sprintf("Proposal:      %s %s\n",
			result.Proposal.Currency, result.Proposal.TotalEstimatedValue.StringFixed(2)))
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		count := min(len(result.Recommendations), 3)
		for i := 0; i < count; i++ {
			rec := result.Recommendations[i]
			if len(rec) > 50 {
				rec = rec[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
	}

	if len(result.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠ %d errors logged during the run\n", len(result.Errors)))
	}

	p.printBox("ANALYSIS RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
