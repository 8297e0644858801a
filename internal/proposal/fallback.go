package proposal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/A3V1/B2B-RFP/internal/types"
)

// fallbackSummary renders the executive summary template.
func fallbackSummary(rec *types.AnalysisRecord, items []types.LineItem, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("# Executive Summary\n\n")
	if rec.ProjectSummary != "" {
		fmt.Fprintf(&b, "%s\n\n", rec.ProjectSummary)
	}
	fmt.Fprintf(&b, "We are pleased to submit our proposal covering %d of %d identified requirements.\n\n",
		len(items), len(rec.Requirements))
	fmt.Fprintf(&b, "- Overall match score: %.1f/100\n", rec.OverallScore)
	fmt.Fprintf(&b, "- Total estimated value: %s %s\n", currency, total.StringFixed(2))
	if rec.TimelineInfo != nil && *rec.TimelineInfo != "" {
		fmt.Fprintf(&b, "- Stated timeline: %s\n", *rec.TimelineInfo)
	}
	return b.String()
}

// fallbackTechnical renders the compliance matrix template.
func fallbackTechnical(matches []types.RequirementMatch) string {
	var b strings.Builder
	b.WriteString("# Technical Response\n\n")
	b.WriteString("## Compliance Matrix\n\n")
	b.WriteString("| Requirement | Offered Product | Coverage | Status |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, rm := range matches {
		if rm.BestMatch != nil {
			fmt.Fprintf(&b, "| %s | %s (%s) | %.0f%% | Compliant |\n",
				rm.RequirementID, rm.BestMatch.Name, rm.BestMatch.SKU, rm.CoverageScore)
		} else {
			fmt.Fprintf(&b, "| %s | - | 0%% | No match found |\n", rm.RequirementID)
		}
	}
	b.WriteString("\nAll offered products are manufactured and tested to the applicable IS/IEC standards.\n")
	return b.String()
}

// fallbackCommercial renders the pricing schedule template with standard
// commercial terms.
func fallbackCommercial(items []types.LineItem, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("# Commercial Response\n\n")
	b.WriteString("## Pricing Schedule\n\n")
	b.WriteString("| Item | Product | Quantity | Unit Price | Line Total |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, item := range items {
		fmt.Fprintf(&b, "| %s | %s | %.0f %s | %s | %s |\n",
			item.RequirementID, item.Product, item.Quantity, item.Unit,
			item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n**Total estimated value: %s %s**\n\n", currency, total.StringFixed(2))
	b.WriteString("## Terms\n\n")
	b.WriteString("- Payment: 30% advance, 70% on delivery\n")
	b.WriteString("- Offer validity: 90 days from submission\n")
	b.WriteString("- Warranty: 12 months from date of supply\n")
	return b.String()
}
