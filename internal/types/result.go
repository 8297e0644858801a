package types

import "github.com/shopspring/decimal"

// Run statuses reported to callers. A run that reached the terminal stage
// with a non-empty error log is completed_with_errors; the error log is the
// only thing that distinguishes the two.
const (
	StatusRunning             = "running"
	StatusCompleted           = "completed"
	StatusCompletedWithErrors = "completed_with_errors"
)

// LineItem is one priced row of the commercial proposal.
type LineItem struct {
	RequirementID string          `json:"requirement_id"`
	Description   string          `json:"description"`
	Product       string          `json:"product"`
	SKU           string          `json:"sku"`
	Quantity      float64         `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	InStock       bool            `json:"in_stock"`
	LeadTimeDays  int             `json:"lead_time_days"`
}

// Proposal is the composed response to the tender.
type Proposal struct {
	Summary             string          `json:"summary"`
	Technical           string          `json:"technical"`
	Commercial          string          `json:"commercial"`
	LineItems           []LineItem      `json:"line_items,omitempty"`
	TotalEstimatedValue decimal.Decimal `json:"total_estimated_value"`
	Currency            string          `json:"currency"`
}

// RunResult is the externally reported outcome of one pipeline run.
type RunResult struct {
	ID                 string                    `json:"id"`
	Status             string                    `json:"status"`
	RequirementCount   int                       `json:"requirement_count"`
	MatchedCount       int                       `json:"matched_count"`
	OverallScore       float64                   `json:"overall_score"`
	ScoringBreakdown   map[string]BreakdownEntry `json:"scoring_breakdown,omitempty"`
	Recommendations    []string                  `json:"recommendations,omitempty"`
	RequirementMatches []RequirementMatch        `json:"requirement_matches"`
	ProjectSummary     string                    `json:"project_summary,omitempty"`
	Proposal           *Proposal                 `json:"proposal,omitempty"`
	Errors             []string                  `json:"errors"`
}
