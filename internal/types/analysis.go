// Package types defines the shared data structures that flow through the RFP
// analysis pipeline.
package types

// Section is a structured slice of the RFP document produced by the
// sectioning stage.
type Section struct {
	Name       string `json:"name"`
	Content    string `json:"content"`
	PageNumber *int   `json:"page_number,omitempty"`
}

// BreakdownEntry is one category of the scoring breakdown.
type BreakdownEntry struct {
	Score         float64 `json:"score"`
	Max           float64 `json:"max"`
	WeightedScore float64 `json:"weighted_score"`
	Notes         string  `json:"notes,omitempty"`
}

// AnalysisRecord is the single mutable carrier threaded through the pipeline.
// Only the orchestrator writes to it; stages receive it read-only and return
// a StageUpdate with their partial outputs.
type AnalysisRecord struct {
	ID         string `json:"id"`
	SourceText string `json:"-"`

	// Sectioning stage output.
	Sections []Section `json:"sections"`

	// Extraction stage output. Immutable once produced.
	Requirements   []Requirement `json:"requirements"`
	ProjectSummary string        `json:"project_summary,omitempty"`
	BudgetInfo     *string       `json:"budget_info,omitempty"`
	TimelineInfo   *string       `json:"timeline_info,omitempty"`

	// Matching stage output. One entry per requirement when the stage ran.
	RequirementMatches []RequirementMatch `json:"requirement_matches"`

	// Scoring stage output. Written exactly once.
	OverallScore     float64                   `json:"overall_score"`
	ScoringBreakdown map[string]BreakdownEntry `json:"scoring_breakdown,omitempty"`
	Recommendations  []string                  `json:"recommendations,omitempty"`

	// Proposal stage output.
	Proposal *Proposal `json:"proposal,omitempty"`

	// Errors is an append-only log. Entries are never removed or reordered.
	Errors []string `json:"errors"`

	// CurrentStage names the most recently completed stage.
	CurrentStage string `json:"current_stage"`
}

// StageUpdate is a partial update returned by a stage. Nil / empty fields are
// left untouched by the orchestrator; Errors are appended to the record's log.
type StageUpdate struct {
	Sections []Section

	Requirements   []Requirement
	ProjectSummary *string
	BudgetInfo     *string
	TimelineInfo   *string

	RequirementMatches []RequirementMatch

	OverallScore     *float64
	ScoringBreakdown map[string]BreakdownEntry
	Recommendations  []string

	Proposal *Proposal

	Errors []string
}
