// Package pipeline runs the five-stage RFP analysis: sectioning, requirement
// extraction, catalog matching, scoring and proposal composition. A single
// AnalysisRecord is threaded through the stages; only the orchestrator writes
// to it, and no stage failure stops the run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/A3V1/B2B-RFP/internal/catalog"
	"github.com/A3V1/B2B-RFP/internal/extraction"
	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/matching"
	"github.com/A3V1/B2B-RFP/internal/proposal"
	"github.com/A3V1/B2B-RFP/internal/scoring"
	"github.com/A3V1/B2B-RFP/internal/sectioning"
	"github.com/A3V1/B2B-RFP/internal/types"
)

// Stage is one step of the pipeline. Run receives the record read-only and
// returns a partial update; it must not retain or mutate the record.
type Stage interface {
	Name() string
	Run(ctx context.Context, rec *types.AnalysisRecord) types.StageUpdate
}

// Orchestrator owns the stage sequence and the routing between stages.
type Orchestrator struct {
	sectioning Stage
	extraction Stage
	matching   Stage
	scoring    Stage
	proposal   Stage
}

// New wires the standard five stages. A nil client runs every stage on its
// deterministic path; a nil source leaves matching without a catalog.
func New(client llm.Client, source catalog.Source) *Orchestrator {
	return &Orchestrator{
		sectioning: sectioning.NewStage(client),
		extraction: extraction.NewStage(client),
		matching:   matching.NewStage(source, client),
		scoring:    scoring.NewStage(client),
		proposal:   proposal.NewStage(client),
	}
}

// Run executes the pipeline for one document and returns the completed
// record. Routing: a run with no sections terminates after sectioning, and a
// run with no requirements skips matching.
func (o *Orchestrator) Run(ctx context.Context, id, sourceText string) *types.AnalysisRecord {
	rec := &types.AnalysisRecord{
		ID:         id,
		SourceText: sourceText,
		Errors:     []string{},
	}

	o.runStage(ctx, o.sectioning, rec)
	if len(rec.Sections) == 0 {
		return rec
	}

	o.runStage(ctx, o.extraction, rec)

	if len(rec.Requirements) > 0 {
		o.runStage(ctx, o.matching, rec)
	}

	o.runStage(ctx, o.scoring, rec)
	o.runStage(ctx, o.proposal, rec)

	return rec
}

// runStage executes one stage, converting a panic into an error log entry so
// the remaining stages still run.
func (o *Orchestrator) runStage(ctx context.Context, stage Stage, rec *types.AnalysisRecord) {
	update := func() (update types.StageUpdate) {
		defer func() {
			if r := recover(); r != nil {
				update = types.StageUpdate{
					Errors: []string{fmt.Sprintf("%s: stage panicked: %v", stage.Name(), r)},
				}
			}
		}()
		return stage.Run(ctx, rec)
	}()

	merge(rec, update)
	rec.CurrentStage = stage.Name()
}

// merge applies a partial update to the record. Unset fields are left alone
// and errors are appended, never replaced.
func merge(rec *types.AnalysisRecord, update types.StageUpdate) {
	if update.Sections != nil {
		rec.Sections = update.Sections
	}
	if update.Requirements != nil {
		rec.Requirements = update.Requirements
	}
	if update.ProjectSummary != nil {
		rec.ProjectSummary = *update.ProjectSummary
	}
	if update.BudgetInfo != nil {
		rec.BudgetInfo = update.BudgetInfo
	}
	if update.TimelineInfo != nil {
		rec.TimelineInfo = update.TimelineInfo
	}
	if update.RequirementMatches != nil {
		rec.RequirementMatches = update.RequirementMatches
	}
	if update.OverallScore != nil {
		rec.OverallScore = *update.OverallScore
	}
	if update.ScoringBreakdown != nil {
		rec.ScoringBreakdown = update.ScoringBreakdown
	}
	if update.Recommendations != nil {
		rec.Recommendations = update.Recommendations
	}
	if update.Proposal != nil {
		rec.Proposal = update.Proposal
	}
	rec.Errors = append(rec.Errors, update.Errors...)
}
