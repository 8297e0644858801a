package matching

import (
	"context"
	"fmt"

	"github.com/A3V1/B2B-RFP/internal/catalog"
	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/types"
)

// Stage is the matching pipeline stage. It acquires one catalog session per
// invocation and releases it before returning, whatever happens inside.
type Stage struct {
	source catalog.Source
	engine *Engine
}

// NewStage creates the matching stage.
func NewStage(source catalog.Source, client llm.Client) *Stage {
	return &Stage{source: source, engine: NewEngine(client)}
}

// Name returns the stage name used in the error log and stage marker.
func (s *Stage) Name() string { return "matching" }

// Run produces one RequirementMatch per requirement. Catalog or scoring
// failures degrade to empty or computed matches; the stage never leaves a
// requirement without an entry.
func (s *Stage) Run(ctx context.Context, rec *types.AnalysisRecord) types.StageUpdate {
	if len(rec.Requirements) == 0 {
		return types.StageUpdate{
			RequirementMatches: []types.RequirementMatch{},
			Errors:             []string{"matching: no requirements to match"},
		}
	}

	if s.source == nil {
		matches := make([]types.RequirementMatch, 0, len(rec.Requirements))
		for _, req := range rec.Requirements {
			matches = append(matches, emptyMatch(req))
		}
		return types.StageUpdate{
			RequirementMatches: matches,
			Errors:             []string{"matching: no catalog configured"},
		}
	}

	session, err := s.source.Acquire(ctx)
	if err != nil {
		matches := make([]types.RequirementMatch, 0, len(rec.Requirements))
		for _, req := range rec.Requirements {
			matches = append(matches, emptyMatch(req))
		}
		return types.StageUpdate{
			RequirementMatches: matches,
			Errors:             []string{fmt.Sprintf("matching: catalog unavailable: %v", err)},
		}
	}
	defer session.Release()

	var errs []string
	matches := make([]types.RequirementMatch, 0, len(rec.Requirements))

	for _, req := range rec.Requirements {
		candidates, err := RetrieveCandidates(ctx, session, req.Specifications)
		if err != nil {
			errs = append(errs, fmt.Sprintf("matching: %s: catalog query failed: %v", req.ID, err))
			matches = append(matches, emptyMatch(req))
			continue
		}

		result, scoreErr := s.engine.Score(ctx, req, candidates)
		if scoreErr != nil {
			errs = append(errs, fmt.Sprintf("matching: %s: model scoring failed, using computed scores: %v", req.ID, scoreErr))
		}

		rm := types.RequirementMatch{
			RequirementID:          req.ID,
			RequirementDescription: req.Description,
			Matches:                result.Matches,
			CoverageScore:          result.CoverageScore,
		}
		if rm.Matches == nil {
			// Keep "matches" serializing as [] rather than null.
			rm.Matches = []types.ComponentMatch{}
		}
		if len(result.Matches) > 0 {
			rm.BestMatch = &result.Matches[0]
		}
		matches = append(matches, rm)
	}

	return types.StageUpdate{RequirementMatches: matches, Errors: errs}
}

func emptyMatch(req types.Requirement) types.RequirementMatch {
	return types.RequirementMatch{
		RequirementID:          req.ID,
		RequirementDescription: req.Description,
		Matches:                []types.ComponentMatch{},
	}
}
