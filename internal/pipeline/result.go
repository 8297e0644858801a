package pipeline

import "github.com/A3V1/B2B-RFP/internal/types"

// BuildResult projects a completed record into the externally reported
// outcome. The error log alone decides between the two terminal statuses.
func BuildResult(rec *types.AnalysisRecord) types.RunResult {
	status := types.StatusCompleted
	if len(rec.Errors) > 0 {
		status = types.StatusCompletedWithErrors
	}

	matched := 0
	for _, rm := range rec.RequirementMatches {
		if rm.BestMatch != nil {
			matched++
		}
	}

	return types.RunResult{
		ID:                 rec.ID,
		Status:             status,
		RequirementCount:   len(rec.Requirements),
		MatchedCount:       matched,
		OverallScore:       rec.OverallScore,
		ScoringBreakdown:   rec.ScoringBreakdown,
		Recommendations:    rec.Recommendations,
		RequirementMatches: rec.RequirementMatches,
		ProjectSummary:     rec.ProjectSummary,
		Proposal:           rec.Proposal,
		Errors:             rec.Errors,
	}
}
