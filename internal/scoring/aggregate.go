// Package scoring reduces per-requirement match results into one overall
// assessment. The language model applies the weighted rubric (technical 40%,
// price 25%, availability 20%, compliance 15%); the deterministic fallback
// reports average coverage and stock availability.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/prompts"
	"github.com/A3V1/B2B-RFP/internal/schemas"
	"github.com/A3V1/B2B-RFP/internal/types"
)

// Stage is the scoring pipeline stage.
type Stage struct {
	client llm.Client
}

// NewStage creates the scoring stage.
func NewStage(client llm.Client) *Stage {
	return &Stage{client: client}
}

// Name returns the stage name used in the error log and stage marker.
func (s *Stage) Name() string { return "scoring" }

// Run writes the aggregate outputs exactly once. Empty input is a
// well-defined zero-score outcome, never a failure.
func (s *Stage) Run(ctx context.Context, rec *types.AnalysisRecord) types.StageUpdate {
	matches := rec.RequirementMatches

	if len(matches) == 0 {
		zero := 0.0
		return types.StageUpdate{
			OverallScore:     &zero,
			ScoringBreakdown: map[string]types.BreakdownEntry{},
			Recommendations:  []string{"No requirements were matched. Nothing to evaluate."},
			Errors:           []string{"scoring: no matches to evaluate"},
		}
	}

	stats := computeStats(matches)

	if s.client != nil {
		overall, breakdown, recommendations, err := s.aggregateWithModel(ctx, rec, stats)
		if err == nil {
			return types.StageUpdate{
				OverallScore:     &overall,
				ScoringBreakdown: breakdown,
				Recommendations:  recommendations,
			}
		}

		overall, breakdown, recommendations = Fallback(stats)
		return types.StageUpdate{
			OverallScore:     &overall,
			ScoringBreakdown: breakdown,
			Recommendations:  recommendations,
			Errors:           []string{fmt.Sprintf("scoring: model scoring failed, using fallback: %v", err)},
		}
	}

	overall, breakdown, recommendations := Fallback(stats)
	return types.StageUpdate{
		OverallScore:     &overall,
		ScoringBreakdown: breakdown,
		Recommendations:  recommendations,
	}
}

// Stats are the deterministic aggregates feeding both scoring paths.
type Stats struct {
	TotalRequirements int
	MatchedCount      int
	AverageCoverage   float64
	InStockCount      int
	StockRatio        float64
}

// computeStats derives the aggregate inputs, defining 0/0 ratios as 0.
func computeStats(matches []types.RequirementMatch) Stats {
	stats := Stats{TotalRequirements: len(matches)}

	total := 0.0
	for _, rm := range matches {
		total += rm.CoverageScore
		if rm.BestMatch != nil {
			stats.MatchedCount++
			if rm.BestMatch.InStock {
				stats.InStockCount++
			}
		}
	}

	if stats.TotalRequirements > 0 {
		stats.AverageCoverage = total / float64(stats.TotalRequirements)
	}
	if stats.MatchedCount > 0 {
		stats.StockRatio = float64(stats.InStockCount) / float64(stats.MatchedCount)
	}
	return stats
}

// Fallback is the deterministic aggregation: overall score is the average
// coverage, with technical-coverage and availability breakdown entries and
// plain numeric recommendations.
func Fallback(stats Stats) (float64, map[string]types.BreakdownEntry, []string) {
	breakdown := map[string]types.BreakdownEntry{
		"technical_coverage": {
			Score:         stats.AverageCoverage,
			Max:           40,
			WeightedScore: stats.AverageCoverage * 0.4,
			Notes:         fmt.Sprintf("Matched %d/%d requirements", stats.MatchedCount, stats.TotalRequirements),
		},
		"availability": {
			Score:         stats.StockRatio * 100,
			Max:           20,
			WeightedScore: stats.StockRatio * 20,
			Notes:         fmt.Sprintf("%d items in stock", stats.InStockCount),
		},
	}

	recommendations := []string{
		fmt.Sprintf("Matched %d of %d requirements", stats.MatchedCount, stats.TotalRequirements),
		fmt.Sprintf("Average coverage: %.1f%%", stats.AverageCoverage),
	}

	return stats.AverageCoverage, breakdown, recommendations
}

// aggregateResponse mirrors the JSON shape expected from the model.
type aggregateResponse struct {
	OverallScore     float64                         `json:"overall_score"`
	ScoringBreakdown map[string]types.BreakdownEntry `json:"scoring_breakdown"`
	Recommendations  []string                        `json:"recommendations"`
}

// matchSummary is the digest sent to the model.
type matchSummary struct {
	TotalRequirements  int                 `json:"total_requirements"`
	MatchedCount       int                 `json:"matched_requirements"`
	AverageCoverage    float64             `json:"average_coverage_score"`
	InStockRatio       string              `json:"in_stock_ratio"`
	ProjectSummary     string              `json:"project_summary,omitempty"`
	Timeline           *string             `json:"timeline,omitempty"`
	RequirementDetails []requirementDetail `json:"requirement_details"`
}

type requirementDetail struct {
	RequirementID string     `json:"requirement_id"`
	Description   string     `json:"description"`
	CoverageScore float64    `json:"coverage_score"`
	HasMatch      bool       `json:"has_match"`
	BestMatch     *bestMatch `json:"best_match,omitempty"`
}

type bestMatch struct {
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	InStock       bool    `json:"in_stock"`
	LeadTimeDays  int     `json:"lead_time_days"`
	PricePerMeter float64 `json:"price_per_meter"`
}

func (s *Stage) aggregateWithModel(ctx context.Context, rec *types.AnalysisRecord, stats Stats) (float64, map[string]types.BreakdownEntry, []string, error) {
	summary := matchSummary{
		TotalRequirements: stats.TotalRequirements,
		MatchedCount:      stats.MatchedCount,
		AverageCoverage:   stats.AverageCoverage,
		InStockRatio:      fmt.Sprintf("%d/%d", stats.InStockCount, stats.MatchedCount),
		ProjectSummary:    rec.ProjectSummary,
		Timeline:          rec.TimelineInfo,
	}
	for _, rm := range rec.RequirementMatches {
		detail := requirementDetail{
			RequirementID: rm.RequirementID,
			Description:   rm.RequirementDescription,
			CoverageScore: rm.CoverageScore,
			HasMatch:      rm.BestMatch != nil,
		}
		if rm.BestMatch != nil {
			detail.BestMatch = &bestMatch{
				Name:          rm.BestMatch.Name,
				Score:         rm.BestMatch.Score,
				InStock:       rm.BestMatch.InStock,
				LeadTimeDays:  rm.BestMatch.LeadTimeDays,
				PricePerMeter: rm.BestMatch.PricePerMeter,
			}
		}
		summary.RequirementDetails = append(summary.RequirementDetails, detail)
	}

	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return 0, nil, nil, err
	}

	template := prompts.MustGet("analysis.json", "aggregate-scores")
	prompt := prompts.Format(template, map[string]string{
		"Summary": string(summaryJSON),
	})

	responseText, err := s.client.Generate(ctx, llm.TierStandard, prompt)
	if err != nil {
		return 0, nil, nil, err
	}

	raw := []byte(llm.CleanJSONBlock(responseText))
	if err := schemas.Validate(schemas.Aggregate, raw); err != nil {
		return 0, nil, nil, err
	}

	var parsed aggregateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return 0, nil, nil, err
	}

	if parsed.ScoringBreakdown == nil {
		parsed.ScoringBreakdown = map[string]types.BreakdownEntry{}
	}
	return parsed.OverallScore, parsed.ScoringBreakdown, parsed.Recommendations, nil
}
