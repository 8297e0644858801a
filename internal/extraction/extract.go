// Package extraction converts structured RFP sections into a set of typed
// requirements via LLM extraction with JSON Schema validation. A malformed
// or unavailable model response is recoverable: the stage reports the error
// and returns an empty requirement set, which short-circuits matching.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/prompts"
	"github.com/A3V1/B2B-RFP/internal/schemas"
	"github.com/A3V1/B2B-RFP/internal/types"
)

// Stage is the requirement extraction stage.
type Stage struct {
	client llm.Client
}

// NewStage creates the extraction stage.
func NewStage(client llm.Client) *Stage {
	return &Stage{client: client}
}

// Name returns the stage name used in the error log and stage marker.
func (s *Stage) Name() string { return "extraction" }

// Run extracts requirements from the record's sections.
func (s *Stage) Run(ctx context.Context, rec *types.AnalysisRecord) types.StageUpdate {
	if len(rec.Sections) == 0 {
		return types.StageUpdate{
			Errors: []string{"extraction: no sections to analyze"},
		}
	}

	if s.client == nil {
		return types.StageUpdate{
			Errors: []string{"extraction: no language model configured"},
		}
	}

	parsed, err := s.extract(ctx, rec.Sections)
	if err != nil {
		return types.StageUpdate{
			Errors: []string{fmt.Sprintf("extraction: %v", err)},
		}
	}

	summary := parsed.ProjectSummary
	return types.StageUpdate{
		Requirements:   NormalizeRequirements(parsed.Requirements),
		ProjectSummary: &summary,
		BudgetInfo:     parsed.BudgetInfo,
		TimelineInfo:   parsed.TimelineInfo,
	}
}

// Response is the decoded extraction payload before normalization.
type Response struct {
	Requirements   []types.Requirement `json:"requirements"`
	ProjectSummary string              `json:"project_summary"`
	BudgetInfo     *string             `json:"budget_info"`
	TimelineInfo   *string             `json:"timeline_info"`
}

func (s *Stage) extract(ctx context.Context, sections []types.Section) (*Response, error) {
	var sb strings.Builder
	for _, sec := range sections {
		fmt.Fprintf(&sb, "=== %s ===\n%s\n\n", sec.Name, sec.Content)
	}

	template := prompts.MustGet("analysis.json", "extract-requirements")
	prompt := prompts.Format(template, map[string]string{
		"Sections": sb.String(),
	})

	responseText, err := s.client.Generate(ctx, llm.TierStandard, prompt)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content", Cause: err}
	}

	raw := []byte(llm.CleanJSONBlock(responseText))
	if err := schemas.Validate(schemas.Extraction, raw); err != nil {
		return nil, &ParseError{Message: "unexpected response shape", Cause: err}
	}

	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}
	return &parsed, nil
}
