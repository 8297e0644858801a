// Package sectioning splits raw RFP text into structured sections. It
// prefers LLM-backed extraction and falls back to a deterministic
// heading-based splitter when the model is unavailable or returns malformed
// output.
package sectioning

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

// Stage is the first pipeline stage. A nil client skips the model path and
// uses the deterministic splitter directly.
type Stage struct {
	client llm.Client
}

// NewStage creates the sectioning stage.
func NewStage(client llm.Client) *Stage {
	return &Stage{client: client}
}

// Name returns the stage name used in the error log and stage marker.
func (s *Stage) Name() string { return "sectioning" }

// Run produces the record's sections. An empty document yields zero
// sections, which terminates the run upstream.
func (s *Stage) Run(ctx context.Context, rec *types.AnalysisRecord) types.StageUpdate {
	if strings.TrimSpace(rec.SourceText) == "" {
		return types.StageUpdate{
			Errors: []string{"sectioning: document text is empty"},
		}
	}

	if s.client == nil {
		return types.StageUpdate{Sections: SplitSections(rec.SourceText)}
	}

	sections, err := s.parseWithModel(ctx, rec.SourceText)
	if err != nil {
		return types.StageUpdate{
			Sections: SplitSections(rec.SourceText),
			Errors:   []string{fmt.Sprintf("sectioning: %v (using heading splitter)", err)},
		}
	}

	if len(sections) == 0 {
		sections = SplitSections(rec.SourceText)
	}
	return types.StageUpdate{Sections: sections}
}

// sectionsResponse mirrors the JSON shape expected from the model.
type sectionsResponse struct {
	Sections []struct {
		Name       string `json:"name"`
		Content    string `json:"content"`
		PageNumber *int   `json:"page_number"`
	} `json:"sections"`
}

func (s *Stage) parseWithModel(ctx context.Context, document string) ([]types.Section, error) {
	template := prompts.MustGet("analysis.json", "parse-sections")
	prompt := prompts.Format(template, map[string]string{
		"Document": document,
	})

	responseText, err := s.client.Generate(ctx, llm.TierLite, prompt)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content", Cause: err}
	}

	raw := []byte(llm.CleanJSONBlock(responseText))
	if err := schemas.Validate(schemas.Sections, raw); err != nil {
		return nil, &ParseError{Message: "unexpected response shape", Cause: err}
	}

	var parsed sectionsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}

	sections := make([]types.Section, 0, len(parsed.Sections))
	for _, sec := range parsed.Sections {
		if strings.TrimSpace(sec.Content) == "" {
			continue
		}
		name := sec.Name
		if name == "" {
			name = "Unknown"
		}
		sections = append(sections, types.Section{
			Name:       name,
			Content:    sec.Content,
			PageNumber: sec.PageNumber,
		})
	}
	return sections, nil
}
