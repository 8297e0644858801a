// Package proposal composes the final tender response: a priced line-item
// table derived from the best matches, plus summary, technical and commercial
// narratives written by the language model or by deterministic templates.
package proposal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/prompts"
	"github.com/A3V1/B2B-RFP/internal/types"
)

const (
	defaultQuantity = 1000
	defaultUnit     = "meters"
	currency        = "INR"
)

// Stage is the proposal pipeline stage.
type Stage struct {
	client llm.Client
}

// NewStage creates the proposal stage.
func NewStage(client llm.Client) *Stage {
	return &Stage{client: client}
}

// Name returns the stage name used in the error log and stage marker.
func (s *Stage) Name() string { return "proposal" }

// Run builds the proposal. Line items and the total are always computed
// deterministically; only the narrative sections involve the model.
func (s *Stage) Run(ctx context.Context, rec *types.AnalysisRecord) types.StageUpdate {
	items, total := BuildLineItems(rec.Requirements, rec.RequirementMatches)

	p := &types.Proposal{
		LineItems:           items,
		TotalEstimatedValue: total,
		Currency:            currency,
	}

	var errs []string
	if s.client != nil {
		narrative, err := s.composeWithModel(ctx, rec, items, total)
		if err == nil {
			p.Summary = narrative.Summary
			p.Technical = narrative.Technical
			p.Commercial = narrative.Commercial
			return types.StageUpdate{Proposal: p}
		}
		errs = append(errs, fmt.Sprintf("proposal: model composition failed, using templates: %v", err))
	}

	p.Summary = fallbackSummary(rec, items, total)
	p.Technical = fallbackTechnical(rec.RequirementMatches)
	p.Commercial = fallbackCommercial(items, total)

	return types.StageUpdate{Proposal: p, Errors: errs}
}

// BuildLineItems prices one row per requirement that has a best match.
// Quantity falls back to a standard order size when the requirement does not
// state one.
func BuildLineItems(requirements []types.Requirement, matches []types.RequirementMatch) ([]types.LineItem, decimal.Decimal) {
	byID := make(map[string]types.Requirement, len(requirements))
	for _, r := range requirements {
		byID[r.ID] = r
	}

	var items []types.LineItem
	total := decimal.Zero
	for _, rm := range matches {
		if rm.BestMatch == nil {
			continue
		}
		best := rm.BestMatch

		quantity := float64(defaultQuantity)
		unit := defaultUnit
		if req, ok := byID[rm.RequirementID]; ok {
			if req.Specifications.Quantity != nil && *req.Specifications.Quantity > 0 {
				quantity = *req.Specifications.Quantity
			}
			if req.Specifications.QuantityUnit != nil && *req.Specifications.QuantityUnit != "" {
				unit = *req.Specifications.QuantityUnit
			}
		}

		unitPrice := decimal.NewFromFloat(best.PricePerMeter)
		lineTotal := unitPrice.Mul(decimal.NewFromFloat(quantity))
		total = total.Add(lineTotal)

		items = append(items, types.LineItem{
			RequirementID: rm.RequirementID,
			Description:   rm.RequirementDescription,
			Product:       best.Name,
			SKU:           best.SKU,
			Quantity:      quantity,
			Unit:          unit,
			UnitPrice:     unitPrice,
			LineTotal:     lineTotal,
			InStock:       best.InStock,
			LeadTimeDays:  best.LeadTimeDays,
		})
	}
	return items, total
}

// narrative is the JSON shape expected from the model.
type narrative struct {
	Summary    string `json:"summary"`
	Technical  string `json:"technical_response"`
	Commercial string `json:"commercial_response"`
}

// proposalContext is the digest sent to the model.
type proposalContext struct {
	ProjectSummary  string           `json:"project_summary,omitempty"`
	BudgetInfo      *string          `json:"budget_info,omitempty"`
	TimelineInfo    *string          `json:"timeline_info,omitempty"`
	OverallScore    float64          `json:"overall_score"`
	Recommendations []string         `json:"recommendations,omitempty"`
	LineItems       []types.LineItem `json:"line_items"`
	TotalValue      string           `json:"total_estimated_value"`
	Currency        string           `json:"currency"`
}

func (s *Stage) composeWithModel(ctx context.Context, rec *types.AnalysisRecord, items []types.LineItem, total decimal.Decimal) (*narrative, error) {
	contextJSON, err := json.MarshalIndent(proposalContext{
		ProjectSummary:  rec.ProjectSummary,
		BudgetInfo:      rec.BudgetInfo,
		TimelineInfo:    rec.TimelineInfo,
		OverallScore:    rec.OverallScore,
		Recommendations: rec.Recommendations,
		LineItems:       items,
		TotalValue:      total.StringFixed(2),
		Currency:        currency,
	}, "", "  ")
	if err != nil {
		return nil, err
	}

	template := prompts.MustGet("analysis.json", "compose-proposal")
	prompt := prompts.Format(template, map[string]string{
		"Context": string(contextJSON),
	})

	responseText, err := s.client.Generate(ctx, llm.TierAdvanced, prompt)
	if err != nil {
		return nil, err
	}

	var parsed narrative
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &parsed); err != nil {
		return nil, fmt.Errorf("parsing proposal response: %w", err)
	}
	if parsed.Summary == "" && parsed.Technical == "" && parsed.Commercial == "" {
		return nil, fmt.Errorf("proposal response contained no sections")
	}
	return &parsed, nil
}
