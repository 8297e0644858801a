package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A3V1/B2B-RFP/internal/catalog"
	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/types"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

// scriptedClient replays one canned response per Generate call, in order.
type scriptedClient struct {
	responses []string
	calls     int
}

func (s *scriptedClient) Generate(_ context.Context, _ llm.ModelTier, _ ...string) (string, error) {
	if s.calls >= len(s.responses) {
		return "", assert.AnError
	}
	response := s.responses[s.calls]
	s.calls++
	return response, nil
}

func (s *scriptedClient) Close() error { return nil }

const sampleRFP = `TENDER NOTICE

1. Scope of Work
Supply 5000 meters of 3.5C x 95 sqmm XLPE Aluminium cable at 1.1kV.`

func testCatalog() catalog.Source {
	return catalog.NewMemoryStore([]types.ComponentCandidate{
		{
			ID:              1,
			SKU:             "LT-001",
			Name:            "3.5C x 95 sqmm XLPE Al Cable",
			Category:        "LT Cable",
			VoltageKV:       fptr(1.1),
			Conductor:       sptr("Aluminium"),
			Cores:           sptr("3.5C"),
			CrossSectionMM2: fptr(95),
			Insulation:      sptr("XLPE"),
			PricePerMeter:   450,
			InStock:         true,
		},
	})
}

func TestRunEmptyDocumentTerminatesAfterSectioning(t *testing.T) {
	o := New(nil, testCatalog())

	rec := o.Run(context.Background(), "run-1", "")

	assert.Equal(t, "sectioning", rec.CurrentStage)
	assert.Empty(t, rec.Sections)
	assert.Empty(t, rec.Requirements)
	assert.Empty(t, rec.RequirementMatches)
	assert.Nil(t, rec.Proposal)
	require.Len(t, rec.Errors, 1)
	assert.Contains(t, rec.Errors[0], "sectioning:")
}

func TestRunNoRequirementsSkipsMatching(t *testing.T) {
	// Without a language model extraction cannot produce requirements, so
	// matching never runs but scoring and proposal still do.
	o := New(nil, testCatalog())

	rec := o.Run(context.Background(), "run-1", sampleRFP)

	assert.NotEmpty(t, rec.Sections)
	assert.Empty(t, rec.Requirements)
	assert.Empty(t, rec.RequirementMatches)
	assert.Equal(t, 0.0, rec.OverallScore)
	require.NotNil(t, rec.Proposal)
	assert.Empty(t, rec.Proposal.LineItems)
	assert.Equal(t, "proposal", rec.CurrentStage)
}

func TestRunEndToEnd(t *testing.T) {
	client := &scriptedClient{responses: []string{
		// sectioning
		`{"sections": [{"name": "Scope of Work", "content": "Supply 5000 meters of 3.5C x 95 sqmm XLPE Aluminium cable at 1.1kV."}]}`,
		// extraction
		`{
			"requirements": [{
				"description": "3.5C x 95 sqmm XLPE Aluminium cable at 1.1kV",
				"category": "technical",
				"priority": "mandatory",
				"specifications": {
					"voltage_kv": 1.1, "conductor": "Aluminium", "cores": "3.5C",
					"cross_section_mm2": 95, "insulation": "XLPE",
					"quantity": 5000, "quantity_unit": "meters"
				}
			}],
			"project_summary": "LT cable supply"
		}`,
		// matching (one requirement)
		`{"scored_matches": [{"component_id": 1, "score": 100, "matched_specs": {"voltage_kv": true}, "notes": "exact fit"}]}`,
		// scoring
		`{"overall_score": 88, "scoring_breakdown": {"technical": {"score": 95, "max": 40, "weighted_score": 38}}, "recommendations": ["Confirm delivery schedule"]}`,
		// proposal
		`{"summary": "We offer a full solution.", "technical_response": "Fully compliant.", "commercial_response": "See pricing."}`,
	}}

	o := New(client, testCatalog())
	rec := o.Run(context.Background(), "run-1", sampleRFP)

	assert.Empty(t, rec.Errors)
	assert.Equal(t, 5, client.calls)

	require.Len(t, rec.Requirements, 1)
	assert.Equal(t, "REQ-001", rec.Requirements[0].ID)

	require.Len(t, rec.RequirementMatches, 1)
	require.NotNil(t, rec.RequirementMatches[0].BestMatch)
	assert.Equal(t, 100.0, rec.RequirementMatches[0].CoverageScore)

	assert.Equal(t, 88.0, rec.OverallScore)
	require.NotNil(t, rec.Proposal)
	assert.Equal(t, "We offer a full solution.", rec.Proposal.Summary)
	require.Len(t, rec.Proposal.LineItems, 1)
	assert.Equal(t, 5000.0, rec.Proposal.LineItems[0].Quantity)

	result := BuildResult(rec)
	assert.Equal(t, types.StatusCompleted, result.Status)
	assert.Equal(t, 1, result.MatchedCount)
}

func TestRunErrorsAccumulateMonotonically(t *testing.T) {
	// Sectioning succeeds via the scripted response, then every later model
	// call fails. The error log grows stage by stage and never loses entries.
	client := &scriptedClient{responses: []string{
		`{"sections": [{"name": "Scope", "content": "Cable supply."}]}`,
	}}

	o := New(client, testCatalog())
	rec := o.Run(context.Background(), "run-1", sampleRFP)

	// extraction fails, matching is skipped, scoring logs the empty input,
	// proposal falls back to templates.
	require.GreaterOrEqual(t, len(rec.Errors), 3)
	assert.Contains(t, rec.Errors[0], "extraction:")
	assert.Contains(t, rec.Errors[1], "scoring:")
	assert.Contains(t, rec.Errors[2], "proposal:")

	result := BuildResult(rec)
	assert.Equal(t, types.StatusCompletedWithErrors, result.Status)
}

// panicStage panics on every run.
type panicStage struct{}

func (panicStage) Name() string { return "sectioning" }
func (panicStage) Run(context.Context, *types.AnalysisRecord) types.StageUpdate {
	panic("boom")
}

func TestRunStageRecoversFromPanic(t *testing.T) {
	o := New(nil, testCatalog())
	o.sectioning = panicStage{}

	rec := o.Run(context.Background(), "run-1", sampleRFP)

	require.Len(t, rec.Errors, 1)
	assert.Contains(t, rec.Errors[0], "stage panicked")
	assert.Contains(t, rec.Errors[0], "boom")
	assert.Empty(t, rec.Sections, "a panicked sectioning stage terminates the run")
}

func TestMergeLeavesUnsetFieldsAlone(t *testing.T) {
	rec := &types.AnalysisRecord{
		Sections:     []types.Section{{Name: "Scope", Content: "text"}},
		OverallScore: 42,
		Errors:       []string{"existing"},
	}

	merge(rec, types.StageUpdate{Errors: []string{"new"}})

	assert.Len(t, rec.Sections, 1)
	assert.Equal(t, 42.0, rec.OverallScore)
	assert.Equal(t, []string{"existing", "new"}, rec.Errors)
}

func TestBuildResultStatuses(t *testing.T) {
	clean := &types.AnalysisRecord{ID: "a"}
	assert.Equal(t, types.StatusCompleted, BuildResult(clean).Status)

	dirty := &types.AnalysisRecord{ID: "b", Errors: []string{"sectioning: something"}}
	assert.Equal(t, types.StatusCompletedWithErrors, BuildResult(dirty).Status)
}
