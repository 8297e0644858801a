package sectioning

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/types"
)

type stubClient struct {
	response string
	err      error
}

func (s *stubClient) Generate(_ context.Context, _ llm.ModelTier, _ ...string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubClient) Close() error { return nil }

const sampleRFP = `TENDER NOTICE

Supply of LT power cables for the substation extension.

1. Scope of Work
Supply 5000 meters of 3.5C x 95 sqmm XLPE Aluminium cable at 1.1kV.

2. Delivery Terms
Delivery within 8 weeks of purchase order.`

func TestStageRunEmptyDocument(t *testing.T) {
	stage := NewStage(&stubClient{})

	update := stage.Run(context.Background(), &types.AnalysisRecord{SourceText: "   \n\t "})

	assert.Empty(t, update.Sections)
	require.Len(t, update.Errors, 1)
	assert.Contains(t, update.Errors[0], "document text is empty")
}

func TestStageRunModelPath(t *testing.T) {
	client := &stubClient{response: "```json\n" + `{
		"sections": [
			{"name": "Scope of Work", "content": "Supply 5000 meters of cable.", "page_number": 1},
			{"name": "", "content": "Delivery within 8 weeks."},
			{"name": "Empty", "content": "   "}
		]
	}` + "\n```"}

	stage := NewStage(client)
	update := stage.Run(context.Background(), &types.AnalysisRecord{SourceText: sampleRFP})

	require.Len(t, update.Sections, 2, "blank-content sections are dropped")
	assert.Empty(t, update.Errors)
	assert.Equal(t, "Scope of Work", update.Sections[0].Name)
	require.NotNil(t, update.Sections[0].PageNumber)
	assert.Equal(t, 1, *update.Sections[0].PageNumber)
	assert.Equal(t, "Unknown", update.Sections[1].Name)
}

func TestStageRunFallsBackOnModelError(t *testing.T) {
	stage := NewStage(&stubClient{err: fmt.Errorf("quota exceeded")})

	update := stage.Run(context.Background(), &types.AnalysisRecord{SourceText: sampleRFP})

	assert.NotEmpty(t, update.Sections, "heading splitter output stands in for the model")
	require.Len(t, update.Errors, 1)
	assert.Contains(t, update.Errors[0], "using heading splitter")
}

func TestStageRunFallsBackOnMalformedResponse(t *testing.T) {
	stage := NewStage(&stubClient{response: `{"sections": "none"}`})

	update := stage.Run(context.Background(), &types.AnalysisRecord{SourceText: sampleRFP})

	assert.NotEmpty(t, update.Sections)
	require.Len(t, update.Errors, 1)
}

func TestStageRunNilClientUsesSplitter(t *testing.T) {
	stage := NewStage(nil)

	update := stage.Run(context.Background(), &types.AnalysisRecord{SourceText: sampleRFP})

	assert.NotEmpty(t, update.Sections)
	assert.Empty(t, update.Errors)
}
