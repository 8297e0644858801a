package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSections(t *testing.T) {
	valid := []byte(`{"sections": [{"name": "Scope", "content": "text"}]}`)
	assert.NoError(t, Validate(Sections, valid))

	missing := []byte(`{"sections": [{"name": "Scope"}]}`)
	err := Validate(Sections, missing)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, Sections, verr.Schema)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidateScoreBounds(t *testing.T) {
	inRange := []byte(`{"scored_matches": [{"component_id": 1, "score": 100}]}`)
	assert.NoError(t, Validate(Score, inRange))

	outOfRange := []byte(`{"scored_matches": [{"component_id": 1, "score": 150}]}`)
	assert.Error(t, Validate(Score, outOfRange))
}

func TestValidateAggregate(t *testing.T) {
	valid := []byte(`{"overall_score": 75, "scoring_breakdown": {"technical": {"score": 80}}}`)
	assert.NoError(t, Validate(Aggregate, valid))

	missingScore := []byte(`{"scoring_breakdown": {}}`)
	assert.Error(t, Validate(Aggregate, missingScore))
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("nonexistent", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateInvalidJSON(t *testing.T) {
	assert.Error(t, Validate(Extraction, []byte("not json")))
}
