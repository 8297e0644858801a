package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"sections": []}`,
			expected: `{"sections": []}`,
		},
		{
			name:     "json fenced block",
			input:    "```json\n{\"sections\": []}\n```",
			expected: `{"sections": []}`,
		},
		{
			name:     "generic fenced block",
			input:    "```\n{\"sections\": []}\n```",
			expected: `{"sections": []}`,
		},
		{
			name:     "fenced block with language identifier",
			input:    "```javascript\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{}\n```  \n",
			expected: `{}`,
		},
		{
			name:     "unterminated fence",
			input:    "```json\n{\"a\": 1}",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestConfigGetModel(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.GetModel(TierLite))
	assert.NotEmpty(t, cfg.GetModel(TierStandard))
	assert.NotEmpty(t, cfg.GetModel(TierAdvanced))
	assert.NotEqual(t, cfg.GetModel(TierLite), cfg.GetModel(TierAdvanced))
}
