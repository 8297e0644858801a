package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "normalizes CRLF",
			input:    "line one\r\nline two\r",
			expected: "line one\nline two",
		},
		{
			name:     "collapses repeated spaces",
			input:    "Supply  5000   meters of cable",
			expected: "Supply 5000 meters of cable",
		},
		{
			name:     "keeps markdown headings",
			input:    "   # Scope of Work\ncontent",
			expected: "# Scope of Work\ncontent",
		},
		{
			name:     "preserves bullet indentation",
			input:    "  - 1.1kV rating\n  - XLPE insulation",
			expected: "  - 1.1kV rating\n  - XLPE insulation",
		},
		{
			name:     "collapses blank line runs",
			input:    "first\n\n\n\n\nsecond",
			expected: "first\n\nsecond",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rfp.txt")
	require.NoError(t, os.WriteFile(path, []byte("Tender  text\r\nwith noise"), 0o644))

	got, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Tender text\nwith noise", got)
}

func TestReadDocumentUnsupportedType(t *testing.T) {
	_, err := ReadDocument("tender.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document type")
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
