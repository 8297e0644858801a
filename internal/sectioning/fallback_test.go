package sectioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSectionsNumberedHeadings(t *testing.T) {
	sections := SplitSections(sampleRFP)

	require.Len(t, sections, 3)
	assert.Equal(t, "Tender Notice", sections[0].Name)
	assert.Equal(t, "1. Scope of Work", sections[1].Name)
	assert.Equal(t, "2. Delivery Terms", sections[2].Name)
	assert.Contains(t, sections[1].Content, "5000 meters")
}

func TestSplitSectionsMarkdownHeadings(t *testing.T) {
	text := "# Introduction\nBackground text.\n\n## Requirements\nCable specs here."

	sections := SplitSections(text)

	require.Len(t, sections, 2)
	assert.Equal(t, "Introduction", sections[0].Name)
	assert.Equal(t, "Requirements", sections[1].Name)
}

func TestSplitSectionsNoHeadings(t *testing.T) {
	text := "just a plain paragraph of text\nwith a second line"

	sections := SplitSections(text)

	require.Len(t, sections, 1)
	assert.Equal(t, "Document", sections[0].Name)
	assert.Equal(t, text, sections[0].Content)
}

func TestSplitSectionsEmpty(t *testing.T) {
	assert.Empty(t, SplitSections(""))
	assert.Empty(t, SplitSections("  \n\t  "))
}

func TestHeadingName(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"# Scope", "Scope", true},
		{"2.1 Delivery Schedule", "2.1 Delivery Schedule", true},
		{"TECHNICAL SPECIFICATIONS", "Technical Specifications", true},
		{"plain sentence about cables", "", false},
		{"", "", false},
		{"Cable runs shall be 1.1kV rated.", "", false},
	}

	for _, tt := range tests {
		name, ok := headingName(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		if tt.ok {
			assert.Equal(t, tt.want, name, "line %q", tt.line)
		}
	}
}
