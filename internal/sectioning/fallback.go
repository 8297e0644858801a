package sectioning

import (
	"regexp"
	"strings"

	"github.com/A3V1/B2B-RFP/internal/types"
)

// numberedHeading matches headings like "1. Scope of Work" or "2.1 Delivery".
var numberedHeading = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s+\S`)

// SplitSections is the deterministic fallback splitter. It scans for heading
// lines (markdown headings, numbered headings, short upper-case lines) and
// groups the text between them into sections. Text with no recognizable
// headings becomes a single "Document" section.
func SplitSections(text string) []types.Section {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")

	var sections []types.Section
	currentName := ""
	var currentBody []string

	flush := func() {
		body := strings.TrimSpace(strings.Join(currentBody, "\n"))
		if currentName != "" && body != "" {
			sections = append(sections, types.Section{Name: currentName, Content: body})
		}
		currentBody = currentBody[:0]
	}

	for _, line := range lines {
		if name, ok := headingName(line); ok {
			flush()
			currentName = name
			continue
		}
		currentBody = append(currentBody, line)
	}
	flush()

	if len(sections) == 0 {
		return []types.Section{{Name: "Document", Content: text}}
	}
	return sections
}

// headingName reports whether the line looks like a section heading and
// returns its cleaned name.
func headingName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 80 {
		return "", false
	}

	if strings.HasPrefix(trimmed, "#") {
		return strings.TrimSpace(strings.TrimLeft(trimmed, "# ")), true
	}

	if numberedHeading.MatchString(trimmed) && !strings.HasSuffix(trimmed, ".") {
		return trimmed, true
	}

	// Short all-upper-case lines with at least two letters read as headings
	// (e.g. "TECHNICAL SPECIFICATIONS").
	letters := 0
	for _, r := range trimmed {
		if r >= 'a' && r <= 'z' {
			return "", false
		}
		if r >= 'A' && r <= 'Z' {
			letters++
		}
	}
	if letters >= 2 {
		return titleCase(trimmed), true
	}
	return "", false
}

// titleCase converts an upper-case heading to title case.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
