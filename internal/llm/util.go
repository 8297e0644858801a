package llm

import "strings"

// CleanJSONBlock strips a markdown code fence wrapped around a model
// response. Models routinely fence the object in ```json or bare ``` even
// when the prompt asks for raw JSON.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	if strings.HasPrefix(body, "json") {
		body = strings.TrimPrefix(body, "json")
	} else if nl := strings.Index(body, "\n"); nl >= 0 {
		// A short first line without spaces or braces is a language label,
		// not content.
		label := body[:nl]
		if len(label) < 20 && !strings.ContainsAny(label, " {") {
			body = body[nl+1:]
		}
	}

	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
