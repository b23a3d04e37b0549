package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers and conversational
// preamble or trailing text from JSON responses.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if text == "" || text[0] == '{' || text[0] == '[' {
		if trimmed := extractBalanced(text); trimmed != "" {
			return trimmed
		}
		return text
	}

	// Preamble: start at the first object or array
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if trimmed := extractBalanced(text[start:]); trimmed != "" {
		return trimmed
	}
	return text
}

func extractBalanced(text string) string {
	if text == "" {
		return ""
	}
	switch text[0] {
	case '{':
		return extractJSONObject(text)
	case '[':
		return extractJSONArray(text)
	}
	return ""
}

// extractJSONObject returns the leading balanced {...} value of text.
func extractJSONObject(text string) string {
	return extractDelimited(text, '{', '}')
}

// extractJSONArray returns the leading balanced [...] value of text.
func extractJSONArray(text string) string {
	return extractDelimited(text, '[', ']')
}

func extractDelimited(text string, open, close byte) string {
	if text == "" || text[0] != open {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
