package chat

import "strings"

// DefaultWindow is how many trailing transcript entries feed the next
// completion call when no override is configured.
const DefaultWindow = 5

// RenderWindow flattens the most recent limit messages into the context
// summary handed to the conversation client: chronological order, one
// "role: content" line per message. Returns "" for an empty transcript,
// which callers treat as "no context".
func RenderWindow(messages []Message, limit int) string {
	if len(messages) == 0 {
		return ""
	}
	if limit < 1 {
		limit = 1
	}

	start := len(messages) - limit
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for i := start; i < len(messages); i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(string(messages[i].Role))
		b.WriteString(": ")
		b.WriteString(messages[i].Content)
	}
	return b.String()
}
