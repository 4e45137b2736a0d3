package nl2sql

import "strings"

// Completion text arrives in one of three recognized shapes. Each shape has
// exactly one extraction rule; classification happens once, up front.
type responseShape int

const (
	shapeTaggedFence responseShape = iota
	shapeUntaggedFence
	shapeRaw
)

const (
	taggedFenceOpen = "```sql"
	fence           = "```"
	leftoverTag     = "sql\n"
)

func classifyResponse(text string) responseShape {
	switch {
	case strings.Contains(text, taggedFenceOpen):
		return shapeTaggedFence
	case strings.Contains(text, fence):
		return shapeUntaggedFence
	default:
		return shapeRaw
	}
}

// ExtractSQL pulls a single SQL statement out of a completion response.
// It is a best-effort heuristic: the result is not parsed or validated,
// and malformed output is only caught at execution time.
func ExtractSQL(text string) string {
	trimmed := strings.TrimSpace(text)
	switch classifyResponse(trimmed) {
	case shapeTaggedFence:
		_, after, _ := strings.Cut(trimmed, taggedFenceOpen)
		content, _, _ := strings.Cut(after, fence)
		return strings.TrimSpace(content)
	case shapeUntaggedFence:
		_, after, _ := strings.Cut(trimmed, fence)
		content, _, _ := strings.Cut(after, fence)
		content = strings.TrimSpace(content)
		// Some models leave the language tag on its own line inside an
		// untagged fence.
		if strings.HasPrefix(content, leftoverTag) {
			content = strings.TrimSpace(strings.TrimPrefix(content, leftoverTag))
		}
		return content
	default:
		return trimmed
	}
}
