package textutil

import "strings"

// fileNameReplacer swaps characters that are invalid in filenames on the
// platforms this tool targets for underscores.
var fileNameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename with
// underscores and trims surrounding whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// FlattenExcerpt collapses whitespace runs (including newlines) into single
// spaces and truncates the result to limit runes, appending an ellipsis when
// truncated. Used for log-safe and report-safe content samples.
func FlattenExcerpt(content string, limit int) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	if limit <= 0 {
		return clean
	}
	runes := []rune(clean)
	if len(runes) <= limit {
		return clean
	}
	return string(runes[:limit]) + "..."
}
