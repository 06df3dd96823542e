package generation

import (
	"regexp"
	"strings"
)

// fenceRegex matches a markdown code fence together with an optional
// language tag directly after it (```json, ```JSON, ```).
var fenceRegex = regexp.MustCompile("```[A-Za-z0-9_+-]*")

// StripFormattingFences removes markdown code-fence markers from provider
// output and trims surrounding whitespace. Text between the fences is kept
// as is.
func StripFormattingFences(text string) string {
	return strings.TrimSpace(fenceRegex.ReplaceAllString(text, ""))
}
