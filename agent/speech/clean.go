package speech

import (
	"regexp"
	"strings"
)

var unspeakable = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s.,!?-]`)

// CleanText drops symbols the synthesizer would read out literally, such as
// markdown emphasis and emoji.
func CleanText(text string) string {
	return strings.TrimSpace(unspeakable.ReplaceAllString(text, ""))
}
