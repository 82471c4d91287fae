package match

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	honorificRe  = regexp.MustCompile(`^(mr\.?|ms\.?|dr\.?)\s+`)
	suffixRe     = regexp.MustCompile(`\s+(jr\.?|sr\.?|ii|iii)$`)
)

// Normalize canonicalizes free text for comparison: lower case, single
// spaces, no leading honorific or trailing generational suffix. Honorific
// and suffix stripping is single pass, so stacked titles ("mr. dr. singh")
// lose only the outermost one and re-normalizing such input strips another.
// Empty input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	normalized := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
	normalized = honorificRe.ReplaceAllString(normalized, "")
	normalized = suffixRe.ReplaceAllString(normalized, "")
	return normalized
}
