package extract

import (
	"regexp"
	"strings"

	"credverify/internal/domain"
)

var allCapsRunRe = regexp.MustCompile(`[A-Z]{10,}`)

// Misspellings that show up in forged documents but never in issued ones.
var suspiciousWords = []string{"universtiy", "colege", "instutute", "certficate"}

var requiredWords = []string{"certificate", "name", "year"}

// ScanForgerySignals applies raw-text heuristics that hint at forgery.
// These are independent of registry matching and feed the verdict policy as
// forgery flags.
func ScanForgerySignals(text string) []domain.Flag {
	flags := make([]domain.Flag, 0)

	if len(allCapsRunRe.FindAllString(text, -1)) > 3 {
		flags = append(flags, domain.FlagSuspiciousFormatting)
	}

	lower := strings.ToLower(text)
	for _, word := range suspiciousWords {
		if strings.Contains(lower, word) {
			flags = append(flags, domain.FlagSpellingErrors)
			break
		}
	}

	missing := 0
	for _, word := range requiredWords {
		if !strings.Contains(lower, word) {
			missing++
		}
	}
	if missing > 1 {
		flags = append(flags, domain.FlagMissingRequiredFields)
	}

	return flags
}
