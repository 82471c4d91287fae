package match

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Ratio is Levenshtein similarity scaled to 0-100. Identical strings score
// 100, disjoint strings score near 0.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(distance)/float64(maxLen))))
}

// TokenSortRatio compares the two strings with their words sorted, so word
// order never costs similarity.
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(a), sortTokens(b))
}

// PartialRatio slides the shorter string over the longer one and returns the
// best window similarity, so a prefix or suffix match still scores high.
func PartialRatio(a, b string) int {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return Ratio(a, b)
	}
	if len(shorter) == len(longer) {
		return Ratio(string(shorter), string(longer))
	}
	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := string(longer[i : i+len(shorter)])
		if score := Ratio(string(shorter), window); score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
