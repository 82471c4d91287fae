// Package match implements the text normalization and fuzzy field
// similarity used by candidate search and anomaly detection.
package match

// NameScore compares two person names. Three measures run independently and
// the best one wins, so a strong signal from any single measure is enough:
// raw character similarity, token-order-insensitive similarity, and best
// substring-window similarity. Either input empty scores 0.
func NameScore(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	na, nb := Normalize(a), Normalize(b)
	best := Ratio(na, nb)
	if score := TokenSortRatio(na, nb); score > best {
		best = score
	}
	if score := PartialRatio(na, nb); score > best {
		best = score
	}
	return best
}

// CourseScore compares two course names. Course titles vary mostly in token
// order ("Computer Science Engineering" vs "Engineering in Computer
// Science"), so only the token-order-insensitive measure applies.
func CourseScore(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return TokenSortRatio(Normalize(a), Normalize(b))
}
