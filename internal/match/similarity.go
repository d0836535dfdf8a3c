package match

// Levenshtein returns the number of single-rune insertions, deletions and
// substitutions that turn x into y.
func Levenshtein(x, y string) int {
	return editDistance([]rune(x), []rune(y))
}

// Similarity is 1 - distance/longest, in runes. Two empty strings are
// identical.
func Similarity(x, y string) float64 {
	a, b := []rune(x), []rune(y)

	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}

	return 1 - float64(editDistance(a, b))/float64(longest)
}

// NameSimilarity compares two identifiers after NormalizeIdent.
func NameSimilarity(x, y string) float64 {
	return Similarity(NormalizeIdent(x), NormalizeIdent(y))
}

// StemSimilarity compares two identifiers after NormalizeIdentWithSuffixStrip,
// so "user_id" and "UserUID" are equal.
func StemSimilarity(x, y string) float64 {
	return Similarity(NormalizeIdentWithSuffixStrip(x), NormalizeIdentWithSuffixStrip(y))
}

// editDistance keeps one row of the DP table, indexed by the shorter input.
// diag carries the cell above-left of the one being filled.
func editDistance(a, b []rune) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	for _, rb := range b {
		diag := row[0]
		row[0]++

		for i, ra := range a {
			above := row[i+1]

			best := diag
			if ra != rb {
				best = 1 + min(diag, above, row[i])
			}

			row[i+1] = best
			diag = above
		}
	}

	return row[len(a)]
}
