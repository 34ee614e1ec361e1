package word

import "strings"

// Similarity scores how close two strings are, in [0, 1]. Identical strings
// (case-insensitive) score 1.0, strings with no aligned subsequence score 0.
// The ratio is 2*LCS/(len(a)+len(b)), the same family of measure the guess
// feedback has always used; it is a utility for "close guess" feedback and
// does not gate winning.
func Similarity(a, b string) float64 {
	x := []rune(strings.ToLower(a))
	y := []rune(strings.ToLower(b))
	if len(x) == 0 && len(y) == 0 {
		return 1
	}
	if len(x) == 0 || len(y) == 0 {
		return 0
	}

	// longest common subsequence, two rolling rows
	prev := make([]int, len(y)+1)
	curr := make([]int, len(y)+1)
	for i := 1; i <= len(x); i++ {
		for j := 1; j <= len(y); j++ {
			if x[i-1] == y[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(y)]
	return 2 * float64(lcs) / float64(len(x)+len(y))
}
