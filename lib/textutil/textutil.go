package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases, trims and strips all whitespace so that
// names coming from markup with erratic formatting compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// Fold lowercases and trims but keeps inner whitespace, for
// comparisons that still need word boundaries.
func Fold(s string) string {
	return strings.ToLower(strings.Trim(s, " \n\t"))
}

// WordSet returns the set of whitespace-separated words in s, folded
// for case-insensitive comparison.
func WordSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.Fields(Fold(s)) {
		out[w] = struct{}{}
	}
	return out
}
