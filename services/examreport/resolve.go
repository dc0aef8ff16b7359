package examreport

import (
	"errors"
	"esse3report/lib/scrapers/esse3"
	"esse3report/lib/textutil"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// ErrResolutionFailed means no exact or containment match existed for
// the search term. Non-fatal: callers broaden the scope or prompt the
// user, possibly with ClosestNames hints.
var ErrResolutionFailed = errors.New("no matching entity found")

// Match score constants. These are deliberately exact values so that
// callers (and tests) can reason about which rule fired.
const (
	scoreExact      = 1.0
	scoreContained  = 0.8
	scoreSharedWord = 0.6
	// character-overlap ratio is scaled by this before use as a soft
	// score, keeping it strictly below the shared-word tier
	scoreCharOverlapWeight = 0.4

	// two words count as "the same word" above this JaroWinkler
	// similarity; catches italian inflections like
	// informatica/informatiche that exact equality misses
	fuzzyWordSimilarity = 0.9
)

const maxSuggestions = 10

// Resolve finds the catalog entry best matching a search term. An
// exact case-insensitive name match wins immediately; otherwise
// containment in either direction, preferring the shortest (most
// specific) name. Soft scores are never silently accepted here; use
// RankSuggestions when fuzzy results are wanted.
func Resolve(term string, catalog []esse3.NamedEntity) (esse3.NamedEntity, bool) {
	folded := textutil.Fold(term)

	var best esse3.NamedEntity
	found := false
	for _, entity := range catalog {
		name := textutil.Fold(entity.Name)
		if folded == name {
			return entity, true
		}
		if strings.Contains(name, folded) || strings.Contains(folded, name) {
			if !found || len(entity.Name) < len(best.Name) {
				best = entity
				found = true
			}
		}
	}
	return best, found
}

// MatchScore scores how well a search term matches a target name:
// 1.0 exact, 0.8 containment, 0.6 shared whole word, otherwise the
// character-overlap ratio scaled by 0.4.
func MatchScore(term, target string) float64 {
	term = textutil.Fold(term)
	target = textutil.Fold(target)

	if term == target {
		return scoreExact
	}
	if strings.Contains(target, term) || strings.Contains(term, target) {
		return scoreContained
	}

	targetWords := textutil.WordSet(target)
	for word := range textutil.WordSet(term) {
		for targetWord := range targetWords {
			if wordsMatch(word, targetWord) {
				return scoreSharedWord
			}
		}
	}

	common := 0
	for _, c := range term {
		if strings.ContainsRune(target, c) {
			common++
		}
	}
	longer := len([]rune(term))
	if l := len([]rune(target)); l > longer {
		longer = l
	}
	if longer == 0 {
		return 0
	}
	return float64(common) / float64(longer) * scoreCharOverlapWeight
}

func wordsMatch(a, b string) bool {
	return a == b || matchr.JaroWinkler(a, b, false) >= fuzzyWordSimilarity
}

type Suggestion struct {
	Entity esse3.NamedEntity
	// "department" or "course"
	Kind  string
	Score float64
}

// RankSuggestions scores every candidate against the term and returns
// the top ten, ties broken by catalog order.
func RankSuggestions(term string, candidates []Suggestion) []Suggestion {
	scored := make([]Suggestion, len(candidates))
	for i, cand := range candidates {
		cand.Score = MatchScore(term, cand.Entity.Name)
		scored[i] = cand
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxSuggestions {
		scored = scored[:maxSuggestions]
	}
	return scored
}

// ClosestNames returns up to n catalog names ranked by JaroWinkler
// similarity to the term, used for "did you mean" hints after a
// failed resolution.
func ClosestNames(term string, catalog []esse3.NamedEntity, n int) []string {
	type scoredName struct {
		name       string
		similarity float64
	}

	scored := make([]scoredName, len(catalog))
	for i, entity := range catalog {
		scored[i] = scoredName{
			name:       entity.Name,
			similarity: matchr.JaroWinkler(textutil.Fold(term), textutil.Fold(entity.Name), false),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].similarity > scored[j].similarity
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	names := make([]string, len(scored))
	for i, s := range scored {
		names[i] = s.name
	}
	return names
}
