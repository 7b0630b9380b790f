package command

import "github.com/agnivade/levenshtein"

// maxSuggestDistance is the largest edit distance still treated as a typo.
const maxSuggestDistance = 2

// Suggest returns the known verb closest to verb, if any lies within
// maxSuggestDistance edits. Ties resolve to the earlier verb in candidates.
func Suggest(verb string, candidates []string) (string, bool) {
	if verb == "" {
		return "", false
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(verb, c)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}
