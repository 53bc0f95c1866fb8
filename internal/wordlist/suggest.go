package wordlist

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxSuggestions caps how many candidate words Suggest returns.
const MaxSuggestions = 3

// Suggest returns up to MaxSuggestions canonical words closest to word by
// edit distance, for CLI error messages ("did you mean ...?"). It never
// returns an error: an unrecognized word simply yields its nearest
// neighbors.
func Suggest(word string) []string {
	normalized := strings.ToLower(strings.TrimSpace(word))

	type candidate struct {
		w        string
		distance int
	}
	candidates := make([]candidate, len(Words))
	for i, w := range Words {
		candidates[i] = candidate{w: w, distance: levenshtein.ComputeDistance(normalized, w)}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].w < candidates[j].w
	})

	n := MaxSuggestions
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[i].w
	}
	return out
}
