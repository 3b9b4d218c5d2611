package cmdshared

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions limits how many close matches are offered
const maxSuggestions = 3

// SuggestNames returns the names that best fuzzy-match query, best match first
func SuggestNames(query string, names []string) []string {
	if query == "" || len(names) == 0 {
		return nil
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	matches := fuzzy.Find(query, sorted)
	sort.Stable(matches)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	results := make([]string, len(matches))
	for i, m := range matches {
		results[i] = sorted[m.Index]
	}
	return results
}
