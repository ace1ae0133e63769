package provider

import "strings"

// fuzzyMatch is a simple case-insensitive substring match.
func fuzzyMatch(query, text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// filterOrAll applies the fuzzy filter over searchable text and falls back to
// the full list when nothing matches. A query that misses everything is more
// likely a bad query than an empty catalog.
func filterOrAll[T any](items []T, query string, searchable func(T) string) []T {
	if query == "" {
		return items
	}
	var filtered []T
	for _, it := range items {
		if fuzzyMatch(query, searchable(it)) {
			filtered = append(filtered, it)
		}
	}
	if len(filtered) == 0 {
		return items
	}
	return filtered
}
