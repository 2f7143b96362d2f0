// Package filter combines server-side filtered fetches with local
// in-memory predicates. Each criteria type picks at most one remote
// endpoint and layers the remaining criteria on top of its result.
package filter

import "strings"

// Predicate decides whether an item stays in the filtered view.
type Predicate[T any] func(T) bool

// Apply evaluates all predicates against the loaded list and returns
// the surviving items. A nil predicate list returns the input unchanged.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	if len(preds) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// MatchesText reports whether the term occurs, case-insensitively, in
// any of the fields. An empty term matches everything.
func MatchesText(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
