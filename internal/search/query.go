package search

import (
	"fmt"

	"github.com/krakend/catalog-search/internal/catalog"
)

// Result is the outcome of evaluating one query
type Result struct {
	Query string

	// Active is false for the empty query, which resets every node
	Active bool

	// Matches holds the texts of matching entries
	Matches map[string]struct{}

	// Stems holds the canonical form of every query token, used for highlighting
	Stems map[string]struct{}
}

// Matched reports whether the entry with the given text is in the match set
func (r Result) Matched(text string) bool {
	_, ok := r.Matches[text]
	return ok
}

// HasStem reports whether stem is a canonical query token
func (r Result) HasStem(stem string) bool {
	if stem == "" {
		return false
	}
	_, ok := r.Stems[stem]
	return ok
}

// Evaluate runs an OR search: an entry matches if any query word matches its keywords
func Evaluate(index Index, query string) (Result, error) {
	result := Result{
		Query:   query,
		Matches: map[string]struct{}{},
		Stems:   map[string]struct{}{},
	}

	// Empty query is a reset and never reaches the index
	if query == "" {
		return result, nil
	}
	result.Active = true

	for _, word := range catalog.Words(query) {
		refs, err := index.Lookup(word)
		if err != nil {
			return Result{}, fmt.Errorf("search failed: %w", err)
		}
		for _, ref := range refs {
			result.Matches[ref] = struct{}{}
		}
	}

	for _, stem := range index.Analyze(query) {
		result.Stems[stem] = struct{}{}
	}

	return result, nil
}
