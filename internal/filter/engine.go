package filter

import (
	"fmt"
	"sync"

	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/krakend/catalog-search/internal/search"
)

// Engine is a sealed catalog: its entries, tree and index never change.
// Searches are serialized because each one rewrites the render state.
type Engine struct {
	mu sync.Mutex

	entries []*catalog.Entry
	tree    catalog.Tree
	index   search.Index
	root    *catalog.Entry
}

// NewEngine wraps an already built tree and index
func NewEngine(entries []*catalog.Entry, tree catalog.Tree, index search.Index) *Engine {
	return &Engine{
		entries: entries,
		tree:    tree,
		index:   index,
		root:    &catalog.Entry{Text: catalog.RootKey},
	}
}

// Search resets the render state and applies query to it
func (e *Engine) Search(query string) (search.Result, error) {
	return e.SearchView(query, nil)
}

// SearchView runs Search and then calls view, if set, before any other search
// can touch the render state
func (e *Engine) SearchView(query string, view func(search.Result)) (search.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Undo the previous search
	Reset(catalog.RootKey, e.tree)

	result, err := search.Evaluate(e.index, query)
	if err != nil {
		return search.Result{}, fmt.Errorf("query %q: %w", query, err)
	}

	if result.Active {
		Propagate(e.root, result, e.tree)
		Highlight(e.root, result, e.index, e.tree)
	}

	if view != nil {
		view(result)
	}
	return result, nil
}

// Update calls fn with the tree while no search can touch the render state.
// A later search resets whatever fn changed.
func (e *Engine) Update(fn func(tree catalog.Tree)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn(e.tree)
}

// Entries returns the sealed entries in ingestion order
func (e *Engine) Entries() []*catalog.Entry {
	return e.entries
}

// Tree returns the sealed adjacency list
func (e *Engine) Tree() catalog.Tree {
	return e.tree
}

// Index returns the search index
func (e *Engine) Index() search.Index {
	return e.index
}

// Close closes the search index
func (e *Engine) Close() error {
	return e.index.Close()
}
