package filter

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/krakend/catalog-search/internal/search"
)

// ErrSealed is returned when entries are added to, or sealed from, a sealed builder
var ErrSealed = errors.New("builder already sealed")

// Builder accumulates ingested entries until Seal. Add is safe for concurrent use.
type Builder struct {
	mu      sync.Mutex
	entries []*catalog.Entry
	sealed  bool
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends entries in the order given
func (b *Builder) Add(entries ...*catalog.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		return ErrSealed
	}
	b.entries = append(b.entries, entries...)
	return nil
}

// Len returns the number of entries added so far
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Seal signals that ingestion is complete, then derives the tree and the index
func (b *Builder) Seal() (*Engine, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		return nil, ErrSealed
	}
	b.sealed = true
	startTime := time.Now()

	seen := make(map[string]string, len(b.entries))
	for i, entry := range b.entries {
		if entry.Text == "" {
			return nil, fmt.Errorf("entry %d (parent %q): %w", i, entry.Parent, catalog.ErrEmptyText)
		}
		if parent, ok := seen[entry.Text]; ok {
			log.Printf("Warning: duplicate entry %q (parents %q and %q), last one wins in the index",
				entry.Text, parent, entry.Parent)
		}
		seen[entry.Text] = entry.Parent
	}

	entries := catalog.Enhance(b.entries)

	tree := catalog.BuildTree(entries)
	if err := tree.Validate(); err != nil {
		return nil, err
	}

	index, err := search.New(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	log.Printf("✓ Catalog sealed: %d entries in %v", len(entries), time.Since(startTime).Round(time.Millisecond))
	return NewEngine(entries, tree, index), nil
}
