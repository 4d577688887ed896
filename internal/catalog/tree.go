package catalog

import (
	"fmt"
	"sort"
)

// Tree maps an entry's text (and the synthetic root) to its direct children in ingestion order
type Tree map[string][]*Entry

// BuildTree constructs the adjacency list from a flat list of entries.
// Every text and every referenced parent becomes a key, even when it has no children.
func BuildTree(entries []*Entry) Tree {
	tree := Tree{RootKey: {}}

	for _, entry := range entries {
		if _, ok := tree[entry.Text]; !ok {
			tree[entry.Text] = []*Entry{}
		}
		if _, ok := tree[entry.Parent]; !ok {
			tree[entry.Parent] = []*Entry{}
		}

		tree[entry.Parent] = append(tree[entry.Parent], entry)
	}

	return tree
}

// Children returns the direct children of key
func (t Tree) Children(key string) []*Entry {
	return t[key]
}

// Walk visits every entry below key depth-first in child order.
// Depth is 0 for direct children of key.
func (t Tree) Walk(key string, fn func(entry *Entry, depth int)) {
	t.walk(key, 0, fn)
}

func (t Tree) walk(key string, depth int, fn func(entry *Entry, depth int)) {
	for _, child := range t[key] {
		fn(child, depth)
		t.walk(child.Text, depth+1, fn)
	}
}

// Validate checks that no entry is its own ancestor. Entries whose parent is
// never declared are fine: the parent is an empty bucket holding them.
// Walks start at the root, then at the remaining keys in sorted order, so the
// reported entry is stable.
func (t Tree) Validate() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(t))

	var visit func(key string) error
	visit = func(key string) error {
		state[key] = visiting
		for _, child := range t[key] {
			switch state[child.Text] {
			case visiting:
				return fmt.Errorf("%w: %q is its own ancestor (parent %q)", ErrMalformedHierarchy, child.Text, key)
			case unvisited:
				if err := visit(child.Text); err != nil {
					return err
				}
			}
		}
		state[key] = done
		return nil
	}

	keys := make([]string, 0, len(t))
	for key := range t {
		if key != RootKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range append([]string{RootKey}, keys...) {
		if state[key] != unvisited {
			continue
		}
		if err := visit(key); err != nil {
			return err
		}
	}

	return nil
}
