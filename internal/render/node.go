// Package render keeps per-entry display state in memory and turns it into the
// visible part of a catalog tree.
package render

import (
	"sort"
	"strings"

	"github.com/krakend/catalog-search/internal/catalog"
)

type container struct {
	expanded bool
}

func (c *container) Show() { c.expanded = true }
func (c *container) Hide() { c.expanded = false }

// Node is the display state of one entry. It starts shown and expanded.
type Node struct {
	visible    bool
	children   *container
	highlights map[string]struct{}
}

// NewNode creates the display state for an entry of the given kind
func NewNode(kind catalog.Kind) *Node {
	n := &Node{
		visible:    true,
		highlights: map[string]struct{}{},
	}
	if kind.IsCategoryLike() {
		n.children = &container{expanded: true}
	}
	return n
}

func (n *Node) Show() { n.visible = true }
func (n *Node) Hide() { n.visible = false }

func (n *Node) IsCategoryLike() bool {
	return n.children != nil
}

func (n *Node) ChildContainer() catalog.Container {
	if n.children == nil {
		return nil
	}
	return n.children
}

// MarkHighlighted marks every whole-word occurrence of word, ignoring case
func (n *Node) MarkHighlighted(word string) {
	n.highlights[strings.ToLower(word)] = struct{}{}
}

func (n *Node) ClearHighlights() {
	n.highlights = map[string]struct{}{}
}

// Toggle flips the child region of a category-like node and reports whether
// it is now expanded. Keyword nodes stay as they are.
func (n *Node) Toggle() bool {
	if n.children == nil {
		return false
	}
	n.children.expanded = !n.children.expanded
	return n.children.expanded
}

// Visible reports whether the node itself is shown
func (n *Node) Visible() bool {
	return n.visible
}

// Expanded reports whether the node's child region is shown
func (n *Node) Expanded() bool {
	return n.children != nil && n.children.expanded
}

// Highlighted reports whether word is marked
func (n *Node) Highlighted(word string) bool {
	_, ok := n.highlights[strings.ToLower(word)]
	return ok
}

// Highlights returns the marked words, lowercased and sorted
func (n *Node) Highlights() []string {
	words := make([]string, 0, len(n.highlights))
	for word := range n.highlights {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
