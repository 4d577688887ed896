package filter

import (
	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/krakend/catalog-search/internal/search"
)

// Propagate decides visibility bottom-up and reports whether node or anything
// below it matched. A matching node reveals its whole subtree; a node with only
// matching descendants is shown without forcing its other descendants open;
// everything else is hidden. Nodes without a proxy (the root) only report.
func Propagate(node *catalog.Entry, result search.Result, tree catalog.Tree) bool {
	childMatched := false
	for _, child := range tree.Children(node.Text) {
		if Propagate(child, result, tree) {
			childMatched = true
		}
	}

	selfMatched := result.Matched(node.Text)

	if node.Proxy != nil {
		switch {
		case selfMatched:
			expandAndShowSelf(node.Proxy)
			expandAndShowDescendants(node.Text, tree)
		case childMatched:
			node.Proxy.Show()
			if container := node.Proxy.ChildContainer(); container != nil {
				container.Show()
			}
		default:
			node.Proxy.Hide()
			if container := node.Proxy.ChildContainer(); container != nil {
				container.Hide()
			}
		}
	}

	return selfMatched || childMatched
}

// Reset shows and expands every node below key and clears every highlight
func Reset(key string, tree catalog.Tree) {
	tree.Walk(key, func(entry *catalog.Entry, _ int) {
		if entry.Proxy == nil {
			return
		}
		showEntry(entry.Proxy)
		entry.Proxy.ClearHighlights()
	})
}

func expandAndShowSelf(proxy catalog.Proxy) {
	proxy.Show()
	if container := proxy.ChildContainer(); container != nil {
		container.Show()
	}
}

func expandAndShowDescendants(key string, tree catalog.Tree) {
	tree.Walk(key, func(entry *catalog.Entry, _ int) {
		if entry.Proxy != nil {
			showEntry(entry.Proxy)
		}
	})
}

// showEntry shows a node and, for category-like nodes, expands its child region
func showEntry(proxy catalog.Proxy) {
	if proxy.IsCategoryLike() {
		expandAndShowSelf(proxy)
		return
	}
	proxy.Show()
}
