package filter

import (
	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/krakend/catalog-search/internal/search"
)

// Highlight marks every label word whose canonical form is a query stem, on
// node and all of its descendants, visible or not
func Highlight(node *catalog.Entry, result search.Result, index search.Index, tree catalog.Tree) {
	if node.Text != "" && node.Proxy != nil {
		for _, word := range catalog.Words(node.Text) {
			if result.HasStem(index.Canonical(word)) {
				node.Proxy.MarkHighlighted(word)
			}
		}
	}

	for _, child := range tree.Children(node.Text) {
		Highlight(child, result, index, tree)
	}
}
