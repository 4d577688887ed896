package render

import (
	"fmt"

	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/krakend/catalog-search/internal/filter"
	"github.com/krakend/catalog-search/internal/search"
)

// View is the outcome of one search as a reader sees it
type View struct {
	Result search.Result
	Lines  []Line
	Total  int
}

// Seal attaches in-memory nodes to entries and seals them into an engine
func Seal(entries []*catalog.Entry) (*filter.Engine, error) {
	Attach(entries)

	builder := filter.NewBuilder()
	if err := builder.Add(entries...); err != nil {
		return nil, err
	}
	return builder.Seal()
}

// Search runs query on engine and captures the visible tree before any other
// search can change it
func Search(engine *filter.Engine, query string) (View, error) {
	var view View

	result, err := engine.SearchView(query, func(search.Result) {
		view.Lines = Lines(engine.Tree())
	})
	if err != nil {
		return View{}, fmt.Errorf("search failed: %w", err)
	}

	view.Result = result
	view.Total = Count(engine.Tree())
	return view, nil
}

// Toggle opens or closes the child region of the category displayed at line at,
// provided that line still shows text. It returns the visible tree afterwards
// and whether anything changed.
func Toggle(engine *filter.Engine, at int, text string) ([]Line, bool) {
	var lines []Line
	toggled := false

	engine.Update(func(tree catalog.Tree) {
		var target *Node
		i := 0
		walkVisible(tree, func(entry *catalog.Entry, node *Node, _ int) {
			if i == at && entry.Text == text && node.IsCategoryLike() {
				target = node
			}
			i++
		})

		if target != nil {
			target.Toggle()
			toggled = true
		}
		lines = Lines(tree)
	})

	return lines, toggled
}
