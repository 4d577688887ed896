package filter_test

import (
	"github.com/krakend/catalog-search/internal/catalog"
)

type fakeContainer struct {
	visible bool
}

func (c *fakeContainer) Show() { c.visible = true }
func (c *fakeContainer) Hide() { c.visible = false }

// fakeProxy records the render state the filter passes leave behind
type fakeProxy struct {
	visible    bool
	container  *fakeContainer
	highlights map[string]int
}

func newFakeProxy(kind catalog.Kind) *fakeProxy {
	p := &fakeProxy{highlights: map[string]int{}}
	if kind.IsCategoryLike() {
		p.container = &fakeContainer{}
	}
	return p
}

func (p *fakeProxy) Show()                { p.visible = true }
func (p *fakeProxy) Hide()                { p.visible = false }
func (p *fakeProxy) IsCategoryLike() bool { return p.container != nil }

func (p *fakeProxy) ChildContainer() catalog.Container {
	if p.container == nil {
		return nil
	}
	return p.container
}

func (p *fakeProxy) MarkHighlighted(word string) { p.highlights[word]++ }
func (p *fakeProxy) ClearHighlights()            { p.highlights = map[string]int{} }

func (p *fakeProxy) expanded() bool {
	return p.container != nil && p.container.visible
}

// fixture is a small catalog with fake proxies, keyed by text
type fixture struct {
	entries []*catalog.Entry
	proxies map[string]*fakeProxy
}

func newFixture(rows ...[3]string) *fixture {
	f := &fixture{proxies: map[string]*fakeProxy{}}
	for _, row := range rows {
		text, parent, kind := row[0], row[1], catalog.Kind(row[2])
		proxy := newFakeProxy(kind)
		f.proxies[text] = proxy
		f.entries = append(f.entries, &catalog.Entry{Text: text, Parent: parent, Kind: kind, Proxy: proxy})
	}
	return f
}

// hideAll puts every proxy in a collapsed, hidden state so tests see what a pass changed
func (f *fixture) hideAll() {
	for _, proxy := range f.proxies {
		proxy.visible = false
		if proxy.container != nil {
			proxy.container.visible = false
		}
	}
}

func fruitFixture() *fixture {
	return newFixture(
		[3]string{"Fruits", "", "main-category"},
		[3]string{"Apple", "Fruits", "keyword"},
		[3]string{"Banana", "Fruits", "keyword"},
	)
}

func deepFixture() *fixture {
	return newFixture(
		[3]string{"Food", "", "main-category"},
		[3]string{"Fruits", "Food", "category"},
		[3]string{"Citrus", "Fruits", "category"},
		[3]string{"Lemon", "Citrus", "keyword"},
		[3]string{"Orange", "Citrus", "keyword"},
		[3]string{"Berries", "Fruits", "category"},
		[3]string{"Strawberry", "Berries", "keyword"},
		[3]string{"Drinks", "", "main-category"},
		[3]string{"Water", "Drinks", "keyword"},
	)
}
