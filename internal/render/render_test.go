package render_test

import (
	"testing"

	"github.com/krakend/catalog-search/internal/catalog"
	"github.com/krakend/catalog-search/internal/filter"
	"github.com/krakend/catalog-search/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sealedCatalog(t *testing.T) *filter.Engine {
	t.Helper()

	entries := []*catalog.Entry{
		{Text: "Fruits", Kind: catalog.KindMainCategory},
		{Text: "Apples", Parent: "Fruits", Kind: catalog.KindKeyword},
		{Text: "Banana", Parent: "Fruits", Kind: catalog.KindKeyword},
		{Text: "Tools", Kind: catalog.KindMainCategory},
		{Text: "Garden", Parent: "Tools", Kind: catalog.KindCategory},
		{Text: "Rake", Parent: "Garden", Kind: catalog.KindKeyword},
	}
	render.Attach(entries)

	builder := filter.NewBuilder()
	require.NoError(t, builder.Add(entries...))
	engine, err := builder.Seal()
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func texts(lines []render.Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.Text)
	}
	return out
}

func TestNode_InitialState(t *testing.T) {
	category := render.NewNode(catalog.KindCategory)
	assert.True(t, category.Visible())
	assert.True(t, category.Expanded())
	assert.True(t, category.IsCategoryLike())
	assert.NotNil(t, category.ChildContainer())

	keyword := render.NewNode(catalog.KindKeyword)
	assert.True(t, keyword.Visible())
	assert.False(t, keyword.Expanded())
	assert.False(t, keyword.IsCategoryLike())
	assert.Nil(t, keyword.ChildContainer())
}

func TestNode_Highlights(t *testing.T) {
	node := render.NewNode(catalog.KindKeyword)
	node.MarkHighlighted("Red")
	node.MarkHighlighted("apple")
	node.MarkHighlighted("RED")

	assert.True(t, node.Highlighted("red"))
	assert.Equal(t, []string{"apple", "red"}, node.Highlights())

	node.ClearHighlights()
	assert.Empty(t, node.Highlights())
	assert.False(t, node.Highlighted("red"))
}

func TestAttach_KeepsExistingProxy(t *testing.T) {
	existing := render.NewNode(catalog.KindKeyword)
	entries := []*catalog.Entry{
		{Text: "A", Kind: catalog.KindKeyword, Proxy: existing},
		{Text: "B", Kind: catalog.KindKeyword},
	}
	render.Attach(entries)

	assert.Same(t, existing, entries[0].Proxy)
	assert.IsType(t, &render.Node{}, entries[1].Proxy)
}

func TestLines_EmptyQueryShowsEverything(t *testing.T) {
	engine := sealedCatalog(t)

	_, err := engine.Search("")
	require.NoError(t, err)

	lines := render.Lines(engine.Tree())
	assert.Equal(t, []string{"Fruits", "Apples", "Banana", "Tools", "Garden", "Rake"}, texts(lines))
	assert.Equal(t, 0, lines[0].Depth)
	assert.Equal(t, 1, lines[1].Depth)
	assert.Equal(t, 2, lines[5].Depth)
	assert.Equal(t, 6, render.Count(engine.Tree()))
}

func TestLines_FilteredView(t *testing.T) {
	engine := sealedCatalog(t)

	_, err := engine.Search("apple")
	require.NoError(t, err)

	lines := render.Lines(engine.Tree())
	require.Equal(t, []string{"Fruits", "Apples"}, texts(lines))
	assert.True(t, lines[0].Expanded)
	assert.Equal(t, []string{"apples"}, lines[1].Highlights)
	assert.Equal(t, "[[Apples]]", lines[1].Label("[[", "]]"))
	assert.Equal(t, "Fruits", lines[0].Label("[[", "]]"))
}

func TestLines_SelfMatchRevealsSubtree(t *testing.T) {
	engine := sealedCatalog(t)

	_, err := engine.Search("tools")
	require.NoError(t, err)

	assert.Equal(t, []string{"Tools", "Garden", "Rake"}, texts(render.Lines(engine.Tree())))
}

func TestLines_HiddenAncestorHidesChildren(t *testing.T) {
	engine := sealedCatalog(t)

	_, err := engine.Search("")
	require.NoError(t, err)

	for _, entry := range engine.Entries() {
		if entry.Text == "Garden" {
			entry.Proxy.ChildContainer().Hide()
		}
	}

	lines := render.Lines(engine.Tree())
	assert.Equal(t, []string{"Fruits", "Apples", "Banana", "Tools", "Garden"}, texts(lines))
	assert.False(t, lines[4].Expanded)
}

func TestSegments(t *testing.T) {
	only := func(words ...string) func(string) bool {
		return func(word string) bool {
			for _, w := range words {
				if w == word {
					return true
				}
			}
			return false
		}
	}

	tests := []struct {
		name  string
		label string
		words []string
		want  []render.Segment
	}{
		{
			name:  "no highlights",
			label: "Red apple",
			want:  []render.Segment{{Text: "Red apple"}},
		},
		{
			name:  "middle word",
			label: "Big red apple",
			words: []string{"red"},
			want: []render.Segment{
				{Text: "Big "},
				{Text: "red", Highlighted: true},
				{Text: " apple"},
			},
		},
		{
			name:  "punctuation kept",
			label: "(Apple), pie!",
			words: []string{"Apple", "pie"},
			want: []render.Segment{
				{Text: "("},
				{Text: "Apple", Highlighted: true},
				{Text: "), "},
				{Text: "pie", Highlighted: true},
				{Text: "!"},
			},
		},
		{
			name:  "empty label",
			label: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.Segments(tt.label, only(tt.words...)))
		})
	}
}

func TestSearch_View(t *testing.T) {
	entries := []*catalog.Entry{
		{Text: "Sports", Kind: catalog.KindMainCategory},
		{Text: "Running shoes", Parent: "Sports", Kind: catalog.KindKeyword},
		{Text: "Tennis racket", Parent: "Sports", Kind: catalog.KindKeyword},
	}
	engine, err := render.Seal(entries)
	require.NoError(t, err)
	defer engine.Close()

	view, err := render.Search(engine, "runs")
	require.NoError(t, err)

	assert.True(t, view.Result.Active)
	assert.True(t, view.Result.Matched("Running shoes"))
	assert.Equal(t, 3, view.Total)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "[[Running]] shoes", view.Lines[1].Label("[[", "]]"))

	view, err = render.Search(engine, "")
	require.NoError(t, err)
	assert.False(t, view.Result.Active)
	assert.Len(t, view.Lines, 3)
	assert.Empty(t, view.Lines[1].Highlights)
}

func TestSeal_RejectsCycle(t *testing.T) {
	entries := []*catalog.Entry{
		{Text: "A", Kind: catalog.KindMainCategory},
		{Text: "B", Parent: "A", Kind: catalog.KindCategory},
		{Text: "A", Parent: "B", Kind: catalog.KindCategory},
	}

	_, err := render.Seal(entries)
	assert.ErrorIs(t, err, catalog.ErrMalformedHierarchy)
}

func TestNode_Toggle(t *testing.T) {
	category := render.NewNode(catalog.KindCategory)
	assert.False(t, category.Toggle())
	assert.False(t, category.Expanded())
	assert.True(t, category.Toggle())
	assert.True(t, category.Expanded())

	keyword := render.NewNode(catalog.KindKeyword)
	assert.False(t, keyword.Toggle())
	assert.False(t, keyword.Expanded())
	assert.Nil(t, keyword.ChildContainer())
}

func TestToggle_CollapsesOneCategory(t *testing.T) {
	engine := sealedCatalog(t)

	view, err := render.Search(engine, "")
	require.NoError(t, err)
	require.Equal(t, []string{"Fruits", "Apples", "Banana", "Tools", "Garden", "Rake"}, texts(view.Lines))

	lines, ok := render.Toggle(engine, 0, "Fruits")
	require.True(t, ok)
	assert.Equal(t, []string{"Fruits", "Tools", "Garden", "Rake"}, texts(lines))
	assert.False(t, lines[0].Expanded)
	assert.True(t, lines[1].Expanded)

	lines, ok = render.Toggle(engine, 2, "Garden")
	require.True(t, ok)
	assert.Equal(t, []string{"Fruits", "Tools", "Garden"}, texts(lines))

	lines, ok = render.Toggle(engine, 0, "Fruits")
	require.True(t, ok)
	assert.Equal(t, []string{"Fruits", "Apples", "Banana", "Tools", "Garden"}, texts(lines))
}

func TestToggle_IgnoresKeywordsAndStaleLines(t *testing.T) {
	engine := sealedCatalog(t)

	_, err := render.Search(engine, "")
	require.NoError(t, err)

	lines, ok := render.Toggle(engine, 1, "Apples")
	assert.False(t, ok)
	assert.Len(t, lines, 6)

	_, ok = render.Toggle(engine, 1, "Fruits")
	assert.False(t, ok)

	_, ok = render.Toggle(engine, 42, "Fruits")
	assert.False(t, ok)
}

func TestToggle_NextSearchResetsIt(t *testing.T) {
	engine := sealedCatalog(t)

	_, err := render.Search(engine, "")
	require.NoError(t, err)
	_, ok := render.Toggle(engine, 3, "Tools")
	require.True(t, ok)

	view, err := render.Search(engine, "rake")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tools", "Garden", "Rake"}, texts(view.Lines))

	view, err = render.Search(engine, "")
	require.NoError(t, err)
	assert.Len(t, view.Lines, 6)
}
