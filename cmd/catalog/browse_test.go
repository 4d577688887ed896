package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/krakend/catalog-search/internal/render"
	"github.com/krakend/catalog-search/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBrowser(t *testing.T) *browser {
	t.Helper()

	engine, err := tools.LoadCatalog(writeFile(t, testCatalog))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	b := newBrowser(engine, time.Hour)
	t.Cleanup(b.debouncer.Close)

	view, err := render.Search(engine, "")
	require.NoError(t, err)
	b.view = view
	b.results.SetText(formatView(view, browseStyle))
	b.moveTo(0)
	return b
}

func lineTexts(b *browser) []string {
	out := make([]string, 0, len(b.view.Lines))
	for _, line := range b.view.Lines {
		out = append(out, line.Text)
	}
	return out
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestBrowser_ToggleCategory(t *testing.T) {
	b := newTestBrowser(t)
	require.Equal(t, []string{"Fruits", "Red apples", "Bananas", "Tools", "Garden", "Rakes"}, lineTexts(b))

	assert.Nil(t, b.resultKeys(key(tcell.KeyEnter)))
	assert.Equal(t, []string{"Fruits", "Tools", "Garden", "Rakes"}, lineTexts(b))
	assert.Contains(t, formatView(b.view, plainStyle), "+ Fruits\n")

	// Garden is the third line now
	b.resultKeys(key(tcell.KeyDown))
	b.resultKeys(runeKey('j'))
	assert.Equal(t, 2, b.cursor)
	b.resultKeys(runeKey(' '))
	assert.Equal(t, []string{"Fruits", "Tools", "Garden"}, lineTexts(b))

	b.resultKeys(runeKey('k'))
	b.resultKeys(key(tcell.KeyUp))
	b.resultKeys(key(tcell.KeyUp))
	assert.Equal(t, 0, b.cursor)
	b.resultKeys(key(tcell.KeyEnter))
	assert.Equal(t, []string{"Fruits", "Red apples", "Bananas", "Tools", "Garden"}, lineTexts(b))
}

func TestBrowser_ToggleKeywordIsNoop(t *testing.T) {
	b := newTestBrowser(t)

	b.moveTo(1)
	b.resultKeys(key(tcell.KeyEnter))
	assert.Len(t, b.view.Lines, 6)

	b.moveTo(99)
	assert.Equal(t, 5, b.cursor)
}

func TestBrowser_OtherKeysPassThrough(t *testing.T) {
	b := newTestBrowser(t)

	event := runeKey('x')
	assert.Same(t, event, b.resultKeys(event))
}

func TestFormatView_Regions(t *testing.T) {
	b := newTestBrowser(t)

	out := formatView(b.view, browseStyle)
	assert.Contains(t, out, `["0"]- Fruits[""]`)
	assert.Contains(t, out, `["5"]`)
	assert.NotContains(t, formatView(b.view, plainStyle), `["0"]`)
}
