package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/krakend/catalog-search/internal/debounce"
	"github.com/krakend/catalog-search/internal/filter"
	"github.com/krakend/catalog-search/internal/render"
	"github.com/rivo/tview"
	"github.com/urfave/cli/v2"
)

var browseStyle = style{open: "[yellow::b]", close: "[-::-]", escape: tview.Escape, regions: true}

// browser wires a tview input field to the debouncer and the result pane
type browser struct {
	app       *tview.Application
	input     *tview.InputField
	results   *tview.TextView
	engine    *filter.Engine
	debouncer *debounce.Debouncer

	// lastKey is the code of the key that produced the current input change
	lastKey int

	// seq orders searches; drawn is the latest one on screen (UI goroutine only)
	seq   atomic.Uint64
	drawn uint64

	// view is what the result pane shows and cursor the selected line (UI goroutine only)
	view   render.View
	cursor int
}

// keyCode maps a terminal key event to the code the debouncer understands
func keyCode(event *tcell.EventKey) int {
	switch event.Key() {
	case tcell.KeyEnter:
		return debounce.KeyEnter
	case tcell.KeyRune:
		return int(event.Rune())
	default:
		return int(event.Key())
	}
}

func newBrowser(engine *filter.Engine, delay time.Duration) *browser {
	b := &browser{
		app:     tview.NewApplication(),
		engine:  engine,
		results: tview.NewTextView(),
		input:   tview.NewInputField(),
	}
	b.debouncer = debounce.New(b.search, debounce.WithDelay(delay))

	b.results.
		SetDynamicColors(true).
		SetScrollable(true).
		SetBorder(true).
		SetTitle("Catalog")

	b.input.
		SetLabel("Search: ").
		SetFieldWidth(0).
		SetChangedFunc(func(text string) {
			b.debouncer.Handle(debounce.Event{Query: text, KeyCode: b.lastKey})
		}).
		SetDoneFunc(func(key tcell.Key) {
			switch key {
			case tcell.KeyEnter:
				b.debouncer.Handle(debounce.Event{Query: b.input.GetText(), KeyCode: debounce.KeyEnter})
			case tcell.KeyEscape:
				b.app.Stop()
			}
		})
	b.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyTab {
			b.app.SetFocus(b.results)
			return nil
		}
		b.lastKey = keyCode(event)
		return event
	})
	b.results.SetRegions(true)
	b.results.SetInputCapture(b.resultKeys)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.input, 1, 0, true).
		AddItem(b.results, 0, 1, false)
	b.app.SetRoot(layout, true).SetFocus(b.input)

	return b
}

// search runs on the UI goroutine for immediate events and on a timer
// goroutine otherwise; drawing always goes through the application queue
func (b *browser) search(query string) {
	seq := b.seq.Add(1)

	view, err := render.Search(b.engine, query)
	text := formatView(view, browseStyle)
	if err != nil {
		text = fmt.Sprintf("[red]%s[-]\n", tview.Escape(err.Error()))
	}

	go b.app.QueueUpdateDraw(func() {
		if seq < b.drawn {
			return
		}
		b.drawn = seq
		b.view = view
		b.results.SetText(text).ScrollToBeginning()
		b.moveTo(0)
	})
}

// resultKeys moves the cursor over the result pane and opens or closes the
// selected category. Tab and Escape go back to the search field.
func (b *browser) resultKeys(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyTab, event.Key() == tcell.KeyEscape:
		b.app.SetFocus(b.input)
	case event.Key() == tcell.KeyUp, event.Rune() == 'k':
		b.moveTo(b.cursor - 1)
	case event.Key() == tcell.KeyDown, event.Rune() == 'j':
		b.moveTo(b.cursor + 1)
	case event.Key() == tcell.KeyEnter, event.Rune() == ' ':
		b.toggle()
	default:
		return event
	}
	return nil
}

// moveTo moves the cursor to line i, clamped to the lines on screen
func (b *browser) moveTo(i int) {
	if i >= len(b.view.Lines) {
		i = len(b.view.Lines) - 1
	}
	if i < 0 {
		i = 0
	}
	b.cursor = i
	b.results.Highlight(strconv.Itoa(i)).ScrollToHighlight()
}

// toggle flips the category under the cursor and redraws the pane in place
func (b *browser) toggle() {
	if b.cursor >= len(b.view.Lines) {
		return
	}

	lines, ok := render.Toggle(b.engine, b.cursor, b.view.Lines[b.cursor].Text)
	if !ok {
		return
	}
	b.view.Lines = lines
	b.results.SetText(formatView(b.view, browseStyle))
	b.moveTo(b.cursor)
}

func (b *browser) run() error {
	defer b.debouncer.Close()

	// Initial view with everything expanded
	b.search("")
	return b.app.Run()
}

func browseCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	// The terminal belongs to the browser until it exits
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	return newBrowser(engine, c.Duration("delay")).run()
}
