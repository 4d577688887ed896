package render

import (
	"regexp"
	"strings"

	"github.com/krakend/catalog-search/internal/catalog"
)

var wordRegex = regexp.MustCompile(catalog.WordPattern)

// Segment is a run of label text, highlighted or not
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// Line is one displayed entry of the visible tree
type Line struct {
	Text       string       `json:"text"`
	Depth      int          `json:"depth"`
	Kind       catalog.Kind `json:"kind"`
	Expanded   bool         `json:"expanded"`
	Highlights []string     `json:"highlights,omitempty"`
	Segments   []Segment    `json:"-"`
}

// Label renders the line text with highlighted words wrapped in open and close
func (l Line) Label(open, close string) string {
	var b strings.Builder
	for _, segment := range l.Segments {
		if segment.Highlighted {
			b.WriteString(open)
			b.WriteString(segment.Text)
			b.WriteString(close)
		} else {
			b.WriteString(segment.Text)
		}
	}
	return b.String()
}

// Attach gives every entry without a proxy a fresh Node
func Attach(entries []*catalog.Entry) {
	for _, entry := range entries {
		if entry.Proxy == nil {
			entry.Proxy = NewNode(entry.Kind)
		}
	}
}

// Lines returns the entries a reader would see: a node is displayed when it is
// shown and every ancestor is shown with its child region expanded
func Lines(tree catalog.Tree) []Line {
	var lines []Line

	walkVisible(tree, func(entry *catalog.Entry, node *Node, depth int) {
		lines = append(lines, Line{
			Text:       entry.Text,
			Depth:      depth,
			Kind:       entry.Kind,
			Expanded:   node.Expanded(),
			Highlights: node.Highlights(),
			Segments:   Segments(entry.Text, node.Highlighted),
		})
	})

	return lines
}

func walkVisible(tree catalog.Tree, fn func(entry *catalog.Entry, node *Node, depth int)) {
	var walk func(key string, depth int)
	walk = func(key string, depth int) {
		for _, entry := range tree.Children(key) {
			node, ok := entry.Proxy.(*Node)
			if !ok || !node.Visible() {
				continue
			}

			fn(entry, node, depth)

			if node.Expanded() {
				walk(entry.Text, depth+1)
			}
		}
	}
	walk(catalog.RootKey, 0)
}

// Count returns the number of entries below the root
func Count(tree catalog.Tree) int {
	total := 0
	tree.Walk(catalog.RootKey, func(*catalog.Entry, int) { total++ })
	return total
}

// Segments splits label into alternating plain and word runs, marking the words
// for which highlighted returns true
func Segments(label string, highlighted func(word string) bool) []Segment {
	var segments []Segment
	last := 0

	for _, loc := range wordRegex.FindAllStringIndex(label, -1) {
		if loc[0] > last {
			segments = appendPlain(segments, label[last:loc[0]])
		}
		word := label[loc[0]:loc[1]]
		if highlighted(word) {
			segments = append(segments, Segment{Text: word, Highlighted: true})
		} else {
			segments = appendPlain(segments, word)
		}
		last = loc[1]
	}
	if last < len(label) {
		segments = appendPlain(segments, label[last:])
	}

	return segments
}

// appendPlain merges adjacent plain runs
func appendPlain(segments []Segment, text string) []Segment {
	if n := len(segments); n > 0 && !segments[n-1].Highlighted {
		segments[n-1].Text += text
		return segments
	}
	return append(segments, Segment{Text: text})
}
