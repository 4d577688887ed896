package main

import (
	"fmt"
	"strings"

	"github.com/krakend/catalog-search/internal/render"
)

// style decides how highlighted words and raw label text are written
type style struct {
	open   string
	close  string
	escape func(string) string

	// regions tags each line as a tview region named by its index
	regions bool
}

var plainStyle = style{open: "[[", close: "]]", escape: func(s string) string { return s }}

// formatLine writes one entry: indentation, expansion glyph, label
func formatLine(line render.Line, st style) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", line.Depth))

	switch {
	case !line.Kind.IsCategoryLike():
		b.WriteString("  ")
	case line.Expanded:
		b.WriteString("- ")
	default:
		b.WriteString("+ ")
	}

	for _, segment := range line.Segments {
		if segment.Highlighted {
			b.WriteString(st.open)
			b.WriteString(st.escape(segment.Text))
			b.WriteString(st.close)
		} else {
			b.WriteString(st.escape(segment.Text))
		}
	}

	return b.String()
}

// formatView writes the visible tree followed by a one-line summary
func formatView(view render.View, st style) string {
	var b strings.Builder
	for i, line := range view.Lines {
		if st.regions {
			fmt.Fprintf(&b, `["%d"]%s[""]`, i, formatLine(line, st))
		} else {
			b.WriteString(formatLine(line, st))
		}
		b.WriteByte('\n')
	}

	if view.Result.Active && len(view.Lines) == 0 {
		b.WriteString("No entries match.\n")
	}
	fmt.Fprintf(&b, "%d of %d entries visible, %d matched\n", len(view.Lines), view.Total, len(view.Result.Matches))
	return b.String()
}
