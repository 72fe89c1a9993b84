// Package viewport turns an outline plus navigation state into the rows that
// fit a bounded drawing area, keeping the selected row on screen.
package viewport

import (
	"navedit/internal/nav"
	"navedit/internal/outline"
)

type Style int

const (
	StyleNormal Style = iota
	StyleSelected
)

// Surface receives the drawing commands. Implementations clip anything that
// falls outside their bounds.
type Surface interface {
	DrawText(col, row int, text string, style Style)
}

// Area is measured in terminal cells: Width columns by Height lines.
type Area struct {
	Width  int
	Height int
}

// Frame describes what a Render call put on screen. Rows holds the whole
// flattened list; [Start, End) is the drawn window.
type Frame struct {
	Rows     []Row
	Start    int
	End      int
	Selected int
	Heights  []int
}

// Drawn reports how many rows the frame shows.
func (f Frame) Drawn() int { return f.End - f.Start }

type Renderer struct {
	Glyphs Glyphs
}

func NewRenderer(g Glyphs) Renderer {
	return Renderer{Glyphs: g}
}

// Render flattens the tree, fits a window containing the selection into
// area, stores the window start in st.ScrollOffset and draws the window.
func (r Renderer) Render(tree outline.Tree, st *nav.State, area Area, surf Surface) Frame {
	rows := Flatten(tree, st)
	f := Frame{Rows: rows, Selected: locate(rows, st.Selected())}
	if len(rows) == 0 {
		st.ScrollOffset = 0
		return f
	}
	if area.Height <= 0 {
		return f
	}

	layouts := make([][]line, len(rows))
	f.Heights = make([]int, len(rows))
	height := func(i int) int {
		if layouts[i] == nil {
			layouts[i] = layoutRow(rows[i], r.Glyphs.For(rows[i]), area.Width)
			f.Heights[i] = len(layouts[i])
		}
		return f.Heights[i]
	}

	f.Start, f.End = fit(height, len(rows), f.Selected, st.ScrollOffset, area.Height)
	st.ScrollOffset = f.Start

	y := 0
	for i := f.Start; i < f.End; i++ {
		style := StyleNormal
		if st.IsSelected(rows[i].Path) {
			style = StyleSelected
		}
		for _, ln := range layouts[i] {
			surf.DrawText(ln.col, y, ln.text, style)
			y++
		}
	}
	return f
}

// fit picks the window [start, end) of n rows. It starts from the previous
// offset (or the selection, if that lies above it), fills the area, and when
// the selection ends up below the window grows the bottom to include it and
// then trims the top until the window fits again. The selected row is always
// inside the result, even when it alone is taller than the area.
func fit(height func(int) int, n, sel, scroll, limit int) (start, end int) {
	start = scroll
	if sel < start {
		start = sel
	}
	if start < 0 {
		start = 0
	}

	used := 0
	end = start
	for end < n && used+height(end) <= limit {
		used += height(end)
		end++
	}
	if end == start {
		used = height(start)
		end = start + 1
	}
	if sel < end {
		return start, end
	}

	for end <= sel {
		used += height(end)
		end++
	}
	for used > limit && start < sel {
		used -= height(start)
		start++
	}
	for end < n && used+height(end) <= limit {
		used += height(end)
		end++
	}
	return start, end
}
