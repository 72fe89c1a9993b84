package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"navedit/internal/viewport"
)

// lineSurface collects the renderer's draw calls for a width x height block
// and turns them into styled terminal lines. Text outside the block is
// clipped.
type lineSurface struct {
	width  int
	height int
	lines  []surfaceLine
}

type surfaceLine struct {
	text  string
	style viewport.Style
	used  bool
}

func newLineSurface(width, height int) *lineSurface {
	if height < 0 {
		height = 0
	}
	return &lineSurface{width: width, height: height, lines: make([]surfaceLine, height)}
}

func (s *lineSurface) DrawText(col, row int, text string, style viewport.Style) {
	if row < 0 || row >= s.height || col < 0 {
		return
	}
	ln := &s.lines[row]
	if w := xansi.StringWidth(ln.text); w < col {
		ln.text += strings.Repeat(" ", col-w)
	}
	ln.text += text
	if s.width > 0 {
		ln.text = xansi.Truncate(ln.text, s.width, "")
	}
	ln.style = style
	ln.used = true
}

// Render joins the lines, painting selected ones across the full width.
func (s *lineSurface) Render(normal, selected lipgloss.Style) string {
	out := make([]string, s.height)
	for i, ln := range s.lines {
		switch {
		case !ln.used:
			out[i] = ""
		case ln.style == viewport.StyleSelected:
			out[i] = selected.Render(padRight(ln.text, s.width))
		default:
			out[i] = normal.Render(ln.text)
		}
	}
	return strings.Join(out, "\n")
}

func padRight(s string, width int) string {
	if w := xansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
