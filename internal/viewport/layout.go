package viewport

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// line is one physical terminal line of a (possibly wrapped) row.
type line struct {
	col  int
	text string
}

// layoutRow splits a row into the physical lines it occupies at the given
// width: the first line carries the glyph, later lines hang under the label.
// Embedded newlines in the label always start a new line. width <= 0
// disables wrapping.
func layoutRow(r Row, glyph string, width int) []line {
	indent := 2 * r.Depth
	lead := glyph + " "
	labelCol := indent + runewidth.StringWidth(lead)

	avail := 0
	if width > 0 {
		avail = width - labelCol
		if avail < 1 {
			avail = 1
		}
	}

	var out []line
	for i, part := range strings.Split(r.Label, "\n") {
		for j, chunk := range wrap(sanitize(part), avail) {
			if i == 0 && j == 0 {
				out = append(out, line{col: indent, text: lead + chunk})
				continue
			}
			out = append(out, line{col: labelCol, text: chunk})
		}
	}
	return out
}

// wrap breaks s into chunks no wider than limit display columns. A rune
// wider than limit still gets a chunk of its own. limit <= 0 disables
// wrapping. The result always holds at least one (possibly empty) chunk.
func wrap(s string, limit int) []string {
	if limit <= 0 || runewidth.StringWidth(s) <= limit {
		return []string{s}
	}
	var (
		out []string
		cur strings.Builder
		w   int
	)
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w > 0 && w+rw > limit {
			out = append(out, cur.String())
			cur.Reset()
			w = 0
		}
		cur.WriteRune(r)
		w += rw
	}
	if cur.Len() > 0 || len(out) == 0 {
		out = append(out, cur.String())
	}
	return out
}

// sanitize keeps control characters out of the drawing surface; a tab
// becomes a space and the rest are dropped.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}
