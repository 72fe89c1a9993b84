package viewport

import "strings"

// Terminals can't change the user's font, so the row markers come in a
// Unicode and an ASCII flavour for fonts that render the former badly.
type Glyphs struct {
	Leaf   string
	Open   string
	Closed string
}

var (
	UnicodeGlyphs = Glyphs{Leaf: "•", Open: "▾", Closed: "▸"}
	ASCIIGlyphs   = Glyphs{Leaf: "*", Open: "v", Closed: ">"}
)

// GlyphsByName maps a config value to a glyph set; unknown names fall back
// to Unicode.
func GlyphsByName(name string) Glyphs {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii":
		return ASCIIGlyphs
	default:
		return UnicodeGlyphs
	}
}

func (g Glyphs) For(r Row) string {
	switch {
	case !r.HasChildren:
		return g.Leaf
	case r.Open:
		return g.Open
	default:
		return g.Closed
	}
}
