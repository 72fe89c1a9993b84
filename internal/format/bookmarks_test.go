package format

import (
	"errors"
	"strings"
	"testing"

	"navedit/internal/outline"

	"pgregory.net/rapid"
)

func TestPrintBookmarks_QuotedLabelRoundTrips(t *testing.T) {
	t.Parallel()

	o := outline.New(outline.Entry{Label: `A "quoted" name`, Target: outline.PageIndex(3)})
	got := PrintBookmarks(o)
	want := "(bookmarks\n (\"A \\\"quoted\\\" name\" \"#3\" ) )\n"
	if got != want {
		t.Fatalf("print=%q, want %q", got, want)
	}
	back, err := ParseBookmarks(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !back.Equal(o) {
		t.Fatalf("round trip=%+v, want %+v", back.Entries, o.Entries)
	}
}

func TestPrintBookmarks_DoublesBackslash(t *testing.T) {
	t.Parallel()

	o := outline.New(outline.Entry{Label: `a\b`, Target: outline.PageIndex(1)})
	got := PrintBookmarks(o)
	if want := "(bookmarks\n (\"a\\\\b\" \"#1\" ) )\n"; got != want {
		t.Fatalf("print=%q, want %q", got, want)
	}
	back, err := ParseBookmarks(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if back.Entries[0].Label != `a\b` {
		t.Fatalf("label=%q", back.Entries[0].Label)
	}
}

func TestParseBookmarks_References(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want outline.Reference
	}{
		{`(bookmarks ("x" "#756"))`, outline.PageIndex(756)},
		{`(bookmarks ("x" "#page0008.djvu"))`, outline.NamedTarget("page0008.djvu")},
		{`(bookmarks ("x" "#0"))`, outline.PageIndex(0)},
		{`(bookmarks ("x" "#"))`, outline.NamedTarget("")},
		{`(bookmarks ("x" "#-4"))`, outline.NamedTarget("-4")},
		{`(bookmarks ("x" "# 12"))`, outline.NamedTarget(" 12")},
		{`(bookmarks ("x" "#99999999999999999999999"))`, outline.NamedTarget("99999999999999999999999")},
	}
	for _, tt := range tests {
		o, err := ParseBookmarks(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got := o.Entries[0].Target; got != tt.want {
			t.Fatalf("parse %q: target=%#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseBookmarks_Escapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
	}{
		{`a\qb`, "ab"},
		{`a\"b`, `a"b`},
		{`a\\b`, `a\b`},
		{`line\nbreak`, "line\nbreak"},
		{`tab\there`, "tab\there"},
		{`cr\r`, "cr\r"},
		{"raw\nnewline", "raw\nnewline"},
		{`ünï\écode`, "ünïcode"},
	}
	for _, tt := range tests {
		o, err := ParseBookmarks(`(bookmarks ("` + tt.label + `" "#1"))`)
		if err != nil {
			t.Fatalf("parse label %q: %v", tt.label, err)
		}
		if got := o.Entries[0].Label; got != tt.want {
			t.Fatalf("label %q parsed to %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestParseBookmarks_EmptyDocument(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "  \n\t", "(bookmarks)", "(bookmarks )\n"} {
		o, err := ParseBookmarks(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if o.Len() != 0 {
			t.Fatalf("parse %q: %d entries, want none", in, o.Len())
		}
	}

	printed := PrintBookmarks(outline.New())
	if printed != "(bookmarks )\n" {
		t.Fatalf("print empty=%q", printed)
	}
	o, err := ParseBookmarks(printed)
	if err != nil || o.Len() != 0 {
		t.Fatalf("re-parse empty: %v, %+v", err, o)
	}
}

func TestParseBookmarks_Nested(t *testing.T) {
	t.Parallel()

	in := `(bookmarks
 ("Contents" "#1"
  ("Part I" "#5"
   ("Chapter 1" "#page0007.djvu" )
   ("Chapter 2" "#19" ) )
  ("Part II" "#40" ) )
 ("Index" "#300" ) )
`
	o, err := ParseBookmarks(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := outline.New(
		outline.Entry{Label: "Contents", Target: outline.PageIndex(1), Children: []outline.Entry{
			{Label: "Part I", Target: outline.PageIndex(5), Children: []outline.Entry{
				{Label: "Chapter 1", Target: outline.NamedTarget("page0007.djvu")},
				{Label: "Chapter 2", Target: outline.PageIndex(19)},
			}},
			{Label: "Part II", Target: outline.PageIndex(40)},
		}},
		outline.Entry{Label: "Index", Target: outline.PageIndex(300)},
	)
	if !o.Equal(want) {
		t.Fatalf("parsed=%+v", o.Entries)
	}
	if got := PrintBookmarks(o); got != in {
		t.Fatalf("print=%q, want %q", got, in)
	}
}

func TestParseBookmarks_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        string
		line, col int
	}{
		{"missing tag", `(outline)`, 1, 1},
		{"unterminated list", `(bookmarks ("a" "#1")`, 1, 22},
		{"unterminated label", `(bookmarks ("abc`, 1, 17},
		{"missing hash", `(bookmarks ("a" "1"))`, 1, 18},
		{"missing reference", "(bookmarks\n (\"a\" ))", 2, 7},
		{"garbage between entries", "(bookmarks\n (\"a\" \"#1\")\n x)", 3, 2},
		{"trailing text", `(bookmarks ) extra`, 1, 14},
	}
	for _, tt := range tests {
		_, err := ParseBookmarks(tt.in)
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: err=%v, want ErrMalformed", tt.name, err)
		}
		var me *MalformedError
		if !errors.As(err, &me) {
			t.Fatalf("%s: err=%T", tt.name, err)
		}
		if me.Line != tt.line || me.Col != tt.col {
			t.Fatalf("%s: at %d:%d, want %d:%d (%v)", tt.name, me.Line, me.Col, tt.line, tt.col, err)
		}
	}
}

func TestPrintBookmarks_NilTargetPrintsPageZero(t *testing.T) {
	t.Parallel()

	got := PrintBookmarks(outline.New(outline.Entry{Label: "x"}))
	if !strings.Contains(got, `("x" "#0" )`) {
		t.Fatalf("print=%q", got)
	}
}

// genEntries draws a forest whose references survive printing: named
// targets never contain a quote and never look like a page number.
func genEntries(t *rapid.T, depth int) []outline.Entry {
	if depth > 3 {
		return nil
	}
	n := rapid.IntRange(0, 3).Draw(t, "n")
	out := make([]outline.Entry, n)
	for i := range out {
		var ref outline.Reference
		if rapid.Bool().Draw(t, "page") {
			ref = outline.PageIndex(rapid.UintRange(0, 1<<20).Draw(t, "index"))
		} else {
			ref = outline.NamedTarget(rapid.StringMatching(`[a-z][a-z0-9._-]{0,12}`).Draw(t, "name"))
		}
		out[i] = outline.Entry{
			Label:    rapid.String().Draw(t, "label"),
			Target:   ref,
			Children: genEntries(t, depth+1),
		}
	}
	return out
}

func TestBookmarks_RoundTripArbitraryLabels(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := outline.New(genEntries(t, 0)...)
		text := PrintBookmarks(o)
		back, err := ParseBookmarks(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		if !back.Equal(o) {
			t.Fatalf("round trip of %q changed the outline", text)
		}
		if again := PrintBookmarks(back); again != text {
			t.Fatalf("second print differs:\n%q\n%q", text, again)
		}
	})
}
