package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"navedit/internal/outline"
)

// ErrMalformed matches every MalformedError via errors.Is.
var ErrMalformed = errors.New("malformed outline")

// MalformedError locates the first problem found while parsing the
// bookmarks exchange format. Line and Col are 1-based; Col counts runes.
type MalformedError struct {
	Line int
	Col  int
	Msg  string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed outline at line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

const bookmarksTag = "(bookmarks"

// ParseBookmarks reads the outline format printed by `djvused print-outline`:
//
//	(bookmarks
//	 ("Title" "#12"
//	  ("Child" "#page0013.djvu" ) ) )
//
// Whitespace between tokens is insignificant. Empty input is an empty
// outline (that is what djvused prints for a document without one).
func ParseBookmarks(text string) (*outline.Outline, error) {
	p := &parser{src: text}
	p.skipSpace()
	if p.eof() {
		return outline.New(), nil
	}
	if !strings.HasPrefix(p.src[p.pos:], bookmarksTag) {
		return nil, p.errorf("expected %q", bookmarksTag)
	}
	p.pos += len(bookmarksTag)

	entries, err := p.entries()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected text after outline")
	}
	return outline.New(entries...), nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c || p.eof() {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

// entries parses a run of "(...)" entries up to, not including, the closing
// paren of the enclosing list.
func (p *parser) entries() ([]outline.Entry, error) {
	var out []outline.Entry
	for {
		p.skipSpace()
		switch {
		case p.eof():
			return nil, p.errorf("unexpected end of input, expected '(' or ')'")
		case p.peek() == ')':
			return out, nil
		case p.peek() == '(':
			e, err := p.entry()
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		default:
			return nil, p.errorf("expected '(' or ')'")
		}
	}
}

func (p *parser) entry() (outline.Entry, error) {
	if err := p.expect('('); err != nil {
		return outline.Entry{}, err
	}
	label, err := p.label()
	if err != nil {
		return outline.Entry{}, err
	}
	target, err := p.reference()
	if err != nil {
		return outline.Entry{}, err
	}
	children, err := p.entries()
	if err != nil {
		return outline.Entry{}, err
	}
	if err := p.expect(')'); err != nil {
		return outline.Entry{}, err
	}
	return outline.Entry{Label: label, Target: target, Children: children}, nil
}

// label reads a quoted string. Known escapes are decoded; any other escaped
// character is dropped together with its backslash, which is how the
// original producer's output has always been read.
func (p *parser) label() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += size
			switch r {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
}

// reference reads `"#..."`. The text runs to the next double quote; there is
// no escaping inside references.
func (p *parser) reference() (outline.Reference, error) {
	if err := p.expect('"'); err != nil {
		return nil, err
	}
	if p.peek() != '#' || p.eof() {
		return nil, p.errorf("expected '#' at start of reference")
	}
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], '"')
	if end < 0 {
		return nil, p.errorf("unterminated reference")
	}
	text := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return outline.ParseReference(text), nil
}

func (p *parser) errorf(format string, args ...any) error {
	consumed := p.src[:min(p.pos, len(p.src))]
	line := strings.Count(consumed, "\n") + 1
	col := utf8.RuneCountInString(consumed[strings.LastIndexByte(consumed, '\n')+1:]) + 1
	return &MalformedError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// labelEscaper quotes what the parser would otherwise misread. djvused
// itself only needs `"` escaped, but it also reads `\\` as a single
// backslash, so a raw backslash has to be doubled for ParseBookmarks to give
// back the same label. Control characters are written raw; the parser keeps
// them as they are.
var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// PrintBookmarks renders o in the form `djvused set-outline` accepts. It
// never fails; ParseBookmarks(PrintBookmarks(o)) equals o.
func PrintBookmarks(o *outline.Outline) string {
	var b strings.Builder
	b.WriteString(bookmarksTag)
	for _, e := range o.Entries {
		b.WriteByte('\n')
		printEntry(&b, e, 1)
	}
	b.WriteString(" )\n")
	return b.String()
}

func printEntry(b *strings.Builder, e outline.Entry, depth int) {
	b.WriteString(strings.Repeat(" ", depth))
	b.WriteString(`("`)
	b.WriteString(labelEscaper.Replace(e.Label))
	b.WriteString(`" "#`)
	if e.Target != nil {
		b.WriteString(e.Target.String())
	} else {
		b.WriteString(outline.PageIndex(0).String())
	}
	b.WriteByte('"')
	for _, ch := range e.Children {
		b.WriteByte('\n')
		printEntry(b, ch, depth+1)
	}
	b.WriteString(" )")
}
