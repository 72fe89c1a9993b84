package format

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// WriteEDN writes an outline document as EDN: a map with :count and
// :entries, each entry a map keyed by keywords.
func WriteEDN(w io.Writer, doc outlineDoc, pretty bool) error {
	var buf bytes.Buffer
	enc := ednEncoder{pretty: pretty, indent: 2}
	buf.WriteString("{:count ")
	buf.WriteString(strconv.Itoa(doc.Count))
	enc.sep(&buf, 1)
	buf.WriteString(":entries ")
	enc.writeEntries(&buf, doc.Entries, 1)
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	pretty bool
	indent int
}

// sep separates two items at the given nesting level.
func (e ednEncoder) sep(buf *bytes.Buffer, level int) {
	if !e.pretty {
		buf.WriteByte(' ')
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", level*e.indent))
}

func (e ednEncoder) writeEntries(buf *bytes.Buffer, entries []entryDoc, level int) {
	buf.WriteByte('[')
	for i, d := range entries {
		if e.pretty || i > 0 {
			e.sep(buf, level+1)
		}
		e.writeEntry(buf, d, level+1)
	}
	if e.pretty && len(entries) > 0 {
		e.sep(buf, level)
	}
	buf.WriteByte(']')
}

func (e ednEncoder) writeEntry(buf *bytes.Buffer, d entryDoc, level int) {
	buf.WriteString("{:label ")
	buf.WriteString(ednString(d.Label))
	e.sep(buf, level)
	buf.WriteString(":kind :")
	buf.WriteString(d.Kind)
	e.sep(buf, level)
	buf.WriteString(":target ")
	if d.Kind == kindPage {
		buf.WriteString(d.Target)
	} else {
		buf.WriteString(ednString(d.Target))
	}
	if len(d.Children) > 0 {
		e.sep(buf, level)
		buf.WriteString(":children ")
		e.writeEntries(buf, d.Children, level)
	}
	buf.WriteByte('}')
}

// ednString quotes s. EDN strings share Go's escapes for the characters
// that matter here, but not \x or \U forms, so non-printables go out as
// \uXXXX.
func ednString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				b.WriteString(strings.Repeat("0", 4-len(hex)))
				b.WriteString(hex)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
