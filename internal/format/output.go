package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"navedit/internal/outline"
)

// Format names accepted by Write and Read.
const (
	Bookmarks = "bookmarks"
	JSON      = "json"
	EDN       = "edn"
)

// Write writes o in the requested format.
//
// Supported formats:
// - bookmarks (default), the djvused outline syntax
// - json
// - edn
func Write(w io.Writer, o *outline.Outline, format string, pretty bool) error {
	switch strings.ToLower(format) {
	case "", Bookmarks:
		_, err := io.WriteString(w, PrintBookmarks(o))
		return err
	case JSON:
		return WriteJSON(w, toDoc(o), pretty)
	case EDN:
		return WriteEDN(w, toDoc(o), pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Read parses an outline written by Write. EDN is output only.
func Read(r io.Reader, format string) (*outline.Outline, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "", Bookmarks:
		return ParseBookmarks(string(b))
	case JSON:
		var doc outlineDoc
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json outline: %w", err)
		}
		return fromDoc(doc)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// WriteJSON writes strict JSON.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

const (
	kindPage  = "page"
	kindNamed = "named"
)

type entryDoc struct {
	Label    string     `json:"label"`
	Kind     string     `json:"kind"`
	Target   string     `json:"target"`
	Children []entryDoc `json:"children,omitempty"`
}

type outlineDoc struct {
	Count   int        `json:"count"`
	Entries []entryDoc `json:"entries"`
}

func toDoc(o *outline.Outline) outlineDoc {
	return outlineDoc{Count: o.Count(), Entries: toEntryDocs(o.Entries)}
}

func toEntryDocs(entries []outline.Entry) []entryDoc {
	out := make([]entryDoc, 0, len(entries))
	for _, e := range entries {
		d := entryDoc{Label: e.Label, Kind: kindPage, Target: "0"}
		switch ref := e.Target.(type) {
		case outline.PageIndex:
			d.Target = ref.String()
		case outline.NamedTarget:
			d.Kind = kindNamed
			d.Target = ref.String()
		}
		if len(e.Children) > 0 {
			d.Children = toEntryDocs(e.Children)
		}
		out = append(out, d)
	}
	return out
}

func fromDoc(doc outlineDoc) (*outline.Outline, error) {
	entries, err := fromEntryDocs(doc.Entries)
	if err != nil {
		return nil, err
	}
	return outline.New(entries...), nil
}

func fromEntryDocs(docs []entryDoc) ([]outline.Entry, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]outline.Entry, 0, len(docs))
	for _, d := range docs {
		e := outline.Entry{Label: d.Label}
		switch d.Kind {
		case kindPage, "":
			ref, ok := outline.ParseReference(d.Target).(outline.PageIndex)
			if !ok {
				return nil, fmt.Errorf("entry %q: page target %q is not a page index", d.Label, d.Target)
			}
			e.Target = ref
		case kindNamed:
			e.Target = outline.NamedTarget(d.Target)
		default:
			return nil, fmt.Errorf("entry %q: unknown target kind %q", d.Label, d.Kind)
		}
		children, err := fromEntryDocs(d.Children)
		if err != nil {
			return nil, err
		}
		e.Children = children
		out = append(out, e)
	}
	return out, nil
}
