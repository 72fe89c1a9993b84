package outline

import (
	"strconv"
)

// Reference is an entry's link target inside the document: either a page
// index or a named target (usually a page file name or an anchor).
type Reference interface {
	// String is the text written after '#' in the exchange format.
	String() string
	isReference()
}

type PageIndex uint

func (p PageIndex) String() string { return strconv.FormatUint(uint64(p), 10) }
func (PageIndex) isReference()     {}

type NamedTarget string

func (n NamedTarget) String() string { return string(n) }
func (NamedTarget) isReference()     {}

// ParseReference interprets text the way the exchange format does: a page
// index when the whole text is an unsigned integer, a named target otherwise.
func ParseReference(text string) Reference {
	if n, ok := parsePageIndex(text); ok {
		return n
	}
	return NamedTarget(text)
}

func parsePageIndex(text string) (PageIndex, bool) {
	if text == "" {
		return 0, false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(text, 10, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return PageIndex(n), true
}

type Entry struct {
	Label    string
	Target   Reference
	Children []Entry
}

// DefaultEntry is what insertions create: empty label pointing at page 0.
func DefaultEntry() Entry {
	return Entry{Label: "", Target: PageIndex(0)}
}

func (e Entry) clone() Entry {
	out := Entry{Label: e.Label, Target: e.Target}
	if len(e.Children) > 0 {
		out.Children = make([]Entry, len(e.Children))
		for i, ch := range e.Children {
			out.Children[i] = ch.clone()
		}
	}
	return out
}

func (e Entry) equal(o Entry) bool {
	if e.Label != o.Label || e.Target != o.Target || len(e.Children) != len(o.Children) {
		return false
	}
	for i := range e.Children {
		if !e.Children[i].equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Outline is a forest of entries under an implicit, invisible root.
//
// Entries have no identity: they are addressed by Path only, and a Path (or a
// pointer returned by Get) must be re-resolved after any mutating call.
type Outline struct {
	Entries []Entry
}

func New(entries ...Entry) *Outline {
	return &Outline{Entries: entries}
}

// Len returns the number of top-level entries.
func (o *Outline) Len() int { return len(o.Entries) }

// Count returns the total number of entries in the forest.
func (o *Outline) Count() int {
	n := 0
	o.Walk(func(Path, *Entry) bool {
		n++
		return true
	})
	return n
}

// Walk visits entries depth-first in pre-order. Returning false from fn skips
// the entry's subtree.
func (o *Outline) Walk(fn func(p Path, e *Entry) bool) {
	var walk func(prefix Path, entries []Entry)
	walk = func(prefix Path, entries []Entry) {
		for i := range entries {
			p := prefix.Child(i)
			if fn(p, &entries[i]) {
				walk(p, entries[i].Children)
			}
		}
	}
	walk(nil, o.Entries)
}

func (o *Outline) Clone() *Outline {
	out := &Outline{}
	if len(o.Entries) > 0 {
		out.Entries = make([]Entry, len(o.Entries))
		for i, e := range o.Entries {
			out.Entries[i] = e.clone()
		}
	}
	return out
}

func (o *Outline) Equal(other *Outline) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.Entries) != len(other.Entries) {
		return false
	}
	for i := range o.Entries {
		if !o.Entries[i].equal(other.Entries[i]) {
			return false
		}
	}
	return true
}
