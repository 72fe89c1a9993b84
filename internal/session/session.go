// Package session is the command layer of the editor. A Session owns the
// outline being edited together with its navigation state and applies the
// structural commands that have to keep both consistent.
package session

import (
	"fmt"

	"navedit/internal/nav"
	"navedit/internal/outline"
)

type Session struct {
	Outline *outline.Outline
	Nav     *nav.State

	// rev counts mutations; savedRev is the rev that matches the document.
	rev      int
	savedRev int
}

func New(o *outline.Outline) *Session {
	if o == nil {
		o = outline.New()
	}
	return &Session{Outline: o, Nav: nav.New(o)}
}

// Dirty reports whether the outline changed since it was loaded or saved.
func (s *Session) Dirty() bool { return s.rev != s.savedRev }

// Revision identifies the current outline contents for MarkSavedAt.
func (s *Session) Revision() int { return s.rev }

// MarkSavedAt records that the outline as of rev was written. Edits made
// after rev keep the session dirty.
func (s *Session) MarkSavedAt(rev int) { s.savedRev = rev }

// Selected returns the selected entry, or nil when nothing is selected.
func (s *Session) Selected() (*outline.Entry, error) {
	p := s.Nav.Selected()
	if len(p) == 0 {
		return nil, nil
	}
	return s.Outline.Get(p)
}

// AddBelow inserts a default entry under the selection and selects it. An
// open selection gets a new first child; a closed one a sibling right below
// it. With nothing selected the entry becomes the first top-level entry.
func (s *Session) AddBelow() (outline.Path, error) {
	sel := s.Nav.Selected()

	var (
		p   outline.Path
		err error
	)
	switch {
	case len(sel) == 0:
		p, err = s.Outline.InsertFirstChild(nil)
	case s.Nav.IsOpen(sel):
		p, err = s.Outline.InsertFirstChild(sel)
	default:
		p, err = s.Outline.InsertSiblingBelow(sel)
	}
	if err != nil {
		return nil, fmt.Errorf("add entry below %s: %w", sel, err)
	}
	s.Nav.ShiftInserted(p)
	s.Nav.Select(p)
	s.rev++
	return p, nil
}

// DeleteSelected removes the selected entry and its subtree.
//
// The selection is repaired first: an only child hands it to its parent, the
// last of several siblings to the previous sibling; otherwise it stays on
// the same index, which now addresses the next sibling.
func (s *Session) DeleteSelected() error {
	sel := s.Nav.Selected()
	if len(sel) == 0 {
		return nil
	}
	n, err := s.Outline.ChildCount(sel.Parent())
	if err != nil {
		return fmt.Errorf("delete %s: %w", sel, err)
	}
	if _, err := s.Outline.Get(sel); err != nil {
		return fmt.Errorf("delete %s: %w", sel, err)
	}

	switch last := sel.Last(); {
	case last == 0 && n == 1:
		s.Nav.Select(sel.Parent())
	case last == n-1:
		s.Nav.Select(sel.Sibling(last - 1))
	}

	if err := s.Outline.DeleteEntry(sel); err != nil {
		return fmt.Errorf("delete %s: %w", sel, err)
	}
	s.Nav.ShiftDeleted(sel)
	s.rev++
	return nil
}

// ApplyEdit stores the result of an edit hand-off on the selected entry.
func (s *Session) ApplyEdit(label string, target outline.Reference) (changed bool, err error) {
	sel := s.Nav.Selected()
	e, err := s.Outline.Get(sel)
	if err != nil {
		return false, fmt.Errorf("edit %s: %w", sel, err)
	}
	if e.Label == label && e.Target == target {
		return false, nil
	}
	if err := s.Outline.SetLabel(sel, label); err != nil {
		return false, fmt.Errorf("edit %s: %w", sel, err)
	}
	if err := s.Outline.SetTarget(sel, target); err != nil {
		return false, fmt.Errorf("edit %s: %w", sel, err)
	}
	s.rev++
	return true, nil
}

// Reload swaps in a freshly read outline, keeping the selection and
// expansion wherever they still resolve.
func (s *Session) Reload(o *outline.Outline) {
	if o == nil {
		o = outline.New()
	}
	s.Outline = o
	s.Nav.Clamp(o)
	s.rev++
	s.savedRev = s.rev
}
