// Package nav tracks what the user is looking at in an outline: the selected
// entry, which entries are expanded, and how far the view is scrolled.
//
// State never holds on to the outline. Every method that needs to know the
// shape of the tree takes an outline.Shape, so the same state works against
// the real model and against test fixtures, and is always checked against
// the current shape after a structural change.
package nav

import (
	"sort"

	"navedit/internal/outline"
)

type State struct {
	selected outline.Path
	expanded map[string]outline.Path

	// ScrollOffset is the flattened index of the first visible row. The
	// viewport renderer reads and rewrites it.
	ScrollOffset int
}

// New selects the first top-level entry, if any; nothing is expanded.
func New(shape outline.Shape) *State {
	s := &State{expanded: map[string]outline.Path{}}
	s.SelectFirst(shape)
	return s
}

func (s *State) Selected() outline.Path { return s.selected.Clone() }

// Select replaces the selection without validating it.
func (s *State) Select(p outline.Path) { s.selected = p.Clone() }

func (s *State) IsSelected(p outline.Path) bool {
	return len(s.selected) > 0 && s.selected.Equal(p)
}

func (s *State) IsOpen(p outline.Path) bool {
	if len(p) == 0 {
		return true
	}
	_, ok := s.expanded[p.Key()]
	return ok
}

// Expanded returns the expanded paths in pre-order.
func (s *State) Expanded() []outline.Path {
	out := make([]outline.Path, 0, len(s.expanded))
	for _, p := range s.expanded {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Open expands p. The root is always open, so the empty path is a no-op.
func (s *State) Open(p outline.Path) bool {
	if len(p) == 0 || s.IsOpen(p) {
		return false
	}
	if s.expanded == nil {
		s.expanded = map[string]outline.Path{}
	}
	s.expanded[p.Key()] = p.Clone()
	return true
}

func (s *State) Close(p outline.Path) bool {
	if len(p) == 0 || !s.IsOpen(p) {
		return false
	}
	delete(s.expanded, p.Key())
	return true
}

func (s *State) Toggle(p outline.Path) bool {
	if len(p) == 0 {
		return false
	}
	if s.IsOpen(p) {
		return s.Close(p)
	}
	return s.Open(p)
}

// ToggleSelected flips the selected entry. Childless entries are never
// expanded, but an open one (its children were deleted) can still be closed.
func (s *State) ToggleSelected(shape outline.Shape) bool {
	if len(s.selected) == 0 {
		return false
	}
	if !s.IsOpen(s.selected) && shape.NumChildren(s.selected) == 0 {
		return false
	}
	return s.Toggle(s.selected)
}

func (s *State) ExpandAll(shape outline.Shape) {
	var walk func(p outline.Path)
	walk = func(p outline.Path) {
		n := shape.NumChildren(p)
		if n > 0 {
			s.Open(p)
		}
		for i := 0; i < n; i++ {
			walk(p.Child(i))
		}
	}
	n := shape.NumChildren(nil)
	for i := 0; i < n; i++ {
		walk(outline.Path{i})
	}
}

// CollapseAll closes every entry. A nested selection moves to its top-level
// ancestor so it stays on a visible row.
func (s *State) CollapseAll() {
	s.expanded = map[string]outline.Path{}
	if len(s.selected) > 1 {
		s.selected = outline.Path{s.selected[0]}
	}
}

func less(a, b outline.Path) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
