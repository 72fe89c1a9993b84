package nav

import "navedit/internal/outline"

func (s *State) SelectFirst(shape outline.Shape) {
	if shape.NumChildren(nil) == 0 {
		s.selected = nil
		return
	}
	s.selected = outline.Path{0}
}

// SelectLast selects the last visible row: the last top-level entry, then
// its last child for as long as the current entry is open and has children.
func (s *State) SelectLast(shape outline.Shape) {
	n := shape.NumChildren(nil)
	if n == 0 {
		s.selected = nil
		return
	}
	s.selected = s.descendLast(shape, outline.Path{n - 1})
}

func (s *State) descendLast(shape outline.Shape, p outline.Path) outline.Path {
	for s.IsOpen(p) {
		n := shape.NumChildren(p)
		if n == 0 {
			break
		}
		p = p.Child(n - 1)
	}
	return p
}

// MoveUp selects the previous row in pre-order, or the parent of a first
// child.
func (s *State) MoveUp(shape outline.Shape) {
	if len(s.selected) == 0 {
		return
	}
	last := s.selected.Last()
	if last == 0 {
		// From the first top-level entry this empties the selection.
		s.selected = s.selected.Parent()
		return
	}
	s.selected = s.descendLast(shape, s.selected.Sibling(last-1))
}

// MoveDown selects the next row in pre-order, or stays put on the last one.
func (s *State) MoveDown(shape outline.Shape) {
	if len(s.selected) == 0 {
		s.SelectFirst(shape)
		return
	}
	if s.IsOpen(s.selected) && shape.NumChildren(s.selected) > 0 {
		s.selected = s.selected.Child(0)
		return
	}
	for depth := len(s.selected) - 1; depth >= 0; depth-- {
		parent := outline.Path(s.selected[:depth])
		next := s.selected[depth] + 1
		if next < shape.NumChildren(parent) {
			s.selected = parent.Child(next)
			return
		}
	}
}

// MoveLeft closes the selected entry if it is open, otherwise selects its
// parent. A top-level entry stays selected.
func (s *State) MoveLeft() {
	if len(s.selected) == 0 {
		return
	}
	if s.Close(s.selected) {
		return
	}
	if parent := s.selected.Parent(); len(parent) > 0 {
		s.selected = parent
	}
}

// MoveRight opens the selected entry when it has children.
func (s *State) MoveRight(shape outline.Shape) {
	if len(s.selected) == 0 || shape.NumChildren(s.selected) == 0 {
		return
	}
	s.Open(s.selected)
}

// Clamp repairs a selection that no longer resolves (for instance after the
// outline was reloaded from disk) by walking it back to the nearest entry
// that exists, and drops expanded paths that no longer have children.
func (s *State) Clamp(shape outline.Shape) {
	for key, p := range s.expanded {
		if !resolves(shape, p) || shape.NumChildren(p) == 0 {
			delete(s.expanded, key)
		}
	}
	if len(s.selected) == 0 {
		s.SelectFirst(shape)
		return
	}
	p := s.selected.Clone()
	for len(p) > 0 {
		parent := outline.Path(p[:len(p)-1])
		if n := shape.NumChildren(parent); n > 0 && resolves(shape, parent) {
			if p[len(p)-1] >= n {
				p[len(p)-1] = n - 1
			}
			s.selected = p
			return
		}
		p = parent.Clone()
	}
	s.SelectFirst(shape)
}

// resolves reports whether every index of p is in range.
func resolves(shape outline.Shape, p outline.Path) bool {
	for depth := range p {
		if p[depth] < 0 || p[depth] >= shape.NumChildren(p[:depth]) {
			return false
		}
	}
	return true
}
