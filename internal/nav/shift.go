package nav

import "navedit/internal/outline"

// ShiftInserted keeps expanded entries expanded after an entry was inserted
// at p: every expanded path that addressed p or a later sibling (or anything
// below them) moves one slot down.
func (s *State) ShiftInserted(p outline.Path) {
	if len(p) == 0 {
		return
	}
	s.remap(func(q outline.Path) (outline.Path, bool) {
		if !sameParentAtOrAfter(q, p, p.Last()) {
			return q, true
		}
		q = q.Clone()
		q[len(p)-1]++
		return q, true
	})
}

// ShiftDeleted is the counterpart of ShiftInserted for a deletion at p:
// expanded paths inside the deleted subtree are forgotten and later siblings
// move one slot up.
func (s *State) ShiftDeleted(p outline.Path) {
	if len(p) == 0 {
		return
	}
	s.remap(func(q outline.Path) (outline.Path, bool) {
		if q.HasPrefix(p) {
			return nil, false
		}
		if !sameParentAtOrAfter(q, p, p.Last()+1) {
			return q, true
		}
		q = q.Clone()
		q[len(p)-1]--
		return q, true
	})
}

func (s *State) remap(fn func(outline.Path) (outline.Path, bool)) {
	next := make(map[string]outline.Path, len(s.expanded))
	for _, q := range s.expanded {
		if nq, keep := fn(q); keep {
			next[nq.Key()] = nq
		}
	}
	s.expanded = next
}

// sameParentAtOrAfter reports whether q runs through p's parent at a sibling
// index >= from.
func sameParentAtOrAfter(q, p outline.Path, from int) bool {
	d := len(p) - 1
	if len(q) <= d {
		return false
	}
	if !outline.Path(q[:d]).Equal(p[:d]) {
		return false
	}
	return q[d] >= from
}
