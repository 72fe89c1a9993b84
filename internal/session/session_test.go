package session

import (
	"errors"
	"testing"

	"navedit/internal/outline"
)

func labels(entries []outline.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func expectLabels(t *testing.T, entries []outline.Entry, want ...string) {
	t.Helper()
	got := labels(entries)
	if len(got) != len(want) {
		t.Fatalf("labels=%q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels=%q, want %q", got, want)
		}
	}
}

func leaf(label string) outline.Entry {
	return outline.Entry{Label: label, Target: outline.PageIndex(1)}
}

func TestInsertThenDeleteKeepsIndexOnNextSibling(t *testing.T) {
	t.Parallel()

	s := New(outline.New(leaf("X"), leaf("Y"), leaf("Z")))

	p, err := s.AddBelow()
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !p.Equal(outline.Path{1}) || !s.Nav.Selected().Equal(outline.Path{1}) {
		t.Fatalf("new entry at %v, selected %v", p, s.Nav.Selected())
	}
	expectLabels(t, s.Outline.Entries, "X", "", "Y", "Z")
	if s.Outline.Entries[1].Target != outline.PageIndex(0) {
		t.Fatalf("new entry target=%v", s.Outline.Entries[1].Target)
	}

	// The new entry is selected; deleting it hands [1] back to Y.
	if err := s.DeleteSelected(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectLabels(t, s.Outline.Entries, "X", "Y", "Z")

	// Deleting [1] from [X,Y,Z] leaves the selection on Z.
	if err := s.DeleteSelected(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectLabels(t, s.Outline.Entries, "X", "Z")
	if !s.Nav.Selected().Equal(outline.Path{1}) {
		t.Fatalf("selected=%v", s.Nav.Selected())
	}
	if !s.Dirty() {
		t.Fatalf("expected dirty session")
	}
}

func TestDeleteSelected_RepairRule(t *testing.T) {
	t.Parallel()

	tree := func() *outline.Outline {
		return outline.New(
			outline.Entry{Label: "A", Target: outline.PageIndex(1), Children: []outline.Entry{leaf("only")}},
			outline.Entry{Label: "B", Target: outline.PageIndex(2), Children: []outline.Entry{leaf("b0"), leaf("b1")}},
		)
	}

	tests := []struct {
		name   string
		sel    outline.Path
		want   outline.Path
	}{
		{"only child selects parent", outline.Path{0, 0}, outline.Path{0}},
		{"last sibling selects previous", outline.Path{1, 1}, outline.Path{1, 0}},
		{"first of several keeps index", outline.Path{1, 0}, outline.Path{1, 0}},
		{"last top-level selects previous", outline.Path{1}, outline.Path{0}},
	}
	for _, tt := range tests {
		s := New(tree())
		s.Nav.Select(tt.sel)
		if err := s.DeleteSelected(); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := s.Nav.Selected(); !got.Equal(tt.want) {
			t.Fatalf("%s: selected=%v, want %v", tt.name, got, tt.want)
		}
		if _, err := s.Outline.Get(tt.want); err != nil {
			t.Fatalf("%s: repaired selection does not resolve: %v", tt.name, err)
		}
	}
}

func TestDeleteSelected_LastEntryEmptiesSelection(t *testing.T) {
	t.Parallel()

	s := New(outline.New(leaf("solo")))
	if err := s.DeleteSelected(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Outline.Len() != 0 || len(s.Nav.Selected()) != 0 {
		t.Fatalf("entries=%d selected=%v", s.Outline.Len(), s.Nav.Selected())
	}
	// Nothing selected: deleting again is a no-op.
	if err := s.DeleteSelected(); err != nil {
		t.Fatalf("delete on empty: %v", err)
	}
}

func TestDeleteSelected_InvalidSelection(t *testing.T) {
	t.Parallel()

	s := New(outline.New(leaf("a")))
	s.Nav.Select(outline.Path{4})
	err := s.DeleteSelected()
	if !errors.Is(err, outline.ErrInvalidPath) {
		t.Fatalf("err=%v, want ErrInvalidPath", err)
	}
	if s.Dirty() || s.Outline.Len() != 1 {
		t.Fatalf("failed delete must not change anything")
	}
}

func TestAddBelow_OpenSelectionGetsFirstChild(t *testing.T) {
	t.Parallel()

	s := New(outline.New(
		outline.Entry{Label: "A", Target: outline.PageIndex(1), Children: []outline.Entry{leaf("a0")}},
		outline.Entry{Label: "B", Target: outline.PageIndex(2), Children: []outline.Entry{leaf("b0")}},
	))
	s.Nav.Open(outline.Path{0})
	s.Nav.Open(outline.Path{1})

	p, err := s.AddBelow()
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !p.Equal(outline.Path{0, 0}) {
		t.Fatalf("new path=%v", p)
	}
	expectLabels(t, s.Outline.Entries[0].Children, "", "a0")

	// Adding a sibling before B shifts B's expansion along with it.
	s.Nav.Select(outline.Path{0})
	s.Nav.Close(outline.Path{0})
	if _, err := s.AddBelow(); err != nil {
		t.Fatalf("add: %v", err)
	}
	expectLabels(t, s.Outline.Entries, "A", "", "B")
	if !s.Nav.IsOpen(outline.Path{2}) || s.Nav.IsOpen(outline.Path{1}) {
		t.Fatalf("expanded=%v", s.Nav.Expanded())
	}
}

func TestAddBelow_EmptyOutline(t *testing.T) {
	t.Parallel()

	s := New(nil)
	p, err := s.AddBelow()
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !p.Equal(outline.Path{0}) || s.Outline.Len() != 1 {
		t.Fatalf("path=%v entries=%d", p, s.Outline.Len())
	}
}

func TestApplyEdit(t *testing.T) {
	t.Parallel()

	s := New(outline.New(leaf("old")))
	changed, err := s.ApplyEdit("old", outline.PageIndex(1))
	if err != nil || changed || s.Dirty() {
		t.Fatalf("identical edit: changed=%v err=%v dirty=%v", changed, err, s.Dirty())
	}
	changed, err = s.ApplyEdit("new", outline.NamedTarget("p2.djvu"))
	if err != nil || !changed || !s.Dirty() {
		t.Fatalf("edit: changed=%v err=%v dirty=%v", changed, err, s.Dirty())
	}
	e := s.Outline.Entries[0]
	if e.Label != "new" || e.Target != outline.NamedTarget("p2.djvu") {
		t.Fatalf("entry=%+v", e)
	}

	s.MarkSavedAt(s.Revision())
	if s.Dirty() {
		t.Fatalf("expected clean session after save")
	}
}

func TestApplyEdit_NestedEntryAndInvalidSelection(t *testing.T) {
	t.Parallel()

	s := New(outline.New(outline.Entry{Label: "A", Target: outline.PageIndex(1), Children: []outline.Entry{leaf("a0"), leaf("a1")}}))
	s.Nav.Select(outline.Path{0, 1})
	if changed, err := s.ApplyEdit("a1'", outline.PageIndex(9)); err != nil || !changed {
		t.Fatalf("edit: changed=%v err=%v", changed, err)
	}
	if got := s.Outline.Label(outline.Path{0, 1}); got != "a1'" {
		t.Fatalf("label=%q", got)
	}
	if got := s.Outline.Target(outline.Path{0, 1}); got != outline.PageIndex(9) {
		t.Fatalf("target=%v", got)
	}
	if got := s.Outline.Label(outline.Path{0, 0}); got != "a0" {
		t.Fatalf("sibling changed: %q", got)
	}

	rev := s.Revision()
	s.Nav.Select(outline.Path{0, 5})
	if _, err := s.ApplyEdit("x", outline.PageIndex(1)); !errors.Is(err, outline.ErrInvalidPath) {
		t.Fatalf("err=%v, want ErrInvalidPath", err)
	}
	if s.Revision() != rev {
		t.Fatalf("failed edit bumped the revision")
	}
}

func TestReload_ClampsSelectionAndClearsDirty(t *testing.T) {
	t.Parallel()

	s := New(outline.New(leaf("a"), leaf("b"), leaf("c")))
	s.Nav.Select(outline.Path{2})
	if _, err := s.AddBelow(); err != nil {
		t.Fatalf("add: %v", err)
	}

	s.Reload(outline.New(leaf("a")))
	if s.Dirty() {
		t.Fatalf("reload must clear dirty")
	}
	if !s.Nav.Selected().Equal(outline.Path{0}) {
		t.Fatalf("selected=%v", s.Nav.Selected())
	}
}

func TestMarkSavedAt_LaterEditsStayDirty(t *testing.T) {
	t.Parallel()

	s := New(outline.New(leaf("a")))
	if _, err := s.AddBelow(); err != nil {
		t.Fatalf("add: %v", err)
	}
	written := s.Revision()
	if _, err := s.AddBelow(); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.MarkSavedAt(written)
	if !s.Dirty() {
		t.Fatalf("edit made after the snapshot must keep the session dirty")
	}
	s.MarkSavedAt(s.Revision())
	if s.Dirty() {
		t.Fatalf("expected clean session")
	}
}
