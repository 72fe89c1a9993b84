package viewport

import (
	"navedit/internal/nav"
	"navedit/internal/outline"
)

// Row is one visible entry in display order.
type Row struct {
	Path        outline.Path
	Depth       int
	Label       string
	Target      outline.Reference
	HasChildren bool
	Open        bool
}

// Flatten lists the visible entries depth-first in pre-order. Top-level
// entries are always visible; children only under an expanded parent.
func Flatten(tree outline.Tree, st *nav.State) []Row {
	var out []Row
	var walk func(parent outline.Path)
	walk = func(parent outline.Path) {
		n := tree.NumChildren(parent)
		for i := 0; i < n; i++ {
			p := parent.Child(i)
			kids := tree.NumChildren(p)
			open := st.IsOpen(p)
			out = append(out, Row{
				Path:        p,
				Depth:       p.Depth(),
				Label:       tree.Label(p),
				Target:      tree.Target(p),
				HasChildren: kids > 0,
				Open:        open && kids > 0,
			})
			if open {
				walk(p)
			}
		}
	}
	walk(nil)
	return out
}

// locate returns the index of the selected row, or 0 when the selection is
// empty or not visible.
func locate(rows []Row, selected outline.Path) int {
	if len(selected) == 0 {
		return 0
	}
	for i, r := range rows {
		if r.Path.Equal(selected) {
			return i
		}
	}
	return 0
}
