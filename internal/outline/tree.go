package outline

// Shape is the read-only view navigation needs: how many children an entry
// has. Unresolvable paths report zero.
type Shape interface {
	NumChildren(p Path) int
}

// Tree adds the per-entry data a renderer shows. Both accessors may assume
// the path resolves (they are only asked about paths the Shape produced).
type Tree interface {
	Shape
	Label(p Path) string
	Target(p Path) Reference
}

// siblings resolves the child list that holds the entry at p, together with
// p's index inside it. p must be non-empty.
func (o *Outline) siblings(p Path) (*[]Entry, int, error) {
	list := &o.Entries
	for depth := 0; depth < len(p)-1; depth++ {
		i := p[depth]
		if i < 0 || i >= len(*list) {
			return nil, 0, errOutOfBounds(p, depth, len(*list))
		}
		list = &(*list)[i].Children
	}
	last := len(p) - 1
	if p[last] < 0 || p[last] >= len(*list) {
		return nil, 0, errOutOfBounds(p, last, len(*list))
	}
	return list, p[last], nil
}

// children resolves the child list of the entry at p (top-level for root).
func (o *Outline) children(p Path) (*[]Entry, error) {
	if len(p) == 0 {
		return &o.Entries, nil
	}
	list, i, err := o.siblings(p)
	if err != nil {
		return nil, err
	}
	return &(*list)[i].Children, nil
}

// Get resolves p by descent. The pointer is only valid until the next
// mutating call.
func (o *Outline) Get(p Path) (*Entry, error) {
	if len(p) == 0 {
		return nil, errEmptyPath("get")
	}
	list, i, err := o.siblings(p)
	if err != nil {
		return nil, err
	}
	return &(*list)[i], nil
}

// ChildCount returns the number of children at p, or the number of
// top-level entries when p is empty.
func (o *Outline) ChildCount(p Path) (int, error) {
	list, err := o.children(p)
	if err != nil {
		return 0, err
	}
	return len(*list), nil
}

// InsertFirstChild inserts a default entry as the first child of p (as the
// first top-level entry when p is empty) and returns its path.
func (o *Outline) InsertFirstChild(p Path) (Path, error) {
	list, err := o.children(p)
	if err != nil {
		return nil, err
	}
	*list = insertAt(*list, 0, DefaultEntry())
	return p.Child(0), nil
}

// InsertSiblingBelow inserts a default entry right after the entry at p and
// returns its path.
func (o *Outline) InsertSiblingBelow(p Path) (Path, error) {
	if len(p) == 0 {
		return nil, errEmptyPath("insert sibling")
	}
	list, i, err := o.siblings(p)
	if err != nil {
		return nil, err
	}
	*list = insertAt(*list, i+1, DefaultEntry())
	return p.Sibling(i + 1), nil
}

// DeleteEntry removes the entry at p with its whole subtree. Selection
// repair is the caller's business.
func (o *Outline) DeleteEntry(p Path) error {
	if len(p) == 0 {
		return errEmptyPath("delete")
	}
	list, i, err := o.siblings(p)
	if err != nil {
		return err
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	return nil
}

func (o *Outline) SetLabel(p Path, text string) error {
	e, err := o.Get(p)
	if err != nil {
		return err
	}
	e.Label = text
	return nil
}

func (o *Outline) SetTarget(p Path, ref Reference) error {
	e, err := o.Get(p)
	if err != nil {
		return err
	}
	e.Target = ref
	return nil
}

func (o *Outline) NumChildren(p Path) int {
	n, err := o.ChildCount(p)
	if err != nil {
		return 0
	}
	return n
}

func (o *Outline) Label(p Path) string {
	e, err := o.Get(p)
	if err != nil {
		return ""
	}
	return e.Label
}

func (o *Outline) Target(p Path) Reference {
	e, err := o.Get(p)
	if err != nil || e.Target == nil {
		return PageIndex(0)
	}
	return e.Target
}

func insertAt(list []Entry, i int, e Entry) []Entry {
	list = append(list, Entry{})
	copy(list[i+1:], list[i:])
	list[i] = e
	return list
}
