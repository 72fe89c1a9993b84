package outline

import (
	"strconv"
	"strings"
)

// Path is the sequence of zero-based child indices leading from the forest
// root to an entry. The empty path denotes the root itself.
type Path []int

// Child returns a new path one level below p. p is never aliased.
func (p Path) Child(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

// Parent returns the path without its last index (nil for top-level and root).
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1].Clone()
}

// Last returns the final index, or -1 for the root path.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Sibling returns p with its last index replaced by i.
func (p Path) Sibling(i int) Path {
	out := p.Clone()
	out[len(out)-1] = i
	return out
}

func (p Path) Depth() int { return len(p) - 1 }

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is p itself or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return Path(p[:len(prefix)]).Equal(prefix)
}

// Key is a canonical string form, usable as a map key ("" for the root).
func (p Path) Key() string {
	var b strings.Builder
	for i, n := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (Path, error) {
	if key == "" {
		return nil, nil
	}
	parts := strings.Split(key, ".")
	out := make(Path, len(parts))
	for i, s := range parts {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, errInvalidKey(key)
		}
		out[i] = n
	}
	return out, nil
}

func (p Path) String() string { return "[" + strings.ReplaceAll(p.Key(), ".", ",") + "]" }
