package outline

import (
	"errors"
	"fmt"
)

// ErrInvalidPath matches every InvalidPathError via errors.Is.
var ErrInvalidPath = errors.New("invalid path")

// InvalidPathError reports a path that does not resolve against the current
// shape of the outline. It is a caller bug, not a recoverable condition.
type InvalidPathError struct {
	Path   Path
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %s: %s", e.Path, e.Reason)
}

func (e *InvalidPathError) Is(target error) bool { return target == ErrInvalidPath }

func errOutOfBounds(p Path, depth, n int) error {
	return &InvalidPathError{
		Path:   p.Clone(),
		Reason: fmt.Sprintf("index %d at depth %d out of range (%d children)", p[depth], depth, n),
	}
}

func errEmptyPath(op string) error {
	return &InvalidPathError{Reason: op + " requires a non-empty path"}
}

func errInvalidKey(key string) error {
	return &InvalidPathError{Reason: fmt.Sprintf("malformed path key %q", key)}
}
