package editor

import (
	"errors"
	"strings"

	"navedit/internal/outline"
)

// ErrIncompleteEdit is returned when the edited text lost its second line.
var ErrIncompleteEdit = errors.New("edited entry needs a label line and a target line")

// Encode renders an entry for hand-off: the label on the first line, the
// target on the second.
func Encode(label string, target outline.Reference) string {
	if target == nil {
		target = outline.PageIndex(0)
	}
	return label + "\n" + target.String()
}

// Decode reads an edited hand-off back. Only the first two lines count. The
// target is a page index when the trimmed line is a number and a named
// target (taken as written) otherwise.
func Decode(text string) (string, outline.Reference, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return "", nil, ErrIncompleteEdit
	}
	label, target := lines[0], lines[1]
	if n, ok := outline.ParseReference(strings.TrimSpace(target)).(outline.PageIndex); ok {
		return label, n, nil
	}
	return label, outline.NamedTarget(target), nil
}

// splitLines splits on '\n', drops a '\r' before it and ignores the empty
// remainder after a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
