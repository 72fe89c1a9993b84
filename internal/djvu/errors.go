package djvu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidUTF8 is returned when djvused prints an outline that is not
// valid UTF-8 (run without -u it escapes non-ASCII as octal).
var ErrInvalidUTF8 = errors.New("djvused output is not valid UTF-8")

// CommandError is a djvused run that failed or exited non-zero.
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }
