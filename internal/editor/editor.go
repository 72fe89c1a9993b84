// Package editor hands a single outline entry to an external line editor
// and reads the edited entry back.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"navedit/internal/outline"
)

const fallbackEditor = "vi"

type Editor struct {
	// Setting is the configured editor command; it wins over $VISUAL and
	// $EDITOR when set.
	Setting string
	// Dir holds the hand-off files. Empty means os.TempDir().
	Dir string

	log    *zap.Logger
	getenv func(string) string
}

func New(setting, dir string, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{Setting: setting, Dir: dir, log: log, getenv: os.Getenv}
}

// Name resolves the editor command: configuration, then $VISUAL, then
// $EDITOR, then vi.
func (e *Editor) Name() string {
	if v := strings.TrimSpace(e.Setting); v != "" {
		return v
	}
	getenv := e.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(getenv("EDITOR")); v != "" {
		return v
	}
	return fallbackEditor
}

// Command builds the process that edits path. Nothing is started.
func (e *Editor) Command(path string) *exec.Cmd {
	args := splitShellWords(e.Name())
	if len(args) == 0 {
		args = []string{fallbackEditor}
	}
	return exec.Command(args[0], append(args[1:], path)...)
}

// Handoff is one entry written out for editing.
type Handoff struct {
	Path   string
	before string
}

// Prepare writes the entry to a fresh file in e.Dir.
func (e *Editor) Prepare(label string, target outline.Reference) (h *Handoff, err error) {
	if e.Dir != "" {
		if err := os.MkdirAll(e.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create scratch dir: %w", err)
		}
	}
	f, err := os.CreateTemp(e.Dir, "navedit-entry-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create hand-off file: %w", err)
	}
	path := f.Name()
	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			err = multierr.Append(err, os.Remove(path))
		}
	}()

	text := Encode(label, target)
	if _, err := f.WriteString(text); err != nil {
		return nil, fmt.Errorf("write hand-off file: %w", err)
	}
	e.log.Debug("entry handed off", zap.String("path", path), zap.String("editor", e.Name()))
	return &Handoff{Path: path, before: text}, nil
}

// Result reads the edited entry and removes the file. changed is false when
// the text came back untouched.
func (h *Handoff) Result() (label string, target outline.Reference, changed bool, err error) {
	defer func() {
		if rmErr := os.Remove(h.Path); rmErr != nil && !os.IsNotExist(rmErr) {
			err = multierr.Append(err, rmErr)
		}
	}()

	b, err := os.ReadFile(h.Path)
	if err != nil {
		return "", nil, false, fmt.Errorf("read hand-off file: %w", err)
	}
	after := string(b)
	label, target, err = Decode(after)
	if err != nil {
		return "", nil, false, err
	}
	return label, target, strings.TrimRight(after, "\r\n") != h.before, nil
}

// Discard removes the hand-off file without reading it.
func (h *Handoff) Discard() error {
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
