// Package djvu reads and writes the outline of a DjVu document through the
// djvused tool from DjVuLibre.
package djvu

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"navedit/internal/format"
	"navedit/internal/outline"
)

const (
	DefaultBinary = "djvused"

	// scratchName is the file set-outline reads from, inside the scratch dir.
	scratchName = "tempfile"
)

// runFunc runs name with args and returns what it printed.
type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

type Tool struct {
	// Binary is the djvused executable, looked up in $PATH when bare.
	Binary string
	// ScratchDir receives the outline text handed to set-outline.
	ScratchDir string

	log *zap.Logger
	run runFunc
}

func New(binary, scratchDir string, log *zap.Logger) *Tool {
	if binary == "" {
		binary = DefaultBinary
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tool{Binary: binary, ScratchDir: scratchDir, log: log.Named("djvu"), run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (t *Tool) exec(ctx context.Context, args ...string) ([]byte, error) {
	t.log.Debug("running", zap.String("binary", t.Binary), zap.Strings("args", args))
	stdout, stderr, err := t.run(ctx, t.Binary, args...)
	if err != nil {
		return nil, &CommandError{Name: t.Binary, Args: args, Stderr: string(stderr), Err: err}
	}
	if len(stderr) > 0 {
		t.log.Warn("djvused stderr", zap.ByteString("stderr", stderr))
	}
	return stdout, nil
}

// ReadText returns the outline text of file exactly as djvused prints it.
func (t *Tool) ReadText(ctx context.Context, file string) (string, error) {
	out, err := t.exec(ctx, file, "-u", "-e", "print-outline")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("read outline of %s: %w", file, ErrInvalidUTF8)
	}
	return string(out), nil
}

// Read loads and parses the outline of file. A document without an outline
// yields an empty one.
func (t *Tool) Read(ctx context.Context, file string) (*outline.Outline, error) {
	text, err := t.ReadText(ctx, file)
	if err != nil {
		return nil, err
	}
	o, err := format.ParseBookmarks(text)
	if err != nil {
		return nil, fmt.Errorf("read outline of %s: %w", file, err)
	}
	t.log.Info("outline read", zap.String("file", file), zap.Int("entries", o.Count()))
	return o, nil
}

// ScratchPath is where Write stages the outline text.
func (t *Tool) ScratchPath() string {
	return filepath.Join(t.ScratchDir, scratchName)
}

// Write replaces the outline of file with o and saves the document in place.
func (t *Tool) Write(ctx context.Context, file string, o *outline.Outline) error {
	return t.WriteText(ctx, file, format.PrintBookmarks(o))
}

// WriteText is Write for outline text that is already serialized.
func (t *Tool) WriteText(ctx context.Context, file, text string) (err error) {
	if t.ScratchDir != "" {
		if err := os.MkdirAll(t.ScratchDir, 0o755); err != nil {
			return fmt.Errorf("create scratch dir: %w", err)
		}
	}
	scratch := t.ScratchPath()
	if err := os.WriteFile(scratch, []byte(text), 0o600); err != nil {
		return fmt.Errorf("write scratch outline: %w", err)
	}
	defer func() {
		if rmErr := os.Remove(scratch); rmErr != nil && !os.IsNotExist(rmErr) {
			err = multierr.Append(err, rmErr)
		}
	}()

	if _, err := t.exec(ctx, file, "-e", "set-outline "+scratch, "-s"); err != nil {
		return err
	}
	t.log.Info("outline written", zap.String("file", file))
	return nil
}
