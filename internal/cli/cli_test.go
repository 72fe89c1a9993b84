package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"navedit/internal/config"
	"navedit/internal/format"
	"navedit/internal/outline"
)

const sampleBookmarks = `(bookmarks
 ("Intro" "#1"
  ("Background" "#2" ) )
 ("Appendix" "#p9.djvu" ) )
`

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	return runCLIWithInput(t, nil, args)
}

func runCLIWithInput(t *testing.T, in io.Reader, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	if in != nil {
		cmd.SetIn(in)
	}
	// A config path that does not exist keeps the user's config out.
	dir := t.TempDir()
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--scratch-dir", filepath.Join(dir, "scratch"),
	}, args...))

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// fakeDjvused installs a shell script that keeps the outline of every
// document in store.
func fakeDjvused(t *testing.T, dir, store string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("needs sh")
	}
	script := filepath.Join(dir, "djvused")
	body := "#!/bin/sh\n" +
		"for a in \"$@\"; do\n" +
		"  case \"$a\" in\n" +
		"    print-outline) cat '" + store + "' 2>/dev/null; exit 0 ;;\n" +
		"    'set-outline '*) cp \"${a#set-outline }\" '" + store + "'; exit $? ;;\n" +
		"  esac\n" +
		"done\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return script
}

func TestCheck_ReportsEntriesAndDepth(t *testing.T) {
	t.Parallel()

	p := writeFile(t, t.TempDir(), "toc.txt", sampleBookmarks)
	out, _, err := runCLI(t, []string{"check", p})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got, want := string(out), p+": 3 entries, depth 2\n"; got != want {
		t.Fatalf("out=%q want %q", got, want)
	}
}

func TestCheck_MalformedNamesFileAndPosition(t *testing.T) {
	t.Parallel()

	p := writeFile(t, t.TempDir(), "toc.txt", "(bookmarks\n (\"Intro\" 3 ) )\n")
	_, _, err := runCLI(t, []string{"check", p})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, format.ErrMalformed) {
		t.Fatalf("err=%v, want ErrMalformed", err)
	}
	var me *format.MalformedError
	if !errors.As(err, &me) || me.Line != 2 {
		t.Fatalf("err=%#v, want line 2", err)
	}
	if !strings.HasPrefix(err.Error(), p+": ") {
		t.Fatalf("err=%q, want file prefix", err.Error())
	}
}

func TestCheck_JSONFromStdin(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(`{"count":1,"entries":[{"label":"Only","kind":"page","target":"4"}]}`)
	out, _, err := runCLIWithInput(t, in, []string{"check", "-", "--input-format", "json"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got := string(out); got != "-: 1 entries, depth 1\n" {
		t.Fatalf("out=%q", got)
	}
}

func TestCheck_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, []string{"check", filepath.Join(t.TempDir(), "nope.txt")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want ErrNotExist", err)
	}
}

func TestRoot_RejectsUnknownGlyphs(t *testing.T) {
	t.Parallel()

	p := writeFile(t, t.TempDir(), "toc.txt", sampleBookmarks)
	_, _, err := runCLI(t, []string{"--glyphs", "emoji", "check", p})
	if err == nil || !strings.Contains(err.Error(), "ui.glyphs") {
		t.Fatalf("err=%v, want ui.glyphs error", err)
	}
}

func TestRoot_NoArgsPrintsHelp(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, nil)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.Contains(string(out), "navedit dump book.djvu") {
		t.Fatalf("help missing examples:\n%s", out)
	}
}

func TestMaxDepth(t *testing.T) {
	t.Parallel()

	if d := maxDepth(outline.New()); d != 0 {
		t.Fatalf("empty depth=%d", d)
	}
	o, err := format.ParseBookmarks(sampleBookmarks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d := maxDepth(o); d != 2 {
		t.Fatalf("depth=%d", d)
	}
}

// The tests below exec a script written during the test and so do not run
// in parallel (ETXTBSY).

func TestDump_FormatsThroughDjvused(t *testing.T) {
	dir := t.TempDir()
	store := writeFile(t, dir, "outline.txt", sampleBookmarks)
	script := fakeDjvused(t, dir, store)

	out, _, err := runCLI(t, []string{"--djvused", script, "dump", "book.djvu", "--format", "json"})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := `{"count":3,"entries":[` +
		`{"label":"Intro","kind":"page","target":"1","children":[{"label":"Background","kind":"page","target":"2"}]},` +
		`{"label":"Appendix","kind":"named","target":"p9.djvu"}]}` + "\n"
	if string(out) != want {
		t.Fatalf("out=%s\nwant=%s", out, want)
	}

	out, _, err = runCLI(t, []string{"--djvused", script, "dump", "book.djvu"})
	if err != nil {
		t.Fatalf("dump bookmarks: %v", err)
	}
	back, err := format.ParseBookmarks(string(out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back.Count() != 3 {
		t.Fatalf("count=%d", back.Count())
	}
}

func TestDump_Malformed(t *testing.T) {
	dir := t.TempDir()
	store := writeFile(t, dir, "outline.txt", "(bookmarks (\"unterminated")
	script := fakeDjvused(t, dir, store)

	_, _, err := runCLI(t, []string{"--djvused", script, "dump", "book.djvu"})
	if !errors.Is(err, format.ErrMalformed) {
		t.Fatalf("err=%v, want ErrMalformed", err)
	}

	out, _, err := runCLI(t, []string{"--djvused", script, "--allow-malformed", "dump", "book.djvu", "--format", "json"})
	if err != nil {
		t.Fatalf("dump --allow-malformed: %v", err)
	}
	if string(out) != `{"count":0,"entries":[]}`+"\n" {
		t.Fatalf("out=%s", out)
	}
}

func TestSet_ReplacesOutline(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "outline.txt")
	script := fakeDjvused(t, dir, store)
	src := writeFile(t, dir, "toc.txt", sampleBookmarks)

	out, _, err := runCLI(t, []string{"--djvused", script, "set", "book.djvu", src})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if string(out) != "Wrote 3 entries to book.djvu\n" {
		t.Fatalf("out=%q", out)
	}

	b, err := os.ReadFile(store)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	got, err := format.ParseBookmarks(string(b))
	if err != nil {
		t.Fatalf("parse store: %v", err)
	}
	want, _ := format.ParseBookmarks(sampleBookmarks)
	if !got.Equal(want) {
		t.Fatalf("stored=%s", b)
	}
}

func TestSet_MalformedLeavesDocumentAlone(t *testing.T) {
	dir := t.TempDir()
	store := writeFile(t, dir, "outline.txt", sampleBookmarks)
	script := fakeDjvused(t, dir, store)
	src := writeFile(t, dir, "toc.txt", "(bookmarks (\"x\" \"#1\")")

	_, _, err := runCLI(t, []string{"--djvused", script, "set", "book.djvu", src})
	if !errors.Is(err, format.ErrMalformed) {
		t.Fatalf("err=%v, want ErrMalformed", err)
	}
	b, _ := os.ReadFile(store)
	if string(b) != sampleBookmarks {
		t.Fatalf("store changed: %s", b)
	}
}

func TestRoot_NeedsTerminal(t *testing.T) {
	t.Parallel()

	// go test never gives the binary a terminal on stdin.
	_, _, err := runCLI(t, []string{"book.djvu"})
	if !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("err=%v, want ErrNoTerminal", err)
	}
}

func TestConfigInit_WritesEffectiveSettings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", path, "--editor", "hx", "--glyphs", "ASCII", "config", "init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if out.String() != "Wrote "+path+"\n" {
		t.Fatalf("out=%q", out.String())
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor != "hx" || cfg.UI.Glyphs != "ascii" {
		t.Fatalf("cfg=%+v", cfg)
	}

	cmd = NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	err = cmd.Execute()
	var exists *configExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("err=%v, want configExistsError", err)
	}
}

func TestConfigPath_PrefersFlag(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, []string{"config", "path"})
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(string(out)), "config.yaml") {
		t.Fatalf("out=%q", out)
	}
}
