package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"go.uber.org/zap"

	"navedit/internal/editor"
	"navedit/internal/outline"
	"navedit/internal/session"
	"navedit/internal/viewport"
	"navedit/internal/watch"
)

// documentStore reads and writes the outline of the open document.
// *djvu.Tool is the real one.
type documentStore interface {
	Read(ctx context.Context, file string) (*outline.Outline, error)
	Write(ctx context.Context, file string, o *outline.Outline) error
}

// Options wires the program's collaborators.
type Options struct {
	File    string
	Session *session.Session
	Store   documentStore
	Editor  *editor.Editor
	// Watcher may be nil.
	Watcher *watch.Watcher
	Glyphs  viewport.Glyphs
	Theme   string
	Log     *zap.Logger
}

// confirmable actions need a second key press while there are unsaved edits.
type confirmable int

const (
	confirmNone confirmable = iota
	confirmQuit
	confirmReload
)

// selfWriteGrace hides watcher events caused by our own writes.
const selfWriteGrace = 2 * time.Second

type appModel struct {
	file    string
	sess    *session.Session
	store   documentStore
	editor  *editor.Editor
	watcher *watch.Watcher
	log     *zap.Logger

	renderer viewport.Renderer
	styles   styles
	keys     keyMap
	help     help.Model
	yank     func(string) error
	now      func() time.Time

	width  int
	height int

	showHelp       bool
	minibufferText string
	pending        confirmable
	busy           bool
	handoff        *editor.Handoff
	lastWrite      time.Time

	// err ends the program; Run returns it.
	err error
}

func newAppModel(opts Options) appModel {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New(nil)
	}
	glyphs := opts.Glyphs
	if glyphs == (viewport.Glyphs{}) {
		glyphs = viewport.UnicodeGlyphs
	}
	ed := opts.Editor
	if ed == nil {
		ed = editor.New("", "", log)
	}
	return appModel{
		file:     opts.File,
		sess:     sess,
		store:    opts.Store,
		editor:   ed,
		watcher:  opts.Watcher,
		log:      log.Named("tui"),
		renderer: viewport.NewRenderer(glyphs),
		styles:   newStyles(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		yank:     copyToClipboard,
		now:      time.Now,
	}
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
}
