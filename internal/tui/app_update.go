package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"navedit/internal/outline"
	"navedit/internal/watch"
)

type writeDoneMsg struct {
	entries  int
	revision int
	err      error
}

type reloadDoneMsg struct {
	outline *outline.Outline
	err     error
}

type documentChangedMsg struct {
	event watch.Event
}

func (m appModel) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the watcher until the document changes on disk.
func (m appModel) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		return documentChangedMsg{event: <-events}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case editorDoneMsg:
		m.applyExternalEditorResult(msg)
		return m, nil

	case writeDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Error("write failed", zap.String("file", m.file), zap.Error(msg.err))
			m.showMinibuffer("Write failed: " + msg.err.Error())
			return m, nil
		}
		m.sess.MarkSavedAt(msg.revision)
		m.lastWrite = m.now()
		m.showMinibuffer(fmt.Sprintf("Wrote %d entries to %s", msg.entries, m.file))
		return m, nil

	case reloadDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Error("reload failed", zap.String("file", m.file), zap.Error(msg.err))
			m.showMinibuffer("Reload failed: " + msg.err.Error())
			return m, nil
		}
		m.sess.Reload(msg.outline)
		m.showMinibuffer(fmt.Sprintf("Reloaded %d entries", msg.outline.Count()))
		return m, nil

	case documentChangedMsg:
		m.noteDocumentChange(msg.event)
		return m, m.waitForChange()
	}
	return m, nil
}

func (m *appModel) noteDocumentChange(ev watch.Event) {
	switch {
	case errors.Is(ev.Err, watch.ErrFileRemoved):
		m.showMinibuffer(m.file + " was removed")
	case ev.Err != nil:
		m.log.Warn("watcher", zap.Error(ev.Err))
	case !m.lastWrite.IsZero() && m.now().Sub(m.lastWrite) < selfWriteGrace:
		// Our own write.
	default:
		m.showMinibuffer(m.file + " changed on disk; R to reload")
	}
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	pending := m.pending
	m.pending = confirmNone
	m.minibufferText = ""

	nav := m.sess.Nav
	tree := m.sess.Outline

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.sess.Dirty() && pending != confirmQuit {
			m.pending = confirmQuit
			m.showMinibuffer("Unsaved changes: press q again to quit, w to write")
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		nav.MoveUp(tree)
	case key.Matches(msg, m.keys.Down):
		nav.MoveDown(tree)
	case key.Matches(msg, m.keys.Left):
		nav.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		nav.MoveRight(tree)
	case key.Matches(msg, m.keys.Toggle):
		nav.ToggleSelected(tree)
	case key.Matches(msg, m.keys.First):
		nav.SelectFirst(tree)
	case key.Matches(msg, m.keys.Last):
		nav.SelectLast(tree)
	case key.Matches(msg, m.keys.ExpandAll):
		nav.ExpandAll(tree)
	case key.Matches(msg, m.keys.CollapseAll):
		nav.CollapseAll()

	case key.Matches(msg, m.keys.Add):
		if _, err := m.sess.AddBelow(); err != nil {
			return m.fail(err)
		}
	case key.Matches(msg, m.keys.Delete):
		if err := m.sess.DeleteSelected(); err != nil {
			return m.fail(err)
		}
	case key.Matches(msg, m.keys.Edit):
		cmd, err := m.openExternalEditor()
		if err != nil {
			m.showMinibuffer("Editor failed: " + err.Error())
			return m, nil
		}
		return m, cmd
	case key.Matches(msg, m.keys.Yank):
		m.yankSelected()

	case key.Matches(msg, m.keys.Write):
		cmd := m.writeCmd()
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		if m.sess.Dirty() && pending != confirmReload {
			m.pending = confirmReload
			m.showMinibuffer("Unsaved changes: press R again to discard them and reload")
			return m, nil
		}
		cmd := m.reloadCmd()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

// fail ends the program on a broken invariant; these are bugs, not user
// errors.
func (m appModel) fail(err error) (tea.Model, tea.Cmd) {
	m.log.Error("command failed", zap.Error(err))
	m.err = err
	return m, tea.Quit
}

func (m *appModel) yankSelected() {
	e, err := m.sess.Selected()
	if err != nil || e == nil {
		return
	}
	if err := m.yank(e.Label); err != nil {
		m.showMinibuffer("Copy failed: " + err.Error())
		return
	}
	m.showMinibuffer("Copied label")
}

func (m *appModel) writeCmd() tea.Cmd {
	if m.store == nil || m.file == "" {
		m.showMinibuffer("No document to write to")
		return nil
	}
	if m.busy {
		return nil
	}
	m.busy = true
	m.showMinibuffer("Writing…")
	store, file, snapshot, rev := m.store, m.file, m.sess.Outline.Clone(), m.sess.Revision()
	return func() tea.Msg {
		err := store.Write(context.Background(), file, snapshot)
		return writeDoneMsg{entries: snapshot.Count(), revision: rev, err: err}
	}
}

func (m *appModel) reloadCmd() tea.Cmd {
	if m.store == nil || m.file == "" {
		m.showMinibuffer("No document to reload from")
		return nil
	}
	if m.busy {
		return nil
	}
	m.busy = true
	store, file := m.store, m.file
	return func() tea.Msg {
		o, err := store.Read(context.Background(), file)
		return reloadDoneMsg{outline: o, err: err}
	}
}
