package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"navedit/internal/editor"
)

type editorDoneMsg struct {
	err error
}

// openExternalEditor hands the selected entry to the user's editor. The
// program is suspended while the editor runs.
func (m *appModel) openExternalEditor() (tea.Cmd, error) {
	e, err := m.sess.Selected()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New("nothing selected")
	}

	h, err := m.editor.Prepare(e.Label, e.Target)
	if err != nil {
		return nil, err
	}
	m.handoff = h

	cmd := m.editor.Command(h.Path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{err: err}
	}), nil
}

func (m *appModel) applyExternalEditorResult(msg editorDoneMsg) {
	h := m.handoff
	m.handoff = nil
	if h == nil {
		return
	}

	if msg.err != nil {
		if err := h.Discard(); err != nil {
			m.log.Warn("remove hand-off file", zap.Error(err))
		}
		m.showMinibuffer("Editor failed: " + msg.err.Error())
		return
	}

	label, target, changed, err := h.Result()
	switch {
	case errors.Is(err, editor.ErrIncompleteEdit):
		m.showMinibuffer("Edit discarded: expected a label line and a target line")
		return
	case err != nil:
		m.showMinibuffer("Editor read failed: " + err.Error())
		return
	case !changed:
		m.showMinibuffer(fmt.Sprintf("No changes from %s", m.editor.Name()))
		return
	}

	if _, err := m.sess.ApplyEdit(label, target); err != nil {
		m.log.Error("apply edit", zap.Error(err))
		m.showMinibuffer("Edit failed: " + err.Error())
		return
	}
	m.showMinibuffer("Entry updated")
}
