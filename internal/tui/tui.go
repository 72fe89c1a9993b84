package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run drives the editor until the user quits. It returns the error that
// ended the program, if any.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)

	m := newAppModel(opts)
	m.log.Info("starting", zap.String("file", m.file), zap.Int("entries", m.sess.Outline.Count()))
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(appModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
