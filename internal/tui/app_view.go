package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"navedit/internal/viewport"
)

// chromeLines is the status bar plus the footer.
const chromeLines = 2

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return lipgloss.NewStyle().MaxHeight(m.height).Render(renderMarkdown(helpMarkdown, m.width))
	}

	area := viewport.Area{Width: m.width, Height: max(m.height-chromeLines, 0)}
	surf := newLineSurface(area.Width, area.Height)
	frame := m.renderer.Render(m.sess.Outline, m.sess.Nav, area, surf)

	body := surf.Render(m.styles.normal, m.styles.selected)
	if len(frame.Rows) == 0 && area.Height > 0 {
		lines := strings.Split(body, "\n")
		lines[0] = m.styles.muted.Render("No outline. Press o to add an entry.")
		body = strings.Join(lines, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine(frame), m.footer())
}

func (m appModel) statusLine(f viewport.Frame) string {
	name := "(no document)"
	if m.file != "" {
		name = filepath.Base(m.file)
	}
	if m.sess.Dirty() {
		name += " [+]"
	}
	pos := "0/0"
	if len(f.Rows) > 0 {
		pos = fmt.Sprintf("%d/%d", f.Selected+1, len(f.Rows))
	}
	left := m.styles.statusFile.Render(name)
	right := m.styles.status.Render(fmt.Sprintf("%s  %d entries", pos, m.sess.Outline.Count()))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) footer() string {
	if m.minibufferText != "" {
		if m.pending != confirmNone {
			return m.styles.warn.Render(m.minibufferText)
		}
		return m.minibufferText
	}
	return m.help.View(m.keys)
}
