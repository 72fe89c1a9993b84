package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The outline must stay readable on both light and dark backgrounds, so
// colors are adaptive and the selection is the only emphasis.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "235")
	colorWarn       = ac("124", "203")
)

type styles struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	status     lipgloss.Style
	statusFile lipgloss.Style
	muted      lipgloss.Style
	warn       lipgloss.Style
}

func newStyles() styles {
	return styles{
		normal:     lipgloss.NewStyle(),
		selected:   lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true),
		status:     lipgloss.NewStyle().Foreground(colorMuted),
		statusFile: lipgloss.NewStyle().Background(colorAccent).Foreground(colorAccentFg).Padding(0, 1),
		muted:      lipgloss.NewStyle().Foreground(colorMuted),
		warn:       lipgloss.NewStyle().Foreground(colorWarn),
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can
// disable colors in a TUI by accident, so only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection from the ui.theme
// setting. "auto" falls back to the COLORFGBG heuristic ("fg;bg"), and
// otherwise to Lip Gloss's own probing.
func applyThemePreference(theme string) {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}

// markdownStyle picks the glamour style matching the background.
func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
