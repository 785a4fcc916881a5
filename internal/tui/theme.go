package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must stay readable on both light and dark terminal
// backgrounds, so colors are lipgloss.AdaptiveColor and "faint" styling
// is applied only on dark backgrounds (faint on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorGrabbedBg  lipgloss.TerminalColor = ac("#ffe9b3", "#4a3a10")
	colorHeaderFg   lipgloss.TerminalColor = ac("23", "116")
	colorErrorFg    lipgloss.TerminalColor = ac("124", "203")
	colorAccentFg   lipgloss.TerminalColor = ac("28", "78")
	colorControlBg  lipgloss.TerminalColor = ac("252", "237")
	colorInputBg    lipgloss.TerminalColor = ac("254", "236")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
}

func styleGrabbed() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorGrabbedBg).Bold(true)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorHeaderFg).Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI. Only NO_COLOR is honored; CLICOLOR-style variables
// are for non-interactive output and would accidentally strip the TUI.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection for terminals
// that don't report it reliably. OFFERSHEET_TUI_THEME=light|dark wins;
// otherwise the COLORFGBG heuristic (fg;bg) is tried.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("OFFERSHEET_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if len(parts) >= 2 {
			switch strings.TrimSpace(parts[len(parts)-1]) {
			case "7", "15":
				lipgloss.SetHasDarkBackground(false)
			default:
				lipgloss.SetHasDarkBackground(true)
			}
		}
	}
}
