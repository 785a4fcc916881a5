package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func modalWidth(termWidth int) int {
	w := termWidth - 8
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

func modalBodyWidth(termWidth int) int {
	return modalWidth(termWidth) - 4
}

// renderModalBox draws a titled box for modal content. No nested
// borders: some terminals show background artifacts when bordered
// components are stacked inside a colored modal.
func renderModalBox(termWidth int, title, content string) string {
	w := modalWidth(termWidth)
	header := lipgloss.NewStyle().
		Width(w-2).
		Padding(0, 1).
		Background(colorControlBg).
		Bold(true).
		Render(title)
	body := lipgloss.NewStyle().
		Width(w-2).
		Padding(0, 1).
		Render(content)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Render(header + "\n" + body)
	return box
}

// renderInputLine renders a text input as exactly one visual line
// inside a modal. Newlines or ANSI overflow from the input view would
// otherwise trigger wrapping that looks like inserted newlines while
// typing.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the modal body width; terminate ANSI styling to
		// prevent bleed into the surrounding chrome.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

// placeCentered positions a modal over the main view.
func placeCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
