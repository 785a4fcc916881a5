package tui

import (
	"os"
	"strings"
)

// Terminal apps can't change the user's font, but we can pick between
// Unicode and ASCII glyph sets for affordances (twisties, grab marker,
// selection checkboxes) for terminals that render some glyphs badly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var currentGlyphs = glyphSetUnicode

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("OFFERSHEET_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		currentGlyphs = glyphSetUnicode
	case "ascii":
		currentGlyphs = glyphSetASCII
	}
}

func glyphTwisty(expanded bool) string {
	if currentGlyphs == glyphSetASCII {
		if expanded {
			return "v"
		}
		return ">"
	}
	if expanded {
		return "▾"
	}
	return "▸"
}

func glyphChecked(on bool) string {
	if currentGlyphs == glyphSetASCII {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	if on {
		return "☑"
	}
	return "☐"
}

func glyphGrab() string {
	if currentGlyphs == glyphSetASCII {
		return "::"
	}
	return "≡"
}
