package tui

import (
	"offersheet-cli/internal/model"
	"offersheet-cli/internal/reorder"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalPicker
	modalDiscount
)

// searchDebounceMsg fires after the search-input quiet period. Only the
// message matching the latest seq triggers a query; earlier ticks are
// stale keystrokes.
type searchDebounceMsg struct{ seq int }

// pageLoadedMsg delivers one finished page fetch back to the update
// loop. The generation is checked by catalog.Apply, so a response from
// a superseded query can never overwrite newer results.
type pageLoadedMsg struct {
	generation uint64
	products   []model.Product
	err        error
}

type discountTarget struct {
	domain reorder.Domain
	key    string
	title  string
}
