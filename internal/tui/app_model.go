package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"offersheet-cli/internal/catalog"
	"offersheet-cli/internal/diag"
	"offersheet-cli/internal/discount"
	"offersheet-cli/internal/model"
	"offersheet-cli/internal/reorder"
	"offersheet-cli/internal/rowindex"
	"offersheet-cli/internal/selection"
)

// appModel owns every piece of mutable state: the committed sheet, the
// catalog window, the picker's uncommitted selection, and the drag
// machine. bubbletea delivers one message at a time, so there is a
// single writer by construction.
type appModel struct {
	width          int
	height         int
	seenWindowSize bool

	report  *diag.Reporter
	fetcher catalog.PageFetcher

	sheet      *selection.Sheet
	engine     *reorder.Engine
	overlay    *discount.Overlay
	sheetIndex *rowindex.Index
	sheetBody  viewport.Model
	cursor     int

	modal  modalKind
	cat    *catalog.Catalog
	picker *pickerModel

	discountInput  textinput.Model
	discountKind   model.DiscountKind
	discountTarget discountTarget
	discountErr    string

	status    string
	statusErr bool
}

// Options configure the TUI session.
type Options struct {
	Fetcher          catalog.PageFetcher
	PageSize         int
	CascadeDiscounts bool
	Diag             *diag.Reporter
}

func newAppModel(opts Options) appModel {
	if opts.Diag == nil {
		opts.Diag = diag.Nop()
	}
	sheet := selection.NewSheet()

	in := textinput.New()
	in.Placeholder = "amount"
	in.CharLimit = 12
	in.Width = 16

	m := appModel{
		report:        opts.Diag,
		fetcher:       opts.Fetcher,
		sheet:         sheet,
		engine:        reorder.NewEngine(sheet, opts.Diag),
		overlay:       discount.New(sheet, opts.CascadeDiscounts),
		sheetIndex:    rowindex.New(rowindex.DefaultHeights()),
		sheetBody:     viewport.New(0, 0),
		cat:           catalog.New(opts.Fetcher, opts.PageSize, opts.Diag),
		discountInput: in,
		discountKind:  model.DiscountPercentage,
	}
	m.rebuildSheetIndex()
	return m
}

// rebuildSheetIndex recomputes the flat addressing after any structural
// or content change to the sheet.
func (m *appModel) rebuildSheetIndex() {
	m.sheetIndex.Rebuild(m.sheet.Snapshot(), false)
	if max := m.sheetIndex.Len() - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ensureCursorVisible scrolls the sheet body so the cursor row stays on
// screen.
func (m *appModel) ensureCursorVisible() {
	top := m.sheetIndex.OffsetOf(m.cursor)
	bottom := top + m.sheetIndex.HeightAt(m.cursor)
	if top < m.sheetBody.YOffset {
		m.sheetBody.SetYOffset(top)
		return
	}
	if h := m.sheetBody.Height; h > 0 && bottom > m.sheetBody.YOffset+h {
		m.sheetBody.SetYOffset(bottom - h)
	}
}

func (m *appModel) showStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) showError(s string) {
	m.status = s
	m.statusErr = true
}
