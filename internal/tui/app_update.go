package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"offersheet-cli/internal/catalog"
	"offersheet-cli/internal/model"
	"offersheet-cli/internal/reorder"
	"offersheet-cli/internal/rowindex"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.sheetBody.Width = msg.Width
		// Header, rule, footer help, status.
		m.sheetBody.Height = msg.Height - 4
		if m.sheetBody.Height < 1 {
			m.sheetBody.Height = 1
		}
		m.ensureCursorVisible()
		return m, nil

	case searchDebounceMsg:
		// Only the tick for the latest keystroke runs a query.
		if m.modal != modalPicker || m.picker == nil || msg.seq != m.picker.searchSeq {
			return m, nil
		}
		req, ok := m.cat.Search(m.picker.search.Value())
		m.picker.cursor = 0
		m.picker.rebuildIndex(m.cat)
		if !ok {
			return m, nil
		}
		return m, tea.Batch(loadPage(m.fetcher, req), m.picker.spin.Tick)

	case pageLoadedMsg:
		m.cat.Apply(catalog.LoadResult{
			Generation: msg.generation,
			Products:   msg.products,
			Err:        msg.err,
		})
		if m.modal == modalPicker && m.picker != nil {
			m.picker.rebuildIndex(m.cat)
		}
		return m, nil

	case spinner.TickMsg:
		if m.modal == modalPicker && m.picker != nil && m.cat.Loading() {
			var cmd tea.Cmd
			m.picker.spin, cmd = m.picker.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.modal {
		case modalPicker:
			return m.updatePicker(msg)
		case modalDiscount:
			return m.updateDiscountModal(msg)
		default:
			return m.updateSheet(msg)
		}
	}
	return m, nil
}

func (m appModel) updateSheet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.engine.Dragging() {
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.sheetIndex.Len()-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil

	case "g":
		row := m.sheetIndex.RowAt(m.cursor)
		switch row.Kind {
		case rowindex.RowProductHeader:
			m.engine.Start(reorder.StartDrag{Domain: reorder.DomainProduct, Key: row.Product.Key})
			m.showStatus("Moving " + displayTitle(row.Product) + " — enter to drop, esc to cancel")
		case rowindex.RowVariant:
			m.engine.Start(reorder.StartDrag{Domain: reorder.DomainVariant, Key: row.Variant.Key})
			m.showStatus("Moving " + row.Variant.Title + " — enter to drop, esc to cancel")
		}
		return m, nil

	case "esc":
		if domain, key, ok := m.engine.Active(); ok {
			_, _ = m.engine.End(reorder.EndDrag{ActiveDomain: domain, ActiveKey: key})
			m.showStatus("Move canceled")
			return m, nil
		}
		m.status = ""
		return m, nil

	case "enter":
		if m.engine.Dragging() {
			return m.dropOnCursor()
		}
		row := m.sheetIndex.RowAt(m.cursor)
		if row.Kind == rowindex.RowProductHeader {
			if row.Product.Placeholder {
				return m.openPicker(row.ProductIndex)
			}
			m.sheet.ToggleExpanded(row.Product.Key)
			m.rebuildSheetIndex()
		}
		return m, nil

	case "tab":
		if row := m.sheetIndex.RowAt(m.cursor); row.Kind == rowindex.RowProductHeader {
			m.sheet.ToggleExpanded(row.Product.Key)
			m.rebuildSheetIndex()
		}
		return m, nil

	case "a":
		p := m.sheet.AddPlaceholder()
		m.rebuildSheetIndex()
		if pos, ok := m.sheetIndex.PositionOf(p.Key); ok {
			m.cursor = pos
			m.ensureCursorVisible()
		}
		m.showStatus("Added row — press enter to pick products")
		return m, nil

	case "x":
		if row := m.sheetIndex.RowAt(m.cursor); row.Kind == rowindex.RowProductHeader {
			m.sheet.RemoveByKey(row.Product.Key)
			m.rebuildSheetIndex()
			m.ensureCursorVisible()
			m.showStatus("Removed " + displayTitle(row.Product))
		}
		return m, nil

	case "d":
		row := m.sheetIndex.RowAt(m.cursor)
		switch row.Kind {
		case rowindex.RowProductHeader:
			if row.Product.Placeholder {
				return m, nil
			}
			return m.openDiscountModal(discountTarget{
				domain: reorder.DomainProduct,
				key:    row.Product.Key,
				title:  displayTitle(row.Product),
			}, row.Product.Discount)
		case rowindex.RowVariant:
			return m.openDiscountModal(discountTarget{
				domain: reorder.DomainVariant,
				key:    row.Variant.Key,
				title:  row.Variant.Title,
			}, row.Variant.Discount)
		}
		return m, nil

	case "p":
		return m.openPicker(-1)
	}
	return m, nil
}

// dropOnCursor completes a grab: the row under the cursor is the drop
// target, tagged with the domain its kind implies.
func (m appModel) dropOnCursor() (tea.Model, tea.Cmd) {
	domain, key, _ := m.engine.Active()
	ev := reorder.EndDrag{ActiveDomain: domain, ActiveKey: key}

	switch row := m.sheetIndex.RowAt(m.cursor); row.Kind {
	case rowindex.RowProductHeader:
		ev.OverDomain = reorder.DomainProduct
		ev.OverKey = row.Product.Key
		ev.HasOver = true
	case rowindex.RowVariant:
		ev.OverDomain = reorder.DomainVariant
		ev.OverKey = row.Variant.Key
		ev.HasOver = true
	}

	moved, err := m.engine.End(ev)
	switch {
	case err != nil:
		m.showError(moveErrorMessage(err))
	case moved:
		m.rebuildSheetIndex()
		m.showStatus("Moved")
	default:
		m.showStatus("Move canceled")
	}
	return m, nil
}

func moveErrorMessage(err error) string {
	switch err.(type) {
	case reorder.UnsupportedMoveError:
		return "That move isn't supported"
	case reorder.KeyResolutionError:
		return "That row is gone; move abandoned"
	default:
		return err.Error()
	}
}

func (m appModel) openPicker(fillIndex int) (tea.Model, tea.Cmd) {
	m.modal = modalPicker
	m.picker = newPickerModel(fillIndex)
	req, ok := m.cat.Search("")
	m.picker.rebuildIndex(m.cat)
	cmds := []tea.Cmd{textinput.Blink}
	if ok {
		cmds = append(cmds, loadPage(m.fetcher, req), m.picker.spin.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		// Close discards the uncommitted selection set and fences any
		// page response still in flight.
		m.cat.Reset("")
		m.modal = modalNone
		m.picker = nil
		return m, nil

	case "enter":
		products := p.set.Materialize()
		if len(products) > 0 {
			if p.fillIndex >= 0 {
				m.sheet.ReplaceAt(p.fillIndex, products)
			} else {
				m.sheet.Append(products...)
			}
			m.rebuildSheetIndex()
			if pos, ok := m.sheetIndex.PositionOf(products[0].Key); ok {
				m.cursor = pos
				m.ensureCursorVisible()
			}
			m.showStatus(fmt.Sprintf("Added %d product(s) to the sheet", len(products)))
		}
		m.cat.Reset("")
		m.modal = modalNone
		m.picker = nil
		return m, nil

	case "up":
		if p.cursor > 0 {
			p.cursor--
		}
		return m, nil

	case "down":
		if p.cursor < p.index.Len()-1 {
			p.cursor++
		}
		return m, m.maybeLoadMore()

	case " ":
		switch row := p.index.RowAt(p.cursor); row.Kind {
		case rowindex.RowVariant:
			p.set.Toggle(*row.Variant, *row.Product)
		case rowindex.RowProductHeader:
			p.set.ToggleAllInGroup(*row.Product)
		}
		return m, nil

	case "r":
		// Retry a failed page; with no pending error, "r" is just a
		// search keystroke and falls through to the input below.
		if m.cat.LastError() != nil {
			if req, ok := m.cat.StartLoad(); ok {
				return m, tea.Batch(loadPage(m.fetcher, req), p.spin.Tick)
			}
			return m, nil
		}
	}

	// Everything else edits the search input; a changed value arms the
	// debounce.
	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != before {
		p.searchSeq++
		return m, tea.Batch(cmd, debounceSearch(p.searchSeq))
	}
	return m, cmd
}

// maybeLoadMore starts the next page load when the picker cursor nears
// the end of loaded content.
func (m appModel) maybeLoadMore() tea.Cmd {
	p := m.picker
	if p == nil || !p.nearLoadedBoundary() {
		return nil
	}
	req, ok := m.cat.StartLoad()
	if !ok {
		return nil
	}
	return tea.Batch(loadPage(m.fetcher, req), p.spin.Tick)
}

func (m appModel) openDiscountModal(target discountTarget, current *model.Discount) (tea.Model, tea.Cmd) {
	m.modal = modalDiscount
	m.discountTarget = target
	m.discountErr = ""
	m.discountKind = model.DiscountPercentage
	m.discountInput.SetValue("")
	if current != nil {
		m.discountKind = current.Kind
		m.discountInput.SetValue(current.Amount.String())
	}
	m.discountInput.Focus()
	return m, textinput.Blink
}

func (m appModel) updateDiscountModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.modal = modalNone
		m.discountErr = ""
		return m, nil

	case "tab":
		if m.discountKind == model.DiscountPercentage {
			m.discountKind = model.DiscountFlat
		} else {
			m.discountKind = model.DiscountPercentage
		}
		return m, nil

	case "enter":
		var d *model.Discount
		raw := strings.TrimSpace(m.discountInput.Value())
		if raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				m.discountErr = "Enter a number (or leave empty to clear)"
				return m, nil
			}
			d = &model.Discount{Kind: m.discountKind, Amount: amount}
		}
		var err error
		if m.discountTarget.domain == reorder.DomainProduct {
			err = m.overlay.SetProductDiscount(m.discountTarget.key, d)
		} else {
			err = m.overlay.SetVariantDiscount(m.discountTarget.key, d)
		}
		if err != nil {
			m.discountErr = err.Error()
			return m, nil
		}
		m.modal = modalNone
		m.rebuildSheetIndex()
		if d == nil {
			m.showStatus("Discount cleared on " + m.discountTarget.title)
		} else {
			m.showStatus("Discount set on " + m.discountTarget.title)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.discountInput, cmd = m.discountInput.Update(msg)
	return m, cmd
}

func displayTitle(p *model.Product) string {
	if p.Placeholder {
		return "(empty row)"
	}
	if strings.TrimSpace(p.Title) == "" {
		return p.RemoteID
	}
	return p.Title
}
