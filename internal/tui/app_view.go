package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"offersheet-cli/internal/model"
	"offersheet-cli/internal/reorder"
	"offersheet-cli/internal/rowindex"
)

func (m appModel) View() string {
	if !m.seenWindowSize {
		return "Loading..."
	}

	main := m.sheetView()
	switch m.modal {
	case modalPicker:
		return placeCentered(m.width, m.height, m.pickerView())
	case modalDiscount:
		return placeCentered(m.width, m.height, m.discountView())
	}
	return main
}

func (m appModel) sheetView() string {
	var b strings.Builder

	title := styleHeader().Render("Offer sheet")
	summary := styleMuted().Render(fmt.Sprintf("  %d products · subtotal %s", m.sheet.Len(), m.sheet.Subtotal().StringFixed(2)))
	b.WriteString(truncLine(title+summary, m.width))
	b.WriteString("\n")

	body := m.sheetBody
	body.SetContent(m.renderSheetRows())
	b.WriteString(body.View())
	b.WriteString("\n")

	help := "↑/↓ move · g grab · enter drop/open · a add row · p pick · d discount · x remove · tab fold · q quit"
	b.WriteString(truncLine(styleMuted().Render(help), m.width))
	b.WriteString("\n")
	b.WriteString(truncLine(m.statusLine(), m.width))
	return b.String()
}

func (m appModel) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleError().Render(m.status)
	}
	return m.status
}

func (m appModel) renderSheetRows() string {
	n := m.sheetIndex.Len()
	if n == 0 {
		return styleMuted().Render("Empty sheet. Press a to add a row, or p to pick from the catalog.")
	}
	activeDomain, activeKey, dragging := m.engine.Active()

	lines := make([]string, 0, n)
	for p := 0; p < n; p++ {
		row := m.sheetIndex.RowAt(p)
		line := renderRow(row, m.width, nil)

		grabbed := false
		if dragging {
			switch row.Kind {
			case rowindex.RowProductHeader:
				grabbed = activeDomain == reorder.DomainProduct && row.Product.Key == activeKey
			case rowindex.RowVariant:
				grabbed = activeDomain == reorder.DomainVariant && row.Variant.Key == activeKey
			}
		}
		switch {
		case grabbed:
			line = styleGrabbed().Render(line)
		case p == m.cursor:
			line = styleSelected().Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderRow draws one flat row. selected is non-nil in the picker,
// where variant rows carry a checkbox.
func renderRow(row rowindex.Row, width int, selected func(string) bool) string {
	switch row.Kind {
	case rowindex.RowProductHeader:
		return truncLine(renderHeaderRow(row.Product, selected), width)
	case rowindex.RowVariant:
		return truncLine(renderVariantRow(row.Variant, selected), width)
	case rowindex.RowLoading:
		return truncLine(styleMuted().Render("  loading more…"), width)
	default:
		return ""
	}
}

func renderHeaderRow(p *model.Product, selected func(string) bool) string {
	var b strings.Builder
	b.WriteString(glyphTwisty(p.Expanded))
	b.WriteString(" ")
	if selected != nil {
		b.WriteString(glyphCheckedAll(p, selected))
		b.WriteString(" ")
	} else {
		b.WriteString(glyphGrab())
		b.WriteString(" ")
	}
	if p.Placeholder {
		b.WriteString(styleMuted().Render("(empty row — press enter to pick products)"))
		return b.String()
	}
	b.WriteString(styleHeader().Render(p.Title))
	if p.Discount != nil {
		b.WriteString(" ")
		b.WriteString(discountBadge(p.Discount))
	}
	if !p.Expanded && len(p.Variants) > 0 {
		b.WriteString(styleMuted().Render(fmt.Sprintf(" (%d variants)", len(p.Variants))))
	}
	return b.String()
}

func glyphCheckedAll(p *model.Product, selected func(string) bool) string {
	if len(p.Variants) == 0 {
		return glyphChecked(false)
	}
	for _, v := range p.Variants {
		if !selected(v.Key) {
			return glyphChecked(false)
		}
	}
	return glyphChecked(true)
}

func renderVariantRow(v *model.Variant, selected func(string) bool) string {
	var b strings.Builder
	b.WriteString("    ")
	if selected != nil {
		b.WriteString(glyphChecked(selected(v.Key)))
		b.WriteString(" ")
	}
	b.WriteString(v.Title)
	b.WriteString("  ")
	price := v.Price.StringFixed(2)
	if v.Discount != nil {
		b.WriteString(styleMuted().Render(price))
		b.WriteString(" → ")
		b.WriteString(lipgloss.NewStyle().Foreground(colorAccentFg).Render(v.EffectivePrice().StringFixed(2)))
		b.WriteString(" ")
		b.WriteString(discountBadge(v.Discount))
	} else {
		b.WriteString(price)
	}
	return b.String()
}

func discountBadge(d *model.Discount) string {
	var label string
	if d.Kind == model.DiscountPercentage {
		label = "-" + d.Amount.String() + "%"
	} else {
		label = "-" + d.Amount.StringFixed(2)
	}
	return lipgloss.NewStyle().Foreground(colorAccentFg).Render(label)
}

func (m appModel) pickerView() string {
	p := m.picker
	bodyW := modalBodyWidth(m.width)

	var b strings.Builder
	b.WriteString(renderInputLine(bodyW, p.search.View()))
	b.WriteString("\n\n")

	// Window of rows around the cursor.
	const windowRows = 12
	start := p.cursor - windowRows/2
	if start > p.index.Len()-windowRows {
		start = p.index.Len() - windowRows
	}
	if start < 0 {
		start = 0
	}
	end := start + windowRows
	if end > p.index.Len() {
		end = p.index.Len()
	}

	if p.index.Len() == 0 {
		if m.cat.Loading() {
			b.WriteString(p.spin.View() + styleMuted().Render(" searching…"))
		} else {
			b.WriteString(styleMuted().Render("No results."))
		}
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		row := p.index.RowAt(i)
		line := renderRow(row, bodyW, p.set.Selected)
		if row.Kind == rowindex.RowLoading && m.cat.Loading() {
			line = p.spin.View() + styleMuted().Render(" loading more…")
		}
		if i == p.cursor {
			line = styleSelected().Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if err := m.cat.LastError(); err != nil {
		b.WriteString(styleError().Render("Load failed — press r to retry"))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render(fmt.Sprintf("%d selected · space toggle · enter add · esc cancel", p.set.Len())))

	return renderModalBox(m.width, "Pick from catalog", b.String())
}

func (m appModel) discountView() string {
	bodyW := modalBodyWidth(m.width)

	kind := "percentage"
	other := "flat"
	if m.discountKind == model.DiscountFlat {
		kind, other = other, kind
	}

	var b strings.Builder
	b.WriteString("Discount for " + m.discountTarget.title)
	b.WriteString("\n\n")
	b.WriteString("Kind: " + lipgloss.NewStyle().Bold(true).Render(kind) + styleMuted().Render(" (tab: "+other+")"))
	b.WriteString("\n")
	b.WriteString(renderInputLine(bodyW, m.discountInput.View()))
	b.WriteString("\n")
	if m.discountErr != "" {
		b.WriteString(styleError().Render(m.discountErr))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render("enter: apply · empty clears · esc: cancel"))

	return renderModalBox(m.width, "Discount", b.String())
}

// truncLine hard-limits a rendered line to width columns, ANSI-aware.
func truncLine(s string, width int) string {
	if width <= 0 || xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}
