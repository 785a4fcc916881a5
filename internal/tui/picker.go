package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"offersheet-cli/internal/catalog"
	"offersheet-cli/internal/rowindex"
	"offersheet-cli/internal/selection"
)

const (
	searchDebounce = 300 * time.Millisecond
	// Start the next page load when the cursor gets this close to the
	// end of the loaded rows.
	loadMoreMargin = 5
)

// pickerModel is the catalog picker's own state. It is created on open
// and discarded on close, which is also the lifecycle of the
// uncommitted selection set it carries.
type pickerModel struct {
	search textinput.Model
	spin   spinner.Model
	index  *rowindex.Index
	cursor int
	set    *selection.Set

	// fillIndex is the sheet position of the placeholder being filled,
	// or -1 when the commit should append.
	fillIndex int
	searchSeq int
}

func newPickerModel(fillIndex int) *pickerModel {
	search := textinput.New()
	search.Placeholder = "search catalog"
	search.Prompt = "/ "
	search.CharLimit = 64
	search.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &pickerModel{
		search:    search,
		spin:      spin,
		index:     rowindex.New(rowindex.DefaultHeights()),
		set:       selection.NewSet(),
		fillIndex: fillIndex,
	}
}

func (p *pickerModel) rebuildIndex(cat *catalog.Catalog) {
	p.index.Rebuild(cat.Products(), cat.HasMore())
	if max := p.index.Len() - 1; p.cursor > max {
		p.cursor = max
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// nearLoadedBoundary reports whether the cursor is close enough to the
// end of loaded content to warrant fetching the next page.
func (p *pickerModel) nearLoadedBoundary() bool {
	return p.cursor >= p.index.Len()-loadMoreMargin
}

func debounceSearch(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// loadPage runs the fetch outside the update loop and reports back with
// the request's generation attached.
func loadPage(f catalog.PageFetcher, req catalog.LoadRequest) tea.Cmd {
	return func() tea.Msg {
		products, err := f.FetchPage(context.Background(), req.Query, req.Page, req.PageSize)
		return pageLoadedMsg{generation: req.Generation, products: products, err: err}
	}
}
