// Package catalog owns the paginated window of remote products the
// picker is currently showing: which pages are loaded, whether a load
// is in flight, and whether more pages exist for the current query.
package catalog

import (
	"context"
	"strings"

	"offersheet-cli/internal/diag"
	"offersheet-cli/internal/model"
)

const DefaultPageSize = 10

// LoadRequest describes one page fetch the caller should perform.
// Generation ties the eventual result back to the query state that
// issued it.
type LoadRequest struct {
	Generation uint64
	Query      string
	Page       int
	PageSize   int
}

// LoadResult carries a completed fetch back into Apply.
type LoadResult struct {
	Generation uint64
	Products   []model.Product
	Err        error
}

// Catalog is single-writer: all mutation happens on the owning event
// loop via Reset/StartLoad/Apply. The underlying fetch has no native
// cancellation, so superseded responses are fenced out by generation
// instead of aborted.
type Catalog struct {
	fetcher  PageFetcher
	pageSize int
	diag     *diag.Reporter

	query      string
	pageCursor int
	loaded     []model.Product
	seen       map[string]bool
	loading    bool
	hasMore    bool
	lastErr    error
	generation uint64
}

func New(f PageFetcher, pageSize int, d *diag.Reporter) *Catalog {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if d == nil {
		d = diag.Nop()
	}
	return &Catalog{
		fetcher:  f,
		pageSize: pageSize,
		diag:     d,
		seen:     map[string]bool{},
		hasMore:  true,
		// Page numbering starts at 1.
		pageCursor: 1,
	}
}

// Reset clears all loaded state for a new query and bumps the
// generation so any in-flight response for the old query is discarded
// when it eventually arrives.
func (c *Catalog) Reset(query string) {
	c.generation++
	c.query = strings.TrimSpace(query)
	c.pageCursor = 1
	c.loaded = nil
	c.seen = map[string]bool{}
	c.loading = false
	c.hasMore = true
	c.lastErr = nil
}

// StartLoad begins a page load for the current cursor. It returns
// ok=false (and no request) when a load is already in flight or the
// query is exhausted.
func (c *Catalog) StartLoad() (LoadRequest, bool) {
	if c.loading || !c.hasMore {
		return LoadRequest{}, false
	}
	c.loading = true
	c.lastErr = nil
	return LoadRequest{
		Generation: c.generation,
		Query:      c.query,
		Page:       c.pageCursor,
		PageSize:   c.pageSize,
	}, true
}

// Apply commits a completed fetch. A result whose generation does not
// match the current one belongs to a superseded query and is dropped
// without touching state. On failure the error is recorded and the
// loaded window, cursor and hasMore are left unchanged.
func (c *Catalog) Apply(res LoadResult) {
	if res.Generation != c.generation {
		c.diag.StaleResponse(c.query, res.Generation, c.generation)
		return
	}
	c.loading = false
	if res.Err != nil {
		c.lastErr = FetchError{Query: c.query, Page: c.pageCursor, Err: res.Err}
		c.diag.FetchFailure(c.query, c.pageCursor, res.Err)
		return
	}
	for _, p := range res.Products {
		if c.seen[p.RemoteID] {
			continue
		}
		c.seen[p.RemoteID] = true
		c.loaded = append(c.loaded, p)
	}
	c.pageCursor++
	// A short page means the backend ran out; a full page may have more.
	c.hasMore = len(res.Products) == c.pageSize
}

// LoadNextPage drives one StartLoad/fetch/Apply cycle synchronously.
// Used by headless callers; the TUI splits the cycle across a tea.Cmd.
// A no-op (already loading, or exhausted) returns nil.
func (c *Catalog) LoadNextPage(ctx context.Context) error {
	req, ok := c.StartLoad()
	if !ok {
		return nil
	}
	products, err := c.fetcher.FetchPage(ctx, req.Query, req.Page, req.PageSize)
	c.Apply(LoadResult{Generation: req.Generation, Products: products, Err: err})
	return c.lastErr
}

// Search is the atomic query-change transition: reset plus first load
// request, observed by consumers as one step.
func (c *Catalog) Search(query string) (LoadRequest, bool) {
	c.Reset(query)
	return c.StartLoad()
}

func (c *Catalog) Products() []model.Product { return c.loaded }
func (c *Catalog) Query() string             { return c.query }
func (c *Catalog) PageSize() int             { return c.pageSize }
func (c *Catalog) Loading() bool             { return c.loading }
func (c *Catalog) HasMore() bool             { return c.hasMore }
func (c *Catalog) LastError() error          { return c.lastErr }
func (c *Catalog) Generation() uint64        { return c.generation }
