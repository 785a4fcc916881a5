package catalog

import (
	"context"
	"fmt"

	"offersheet-cli/internal/model"
)

// PageFetcher retrieves one catalog page. Implementations must be
// idempotent for identical (query, page) inputs and must not assume the
// backend deduplicates across pages; the Catalog dedupes on append.
type PageFetcher interface {
	FetchPage(ctx context.Context, query string, page, pageSize int) ([]model.Product, error)
}

// FetcherFunc adapts a function to the PageFetcher interface.
type FetcherFunc func(ctx context.Context, query string, page, pageSize int) ([]model.Product, error)

func (f FetcherFunc) FetchPage(ctx context.Context, query string, page, pageSize int) ([]model.Product, error) {
	return f(ctx, query, page, pageSize)
}

// FetchError wraps a failed page load. The catalog records it as
// LastError and leaves loaded state untouched; callers surface it as a
// retryable condition.
type FetchError struct {
	Query string
	Page  int
	Err   error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetch page %d for %q: %v", e.Page, e.Query, e.Err)
}

func (e FetchError) Unwrap() error { return e.Err }
