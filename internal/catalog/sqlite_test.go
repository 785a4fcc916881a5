package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"offersheet-cli/internal/model"
)

func openSeeded(t *testing.T, products []model.Product) *SQLiteFetcher {
	t.Helper()
	f, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	if err := f.Seed(context.Background(), products); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return f
}

func TestSQLiteFetcher_PagesAreStableAndOrdered(t *testing.T) {
	var seed []model.Product
	for i := 0; i < 5; i++ {
		seed = append(seed, catalogProduct(fmt.Sprintf("p%d", i), "v1", "v2"))
	}
	f := openSeeded(t, seed)
	ctx := context.Background()

	page1, err := f.FetchPage(ctx, "", 1, 2)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if got := remoteIDs(page1); len(got) != 2 || got[0] != "p0" || got[1] != "p1" {
		t.Fatalf("page 1 = %v, want [p0 p1]", got)
	}

	// Idempotent for identical (query, page).
	again, err := f.FetchPage(ctx, "", 1, 2)
	if err != nil {
		t.Fatalf("page 1 again: %v", err)
	}
	if got, want := remoteIDs(again), remoteIDs(page1); got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("repeat fetch differs: %v vs %v", got, want)
	}

	page3, err := f.FetchPage(ctx, "", 3, 2)
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if got := remoteIDs(page3); len(got) != 1 || got[0] != "p4" {
		t.Fatalf("page 3 = %v, want [p4]", got)
	}
}

func TestSQLiteFetcher_VariantKeysStableAcrossRefetch(t *testing.T) {
	f := openSeeded(t, []model.Product{catalogProduct("prod", "red", "blue")})
	ctx := context.Background()

	first, err := f.FetchPage(ctx, "", 1, 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	second, err := f.FetchPage(ctx, "", 1, 10)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	for i := range first[0].Variants {
		a, b := first[0].Variants[i].Key, second[0].Variants[i].Key
		if a != b {
			t.Fatalf("variant key changed across refetch: %q vs %q", a, b)
		}
		if want := model.VariantKey("prod", first[0].Variants[i].RemoteID); a != want {
			t.Fatalf("variant key = %q, want %q", a, want)
		}
	}
	if !first[0].Variants[0].Price.Equal(second[0].Variants[0].Price) {
		t.Fatalf("price changed across refetch: %s vs %s",
			first[0].Variants[0].Price, second[0].Variants[0].Price)
	}
}

func TestSQLiteFetcher_QueryFiltersTitles(t *testing.T) {
	f := openSeeded(t, []model.Product{
		{RemoteID: "a", Title: "Trail Shoe"},
		{RemoteID: "b", Title: "Rain Jacket"},
		{RemoteID: "c", Title: "Road Shoe"},
	})

	got, err := f.FetchPage(context.Background(), "Shoe", 1, 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	ids := remoteIDs(got)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Fatalf("filtered page = %v, want [a c]", ids)
	}
}
