package rowindex

import (
	"fmt"
	"testing"

	"offersheet-cli/internal/model"

	"github.com/shopspring/decimal"
)

func testProduct(key string, expanded bool, variantCount int) model.Product {
	p := model.Product{Key: key, RemoteID: key, Title: "Product " + key, Expanded: expanded}
	for i := 0; i < variantCount; i++ {
		rid := fmt.Sprintf("v%d", i)
		p.Variants = append(p.Variants, model.Variant{
			Key:      model.VariantKey(key, rid),
			RemoteID: rid,
			Title:    "Variant " + rid,
			Price:    decimal.New(100, -2),
		})
	}
	return p
}

func TestRowAt_EveryPositionResolvesToExactlyOneKind(t *testing.T) {
	ix := New(Heights{Header: 2, Variant: 1, Loading: 1})
	products := []model.Product{
		testProduct("a", true, 3),
		testProduct("b", true, 0),
		testProduct("c", true, 2),
	}
	ix.Rebuild(products, true)

	// 3 headers + 5 variants + 1 sentinel.
	if got, want := ix.Len(), 9; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}

	wantKinds := []Kind{
		RowProductHeader, RowVariant, RowVariant, RowVariant, // a
		RowProductHeader,                 // b
		RowProductHeader, RowVariant, RowVariant, // c
		RowLoading,
	}
	heightSum := 0
	for p := 0; p < ix.Len(); p++ {
		row := ix.RowAt(p)
		if row.Kind != wantKinds[p] {
			t.Fatalf("RowAt(%d).Kind = %v, want %v", p, row.Kind, wantKinds[p])
		}
		heightSum += ix.HeightAt(p)
	}
	// Sum of row heights equals the total scrollable extent.
	if heightSum != ix.TotalHeight() {
		t.Fatalf("sum of heights = %d, TotalHeight = %d", heightSum, ix.TotalHeight())
	}
	if want := 3*2 + 5*1 + 1; ix.TotalHeight() != want {
		t.Fatalf("TotalHeight = %d, want %d", ix.TotalHeight(), want)
	}
}

func TestRowAt_ResolvesOwningProductAndVariant(t *testing.T) {
	ix := New(DefaultHeights())
	ix.Rebuild([]model.Product{
		testProduct("a", true, 2),
		testProduct("b", true, 1),
	}, false)

	row := ix.RowAt(4)
	if row.Kind != RowVariant {
		t.Fatalf("RowAt(4).Kind = %v, want RowVariant", row.Kind)
	}
	if row.Product.Key != "b" || row.Variant.RemoteID != "v0" {
		t.Fatalf("RowAt(4) = product %q variant %q, want b/v0", row.Product.Key, row.Variant.RemoteID)
	}
	if row.ProductIndex != 1 || row.VariantIndex != 0 {
		t.Fatalf("RowAt(4) indices = (%d,%d), want (1,0)", row.ProductIndex, row.VariantIndex)
	}
}

func TestRowAt_OutOfRangeIsDefined(t *testing.T) {
	ix := New(DefaultHeights())
	ix.Rebuild([]model.Product{testProduct("a", true, 1)}, false)

	for _, p := range []int{-1, ix.Len(), ix.Len() + 100} {
		row := ix.RowAt(p)
		if row.Kind != RowOutOfRange {
			t.Fatalf("RowAt(%d).Kind = %v, want RowOutOfRange", p, row.Kind)
		}
		if h := ix.HeightAt(p); h != 0 {
			t.Fatalf("HeightAt(%d) = %d, want 0", p, h)
		}
	}
}

func TestRebuild_CollapsedProductContributesHeaderOnly(t *testing.T) {
	ix := New(DefaultHeights())
	products := []model.Product{
		testProduct("a", false, 5),
		testProduct("b", true, 1),
	}
	ix.Rebuild(products, false)

	if got, want := ix.Len(), 3; got != want {
		t.Fatalf("Len = %d, want %d (collapsed variants must not count)", got, want)
	}
	if row := ix.RowAt(1); row.Kind != RowProductHeader || row.Product.Key != "b" {
		t.Fatalf("RowAt(1) = %v %q, want b's header", row.Kind, row.Product.Key)
	}
}

func TestRowAt_NoSentinelWhenExhausted(t *testing.T) {
	ix := New(DefaultHeights())
	ix.Rebuild([]model.Product{testProduct("a", true, 1)}, false)
	if got, want := ix.Len(), 2; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
	if row := ix.RowAt(ix.Len() - 1); row.Kind != RowVariant {
		t.Fatalf("last row = %v, want RowVariant (no sentinel)", row.Kind)
	}
}

func TestPositionOf_HeaderPositions(t *testing.T) {
	ix := New(DefaultHeights())
	ix.Rebuild([]model.Product{
		testProduct("a", true, 3),
		testProduct("b", false, 2),
		testProduct("c", true, 1),
	}, true)

	cases := map[string]int{"a": 0, "b": 4, "c": 5}
	for key, want := range cases {
		got, ok := ix.PositionOf(key)
		if !ok || got != want {
			t.Fatalf("PositionOf(%q) = %d,%v, want %d,true", key, got, ok, want)
		}
	}
	if _, ok := ix.PositionOf("missing"); ok {
		t.Fatal("PositionOf(missing) = ok")
	}
}

func TestRowAtOffset_CoversEveryCell(t *testing.T) {
	ix := New(Heights{Header: 3, Variant: 2, Loading: 1})
	ix.Rebuild([]model.Product{
		testProduct("a", true, 2),
		testProduct("b", true, 1),
	}, true)

	// Walk every cell and check the covering row agrees with the
	// height-prefix walked independently.
	p, consumed := 0, 0
	for y := 0; y < ix.TotalHeight(); y++ {
		for y-consumed >= ix.HeightAt(p) {
			consumed += ix.HeightAt(p)
			p++
		}
		got, ok := ix.RowAtOffset(y)
		if !ok || got != p {
			t.Fatalf("RowAtOffset(%d) = %d,%v, want %d,true", y, got, ok, p)
		}
	}
	if _, ok := ix.RowAtOffset(ix.TotalHeight()); ok {
		t.Fatal("RowAtOffset past extent succeeded")
	}
}

func TestOffsetOf_AgreesWithHeightWalk(t *testing.T) {
	ix := New(Heights{Header: 2, Variant: 1, Loading: 3})
	ix.Rebuild([]model.Product{
		testProduct("a", true, 1),
		testProduct("b", false, 4),
		testProduct("c", true, 3),
	}, true)

	walked := 0
	for p := 0; p < ix.Len(); p++ {
		if got := ix.OffsetOf(p); got != walked {
			t.Fatalf("OffsetOf(%d) = %d, want %d", p, got, walked)
		}
		walked += ix.HeightAt(p)
	}
	if got := ix.OffsetOf(ix.Len()); got != ix.TotalHeight() {
		t.Fatalf("OffsetOf(Len) = %d, want total %d", got, ix.TotalHeight())
	}
}
