// Package rowindex turns the two-level product→variant collection into
// a flat, randomly addressable row sequence for a viewport renderer.
//
// The index is rebuilt only on structural change (page appended, query
// reset, expand/collapse, reorder); position and height lookups during
// scroll are pure reads over precomputed prefix sums, O(log groups) per
// call instead of a rescan of every row.
package rowindex

import (
	"sort"

	"offersheet-cli/internal/model"
)

type Kind int

const (
	// RowOutOfRange is the defined terminal value for positions outside
	// [0, Len()); lookups never panic on bad positions.
	RowOutOfRange Kind = iota
	RowProductHeader
	RowVariant
	RowLoading
)

// Row is one flat renderable unit.
type Row struct {
	Kind    Kind
	Product *model.Product
	Variant *model.Variant

	ProductIndex int
	VariantIndex int
}

// Heights are the fixed per-kind row heights in terminal cells.
type Heights struct {
	Header  int
	Variant int
	Loading int
}

func DefaultHeights() Heights {
	return Heights{Header: 1, Variant: 1, Loading: 1}
}

type Index struct {
	products []model.Product
	hasMore  bool
	heights  Heights

	// rowStart[i] is the flat position of product i's header;
	// rowStart[len(products)] is the total product-row count.
	// cellStart is the same prefix in cells instead of rows.
	rowStart  []int
	cellStart []int
	byKey     map[string]int

	totalRows   int
	totalHeight int
}

func New(heights Heights) *Index {
	if heights.Header <= 0 {
		heights.Header = 1
	}
	if heights.Variant <= 0 {
		heights.Variant = 1
	}
	if heights.Loading <= 0 {
		heights.Loading = 1
	}
	ix := &Index{heights: heights}
	ix.Rebuild(nil, false)
	return ix
}

// Rebuild recomputes the prefix sums for a new structural snapshot.
// A collapsed product contributes its header row only.
func (ix *Index) Rebuild(products []model.Product, hasMore bool) {
	ix.products = products
	ix.hasMore = hasMore
	ix.rowStart = make([]int, len(products)+1)
	ix.cellStart = make([]int, len(products)+1)
	ix.byKey = make(map[string]int, len(products))

	rows, cells := 0, 0
	for i := range products {
		ix.rowStart[i] = rows
		ix.cellStart[i] = cells
		ix.byKey[products[i].Key] = i
		rows += 1
		cells += ix.heights.Header
		if products[i].Expanded {
			rows += len(products[i].Variants)
			cells += len(products[i].Variants) * ix.heights.Variant
		}
	}
	ix.rowStart[len(products)] = rows
	ix.cellStart[len(products)] = cells

	ix.totalRows = rows
	ix.totalHeight = cells
	if hasMore {
		ix.totalRows++
		ix.totalHeight += ix.heights.Loading
	}
}

func (ix *Index) Len() int         { return ix.totalRows }
func (ix *Index) TotalHeight() int { return ix.totalHeight }

// RowAt resolves a flat position to its row. Positions outside
// [0, Len()) yield RowOutOfRange.
func (ix *Index) RowAt(p int) Row {
	if p < 0 || p >= ix.totalRows {
		return Row{Kind: RowOutOfRange, ProductIndex: -1, VariantIndex: -1}
	}
	productRows := ix.rowStart[len(ix.products)]
	if p >= productRows {
		// Only the trailing sentinel lives past the product rows.
		return Row{Kind: RowLoading, ProductIndex: -1, VariantIndex: -1}
	}
	// Largest i with rowStart[i] <= p.
	g := sort.Search(len(ix.products), func(i int) bool { return ix.rowStart[i+1] > p })
	off := p - ix.rowStart[g]
	prod := &ix.products[g]
	if off == 0 {
		return Row{Kind: RowProductHeader, Product: prod, ProductIndex: g, VariantIndex: -1}
	}
	return Row{
		Kind:         RowVariant,
		Product:      prod,
		Variant:      &prod.Variants[off-1],
		ProductIndex: g,
		VariantIndex: off - 1,
	}
}

func (ix *Index) HeightAt(p int) int {
	switch ix.RowAt(p).Kind {
	case RowProductHeader:
		return ix.heights.Header
	case RowVariant:
		return ix.heights.Variant
	case RowLoading:
		return ix.heights.Loading
	default:
		return 0
	}
}

// PositionOf returns the flat position of a product's header row.
func (ix *Index) PositionOf(productKey string) (int, bool) {
	g, ok := ix.byKey[productKey]
	if !ok {
		return 0, false
	}
	return ix.rowStart[g], true
}

// OffsetOf returns the cell offset at which row p starts. Positions at
// or past the end return the total extent.
func (ix *Index) OffsetOf(p int) int {
	if p <= 0 {
		return 0
	}
	if p >= ix.totalRows {
		return ix.totalHeight
	}
	productRows := ix.rowStart[len(ix.products)]
	if p >= productRows {
		return ix.cellStart[len(ix.products)]
	}
	g := sort.Search(len(ix.products), func(i int) bool { return ix.rowStart[i+1] > p })
	off := p - ix.rowStart[g]
	if off == 0 {
		return ix.cellStart[g]
	}
	return ix.cellStart[g] + ix.heights.Header + (off-1)*ix.heights.Variant
}

// RowAtOffset maps a vertical cell offset (scroll position) to the flat
// position of the row covering it.
func (ix *Index) RowAtOffset(y int) (int, bool) {
	if y < 0 || y >= ix.totalHeight {
		return 0, false
	}
	productCells := ix.cellStart[len(ix.products)]
	if y >= productCells {
		// Inside the trailing loading sentinel.
		return ix.totalRows - 1, true
	}
	g := sort.Search(len(ix.products), func(i int) bool { return ix.cellStart[i+1] > y })
	delta := y - ix.cellStart[g]
	if delta < ix.heights.Header {
		return ix.rowStart[g], true
	}
	k := (delta-ix.heights.Header)/ix.heights.Variant + 1
	return ix.rowStart[g] + k, true
}
