package reorder

import (
	"errors"
	"testing"

	"offersheet-cli/internal/model"
	"offersheet-cli/internal/selection"
)

func sheetOf(t *testing.T, productIDs ...string) *selection.Sheet {
	t.Helper()
	s := selection.NewSheet()
	for _, id := range productIDs {
		s.Append(&model.Product{
			Key:      id,
			RemoteID: id,
			Title:    "Product " + id,
			Expanded: true,
			Variants: []model.Variant{
				{Key: model.VariantKey(id, "x"), RemoteID: "x"},
				{Key: model.VariantKey(id, "y"), RemoteID: "y"},
				{Key: model.VariantKey(id, "z"), RemoteID: "z"},
			},
		})
	}
	return s
}

func productOrder(s *selection.Sheet) []string {
	var out []string
	for _, p := range s.Products() {
		out = append(out, p.Key)
	}
	return out
}

func variantOrder(p *model.Product) []string {
	var out []string
	for _, v := range p.Variants {
		out = append(out, v.RemoteID)
	}
	return out
}

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestEnd_ProductMoveIsPositionalNotSwap(t *testing.T) {
	s := sheetOf(t, "A", "B", "C", "D")
	e := NewEngine(s, nil)

	e.Start(StartDrag{Domain: DomainProduct, Key: "A"})
	moved, err := e.End(EndDrag{
		ActiveDomain: DomainProduct, ActiveKey: "A",
		OverDomain: DomainProduct, OverKey: "C", HasOver: true,
	})
	if err != nil || !moved {
		t.Fatalf("End = %v, %v; want moved", moved, err)
	}
	assertOrder(t, productOrder(s), []string{"B", "C", "A", "D"})
	if e.Dragging() {
		t.Fatal("engine still dragging after End")
	}
}

func TestEnd_VariantMoveWithinProduct(t *testing.T) {
	s := sheetOf(t, "G")
	e := NewEngine(s, nil)

	e.Start(StartDrag{Domain: DomainVariant, Key: model.VariantKey("G", "z")})
	moved, err := e.End(EndDrag{
		ActiveDomain: DomainVariant, ActiveKey: model.VariantKey("G", "z"),
		OverDomain: DomainVariant, OverKey: model.VariantKey("G", "x"), HasOver: true,
	})
	if err != nil || !moved {
		t.Fatalf("End = %v, %v; want moved", moved, err)
	}
	assertOrder(t, variantOrder(s.Products()[0]), []string{"z", "x", "y"})
}

func TestEnd_CrossProductVariantMoveIsRejected(t *testing.T) {
	s := sheetOf(t, "G1", "G2")
	e := NewEngine(s, nil)

	e.Start(StartDrag{Domain: DomainVariant, Key: model.VariantKey("G1", "x")})
	moved, err := e.End(EndDrag{
		ActiveDomain: DomainVariant, ActiveKey: model.VariantKey("G1", "x"),
		OverDomain: DomainVariant, OverKey: model.VariantKey("G2", "y"), HasOver: true,
	})
	if moved {
		t.Fatal("cross-product move mutated the sheet")
	}
	var ume UnsupportedMoveError
	if !errors.As(err, &ume) {
		t.Fatalf("err = %v, want UnsupportedMoveError", err)
	}
	assertOrder(t, variantOrder(s.Products()[0]), []string{"x", "y", "z"})
	assertOrder(t, variantOrder(s.Products()[1]), []string{"x", "y", "z"})
}

func TestEnd_MixedDomainsAreRejected(t *testing.T) {
	s := sheetOf(t, "A", "B")
	e := NewEngine(s, nil)

	e.Start(StartDrag{Domain: DomainProduct, Key: "A"})
	moved, err := e.End(EndDrag{
		ActiveDomain: DomainProduct, ActiveKey: "A",
		OverDomain: DomainVariant, OverKey: model.VariantKey("B", "x"), HasOver: true,
	})
	if moved {
		t.Fatal("mixed-domain drop mutated the sheet")
	}
	var ume UnsupportedMoveError
	if !errors.As(err, &ume) {
		t.Fatalf("err = %v, want UnsupportedMoveError", err)
	}
	assertOrder(t, productOrder(s), []string{"A", "B"})
}

func TestEnd_NoTargetOrSelfTargetIsANoOp(t *testing.T) {
	s := sheetOf(t, "A", "B")
	e := NewEngine(s, nil)

	e.Start(StartDrag{Domain: DomainProduct, Key: "A"})
	if moved, err := e.End(EndDrag{ActiveDomain: DomainProduct, ActiveKey: "A"}); moved || err != nil {
		t.Fatalf("dropped-outside End = %v, %v; want clean no-op", moved, err)
	}

	e.Start(StartDrag{Domain: DomainProduct, Key: "A"})
	if moved, err := e.End(EndDrag{
		ActiveDomain: DomainProduct, ActiveKey: "A",
		OverDomain: DomainProduct, OverKey: "A", HasOver: true,
	}); moved || err != nil {
		t.Fatalf("self-target End = %v, %v; want clean no-op", moved, err)
	}
	assertOrder(t, productOrder(s), []string{"A", "B"})
}

func TestEnd_StaleKeysAreAbandonedNotFatal(t *testing.T) {
	s := sheetOf(t, "A", "B")
	e := NewEngine(s, nil)

	e.Start(StartDrag{Domain: DomainProduct, Key: "A"})
	// The source disappears mid-gesture.
	s.RemoveByKey("A")
	moved, err := e.End(EndDrag{
		ActiveDomain: DomainProduct, ActiveKey: "A",
		OverDomain: DomainProduct, OverKey: "B", HasOver: true,
	})
	if moved {
		t.Fatal("stale-source move mutated the sheet")
	}
	var kre KeyResolutionError
	if !errors.As(err, &kre) {
		t.Fatalf("err = %v, want KeyResolutionError", err)
	}
	if kre.Key != "A" {
		t.Fatalf("KeyResolutionError.Key = %q, want A", kre.Key)
	}
	if e.Dragging() {
		t.Fatal("engine still dragging after abandoned gesture")
	}
}

func TestEnd_WithoutStartIsIgnored(t *testing.T) {
	s := sheetOf(t, "A", "B", "C")
	e := NewEngine(s, nil)

	moved, err := e.End(EndDrag{
		ActiveDomain: DomainProduct, ActiveKey: "A",
		OverDomain: DomainProduct, OverKey: "C", HasOver: true,
	})
	if moved || err != nil {
		t.Fatalf("End without Start = %v, %v; want silent no-op", moved, err)
	}
	assertOrder(t, productOrder(s), []string{"A", "B", "C"})
}

func TestEnd_MovingDownShiftsIntermediates(t *testing.T) {
	s := sheetOf(t, "A", "B", "C", "D")
	e := NewEngine(s, nil)

	e.Start(StartDrag{Domain: DomainProduct, Key: "D"})
	if _, err := e.End(EndDrag{
		ActiveDomain: DomainProduct, ActiveKey: "D",
		OverDomain: DomainProduct, OverKey: "B", HasOver: true,
	}); err != nil {
		t.Fatalf("End: %v", err)
	}
	assertOrder(t, productOrder(s), []string{"A", "D", "B", "C"})
}
