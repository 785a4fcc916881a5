package selection

import (
	"github.com/shopspring/decimal"

	"offersheet-cli/internal/model"
)

// Sheet is the committed, ordered offer sheet. All mutation goes
// through methods; renderers read the snapshot but never reorder or
// splice it themselves.
type Sheet struct {
	products []*model.Product
}

func NewSheet() *Sheet { return &Sheet{} }

func (s *Sheet) Len() int { return len(s.products) }

func (s *Sheet) Products() []*model.Product { return s.products }

// Snapshot returns the products by value for an index rebuild.
func (s *Sheet) Snapshot() []model.Product {
	out := make([]model.Product, len(s.products))
	for i, p := range s.products {
		out[i] = *p
	}
	return out
}

func (s *Sheet) Append(products ...*model.Product) {
	s.products = append(s.products, products...)
}

// AddPlaceholder appends an empty row awaiting catalog selection.
func (s *Sheet) AddPlaceholder() *model.Product {
	p := model.NewPlaceholder()
	s.products = append(s.products, p)
	return p
}

// ReplaceAt substitutes the product at index i with the given products
// (used when a placeholder is filled from the picker, which may yield
// several products). Out-of-range indices are ignored.
func (s *Sheet) ReplaceAt(i int, products []*model.Product) {
	if i < 0 || i >= len(s.products) {
		return
	}
	next := make([]*model.Product, 0, len(s.products)-1+len(products))
	next = append(next, s.products[:i]...)
	next = append(next, products...)
	next = append(next, s.products[i+1:]...)
	s.products = next
}

func (s *Sheet) RemoveByKey(productKey string) bool {
	i := s.IndexOfProduct(productKey)
	if i < 0 {
		return false
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return true
}

func (s *Sheet) IndexOfProduct(productKey string) int {
	for i, p := range s.products {
		if p.Key == productKey {
			return i
		}
	}
	return -1
}

func (s *Sheet) FindProduct(productKey string) *model.Product {
	if i := s.IndexOfProduct(productKey); i >= 0 {
		return s.products[i]
	}
	return nil
}

// FindVariantOwner locates the product that currently owns the variant
// key, plus the variant's index within it. Variant keys are unique
// across the sheet, so the first match is the only match.
func (s *Sheet) FindVariantOwner(variantKey string) (*model.Product, int) {
	for _, p := range s.products {
		for i := range p.Variants {
			if p.Variants[i].Key == variantKey {
				return p, i
			}
		}
	}
	return nil, -1
}

func (s *Sheet) ToggleExpanded(productKey string) bool {
	p := s.FindProduct(productKey)
	if p == nil {
		return false
	}
	p.Expanded = !p.Expanded
	return true
}

// ReplaceOrder swaps in a new top-level ordering in one step. The
// reorder engine prepares the full slice first so partial orderings are
// never observable.
func (s *Sheet) ReplaceOrder(products []*model.Product) {
	s.products = products
}

// ReplaceVariants swaps one product's variant ordering in one step.
func (s *Sheet) ReplaceVariants(productKey string, variants []model.Variant) bool {
	p := s.FindProduct(productKey)
	if p == nil {
		return false
	}
	p.Variants = variants
	return true
}

// Subtotal sums effective variant prices across the sheet. A variant's
// own discount wins; otherwise the owning product's discount applies.
func (s *Sheet) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.products {
		for _, v := range p.Variants {
			if v.Discount == nil && p.Discount != nil {
				withParent := v
				withParent.Discount = p.Discount
				total = total.Add(withParent.EffectivePrice())
				continue
			}
			total = total.Add(v.EffectivePrice())
		}
	}
	return total
}
