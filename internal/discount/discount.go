// Package discount attaches discount descriptors to committed sheet
// entries. Raw input validation (text parsing, etc.) belongs to the
// input widgets; this boundary only enforces the data invariants.
package discount

import (
	"fmt"

	"offersheet-cli/internal/model"
	"offersheet-cli/internal/selection"
)

// NotFoundError reports a discount edit against a key that is no
// longer on the sheet.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// InvalidAmountError rejects negative amounts.
type InvalidAmountError struct {
	Amount string
}

func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("discount amount must be >= 0, got %s", e.Amount)
}

// Overlay edits discounts on a sheet. Cascade controls whether setting
// a product discount also stamps the identical descriptor onto every
// current variant of that product; both behaviors exist in the field,
// so the choice is explicit configuration, not a default.
type Overlay struct {
	Sheet   *selection.Sheet
	Cascade bool
}

func New(sheet *selection.Sheet, cascade bool) *Overlay {
	return &Overlay{Sheet: sheet, Cascade: cascade}
}

// SetProductDiscount sets (or clears, with nil) the product's
// descriptor. With Cascade, current variants get a copy each.
func (o *Overlay) SetProductDiscount(productKey string, d *model.Discount) error {
	if err := validate(d); err != nil {
		return err
	}
	p := o.Sheet.FindProduct(productKey)
	if p == nil {
		return NotFoundError{Kind: "product", Key: productKey}
	}
	p.Discount = d
	if o.Cascade {
		for i := range p.Variants {
			p.Variants[i].Discount = copyDiscount(d)
		}
	}
	return nil
}

// SetVariantDiscount updates exactly one variant. Variant keys are
// unique across the sheet, so the scan stops at the owning product.
func (o *Overlay) SetVariantDiscount(variantKey string, d *model.Discount) error {
	if err := validate(d); err != nil {
		return err
	}
	owner, i := o.Sheet.FindVariantOwner(variantKey)
	if owner == nil {
		return NotFoundError{Kind: "variant", Key: variantKey}
	}
	owner.Variants[i].Discount = d
	return nil
}

func validate(d *model.Discount) error {
	if d == nil {
		return nil
	}
	if d.Amount.IsNegative() {
		return InvalidAmountError{Amount: d.Amount.String()}
	}
	return nil
}

func copyDiscount(d *model.Discount) *model.Discount {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}
