package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFlat       DiscountKind = "flat"
)

// Discount describes a price reduction on a product or a single variant.
// Absence of a discount is a nil *Discount; Kind is only meaningful when
// the value exists.
type Discount struct {
	Kind   DiscountKind    `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// Variant is a purchasable variation of a product. It belongs to exactly
// one product; cross-product moves are not supported.
type Variant struct {
	// Key is deterministic over (parent remote id, variant remote id), so
	// the same remote variant resolves to the same key across re-fetches.
	Key      string `json:"key"`
	RemoteID string `json:"remoteId"`

	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Discount *Discount       `json:"discount,omitempty"`
}

// VariantKey builds the stable composite key for a variant.
func VariantKey(parentRemoteID, remoteID string) string {
	return fmt.Sprintf("%s/%s", parentRemoteID, remoteID)
}

// Product is a top-level catalog or sheet entry.
//
// Key is process-local and minted once when the product enters client
// state; it is distinct from RemoteID and never reused, so reorders and
// discount edits stay attached to the right entry even when the same
// remote product ends up on the sheet twice.
type Product struct {
	Key      string `json:"key"`
	RemoteID string `json:"remoteId"`

	Title    string    `json:"title"`
	ImageRef string    `json:"imageRef,omitempty"`
	Variants []Variant `json:"variants"`
	Discount *Discount `json:"discount,omitempty"`

	Expanded bool `json:"expanded"`
	// Placeholder marks a sheet row that is still awaiting catalog
	// selection: no variants, no remote identity yet.
	Placeholder bool `json:"placeholder"`
}

func NewProductKey() string {
	return uuid.NewString()
}

// NewPlaceholder returns an empty sheet entry awaiting catalog selection.
func NewPlaceholder() *Product {
	return &Product{
		Key:         NewProductKey(),
		Expanded:    true,
		Placeholder: true,
	}
}

// SelectionEntry is a picker-side, pre-commit selection of one variant.
// It carries enough denormalized parent context to materialize a full
// Product later without re-fetching the catalog page it came from.
type SelectionEntry struct {
	Key            string `json:"key"`
	ParentRemoteID string `json:"parentRemoteId"`
	ParentTitle    string `json:"parentTitle"`
	ParentImageRef string `json:"parentImageRef,omitempty"`

	Variant Variant `json:"variant"`
}

// EffectivePrice applies a variant's own discount to its price.
// Percentage discounts are clamped to [0, 100]; results never go below zero.
func (v Variant) EffectivePrice() decimal.Decimal {
	return applyDiscount(v.Price, v.Discount)
}

func applyDiscount(price decimal.Decimal, d *Discount) decimal.Decimal {
	if d == nil {
		return price
	}
	var out decimal.Decimal
	switch d.Kind {
	case DiscountPercentage:
		pct := d.Amount
		if pct.GreaterThan(decimal.NewFromInt(100)) {
			pct = decimal.NewFromInt(100)
		}
		out = price.Sub(price.Mul(pct).Div(decimal.NewFromInt(100)))
	case DiscountFlat:
		out = price.Sub(d.Amount)
	default:
		return price
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
