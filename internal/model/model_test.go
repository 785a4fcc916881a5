package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEffectivePrice(t *testing.T) {
	price := decimal.NewFromInt(80)
	cases := []struct {
		name     string
		discount *Discount
		want     decimal.Decimal
	}{
		{"no discount", nil, decimal.NewFromInt(80)},
		{"percentage", &Discount{Kind: DiscountPercentage, Amount: decimal.NewFromInt(25)}, decimal.NewFromInt(60)},
		{"percentage over 100 clamps", &Discount{Kind: DiscountPercentage, Amount: decimal.NewFromInt(150)}, decimal.Zero},
		{"flat", &Discount{Kind: DiscountFlat, Amount: decimal.NewFromInt(30)}, decimal.NewFromInt(50)},
		{"flat exceeding price floors at zero", &Discount{Kind: DiscountFlat, Amount: decimal.NewFromInt(200)}, decimal.Zero},
		{"unknown kind leaves price alone", &Discount{Kind: "coupon", Amount: decimal.NewFromInt(30)}, decimal.NewFromInt(80)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Variant{Price: price, Discount: tc.discount}
			if got := v.EffectivePrice(); !got.Equal(tc.want) {
				t.Fatalf("EffectivePrice() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestVariantKeyIsStable(t *testing.T) {
	if got := VariantKey("g1", "40"); got != "g1/40" {
		t.Fatalf("VariantKey = %q, want g1/40", got)
	}
}
