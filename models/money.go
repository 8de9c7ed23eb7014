package models

import (
	"errors"
	"math"
)

// DiscountAmount computes the discount share of a pre-discount total for a
// given percent: round(total * pct / (100 + pct)). Amounts are in the minor
// currency unit.
func DiscountAmount(total int64, pct int) int64 {
	return int64(math.Round(float64(total) * float64(pct) / float64(100+pct)))
}

var ErrAlreadyDiscounted = errors.New("order already has a discount applied")

// ApplyDiscount treats the order's current TotalAmount as the pre-discount
// baseline and reduces it in place. Orders that already carry a discount are
// refused so repeated calls cannot compound.
func (o *Order) ApplyDiscount(pct int) error {
	if pct < 1 || pct > 100 {
		return errors.New("discount percent must be between 1 and 100")
	}
	if o.DiscountPercent != nil {
		return ErrAlreadyDiscounted
	}
	amount := DiscountAmount(o.TotalAmount, pct)
	o.DiscountPercent = &pct
	o.DiscountAmount = amount
	o.TotalAmount -= amount
	return nil
}
