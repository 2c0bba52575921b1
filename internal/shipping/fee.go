// Package shipping holds the flat-rate shipping fee rule and the
// per-payment-method required-field policy used by checkout validation.
package shipping

import (
	"strings"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

// Flat fee tiers in minor currency units. Delta is the store's home
// state, Abuja is the designated high-cost destination.
const (
	HomeState     = "Delta"
	HighCostState = "Abuja"

	homeFee     int64 = 1000
	highCostFee int64 = 3000
	standardFee int64 = 2000
)

// Fee maps a destination state and payment method to a flat shipping
// fee. Pickup methods always ship free. Unknown or empty states get the
// standard tier. Pure and deterministic.
func Fee(state string, method domain.PaymentMethod) int64 {
	if method.IsPickup() {
		return 0
	}

	switch {
	case strings.EqualFold(state, HomeState):
		return homeFee
	case strings.EqualFold(state, HighCostState):
		return highCostFee
	default:
		return standardFee
	}
}
