// Package margin holds the pure margin arithmetic and the summary aggregator.
// Every function is safe for concurrent use.
package margin

import (
	"math"

	"github.com/komsit37/margins/pkg/margins/types"
)

// Health thresholds, in percent.
const (
	MediumThreshold = 50.0
	GoodThreshold   = 70.0
)

// FromPrice returns the margin percentage (price-cost)/price*100, or 0 when price <= 0.
// Margins go negative when cost exceeds price.
func FromPrice(price, purchasePrice float64) float64 {
	if price <= 0 {
		return 0
	}
	return ((price - purchasePrice) / price) * 100
}

// PriceForTarget returns the price at which purchasePrice yields the target margin
// fraction. A target of 1 or more is unattainable and yields +Inf.
func PriceForTarget(purchasePrice, target float64) float64 {
	if target >= 1 {
		return math.Inf(1)
	}
	if target <= 0 {
		return purchasePrice
	}
	return purchasePrice / (1 - target)
}

// Effective returns the margin used for display and aggregation: the supplied
// relative margin when the source had one, else the margin derived from price.
func Effective(p types.Product) float64 {
	if p.RelativeMarginSet && !math.IsNaN(p.RelativeMargin) && !math.IsInf(p.RelativeMargin, 0) {
		return p.RelativeMargin
	}
	return FromPrice(p.Price, p.PurchasePrice)
}

// ForTarget projects the price change needed for p to reach targetPercent (0-99).
func ForTarget(p types.Product, targetPercent float64) types.CalculatedMargin {
	newPrice := PriceForTarget(p.PurchasePrice, targetPercent/100)
	change := newPrice - p.Price
	var changePct float64
	if p.Price > 0 {
		changePct = (change / p.Price) * 100
	}
	return types.CalculatedMargin{
		TargetPercentage:   targetPercent,
		NewPrice:           newPrice,
		PriceChange:        change,
		PriceChangePercent: changePct,
	}
}

// HealthOf buckets a margin: below 50 is low, below 70 medium, otherwise good.
func HealthOf(m float64) types.Health {
	switch {
	case m >= GoodThreshold:
		return types.HealthGood
	case m >= MediumThreshold:
		return types.HealthMedium
	default:
		return types.HealthLow
	}
}
