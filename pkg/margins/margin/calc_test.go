package margin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/komsit37/margins/pkg/margins/types"
)

const eps = 1e-9

func TestFromPrice(t *testing.T) {
	assert.InDelta(t, 60.0, FromPrice(100, 40), eps)
	assert.InDelta(t, -25.0, FromPrice(80, 100), eps, "cost above price gives a negative margin")
	assert.InDelta(t, 100.0, FromPrice(50, 0), eps)

	for _, price := range []float64{0, -1, -1000} {
		for _, cost := range []float64{0, 10, -10, 1e9} {
			assert.Equal(t, 0.0, FromPrice(price, cost), "price=%v cost=%v", price, cost)
		}
	}
}

func TestPriceForTarget(t *testing.T) {
	assert.True(t, math.IsInf(PriceForTarget(40, 1), 1))
	assert.True(t, math.IsInf(PriceForTarget(40, 1.5), 1))
	assert.Equal(t, 40.0, PriceForTarget(40, 0))
	assert.Equal(t, 40.0, PriceForTarget(40, -0.2))
	assert.InDelta(t, 133.333333, PriceForTarget(40, 0.7), 1e-6)
	assert.InDelta(t, 80.0, PriceForTarget(40, 0.5), eps)
}

func TestRoundTrip(t *testing.T) {
	for _, cost := range []float64{0, 0.01, 1, 12.5, 40, 999.99, 1e6} {
		for _, f := range []float64{0, 0.01, 0.25, 0.5, 0.7, 0.75, 0.9, 0.99} {
			price := PriceForTarget(cost, f)
			got := FromPrice(price, cost)
			if cost == 0 {
				assert.Equal(t, 0.0, price)
				assert.Equal(t, 0.0, got)
				continue
			}
			assert.InDelta(t, f*100, got, 1e-6, "cost=%v fraction=%v", cost, f)
		}
	}
}

func TestEffective(t *testing.T) {
	derived := types.Product{Price: 100, PurchasePrice: 40}
	assert.InDelta(t, 60.0, Effective(derived), eps)

	supplied := types.Product{Price: 100, PurchasePrice: 40, RelativeMargin: 12, RelativeMarginSet: true}
	assert.Equal(t, 12.0, Effective(supplied), "supplied margin wins even when it disagrees")

	zero := types.Product{Price: 100, PurchasePrice: 40, RelativeMargin: 0, RelativeMarginSet: true}
	assert.Equal(t, 0.0, Effective(zero))

	nonFinite := types.Product{Price: 100, PurchasePrice: 90, RelativeMargin: math.NaN(), RelativeMarginSet: true}
	assert.InDelta(t, 10.0, Effective(nonFinite), eps)
}

func TestForTarget(t *testing.T) {
	p := types.Product{Price: 100, PurchasePrice: 40}
	got := ForTarget(p, 70)

	assert.Equal(t, 70.0, got.TargetPercentage)
	assert.InDelta(t, 133.33, got.NewPrice, 0.01)
	assert.InDelta(t, 33.33, got.PriceChange, 0.01)
	assert.InDelta(t, 33.33, got.PriceChangePercent, 0.01)

	free := ForTarget(types.Product{Price: 0, PurchasePrice: 40}, 50)
	assert.InDelta(t, 80.0, free.NewPrice, eps)
	assert.InDelta(t, 80.0, free.PriceChange, eps)
	assert.Equal(t, 0.0, free.PriceChangePercent, "no percentage change without a current price")

	unattainable := ForTarget(p, 100)
	assert.True(t, math.IsInf(unattainable.NewPrice, 1))
	assert.True(t, math.IsInf(unattainable.PriceChange, 1))

	same := ForTarget(p, 0)
	assert.Equal(t, 40.0, same.NewPrice)
	assert.InDelta(t, -60.0, same.PriceChangePercent, eps)
}

func TestHealthOf(t *testing.T) {
	tests := []struct {
		margin   float64
		expected types.Health
	}{
		{-10, types.HealthLow},
		{0, types.HealthLow},
		{49.999, types.HealthLow},
		{50, types.HealthMedium},
		{69.99, types.HealthMedium},
		{70, types.HealthGood},
		{100, types.HealthGood},
		{math.NaN(), types.HealthLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HealthOf(tt.margin), "margin=%v", tt.margin)
	}
}
