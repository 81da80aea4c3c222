package margin

import (
	"math"

	"github.com/komsit37/margins/pkg/margins/types"
)

// Summarize aggregates effective margins over products. Non-finite margins are left
// out of the average but still counted, so the buckets always add up to the total.
func Summarize(products []types.Product) types.AnalysisSummary {
	var s types.AnalysisSummary
	if len(products) == 0 {
		return s
	}
	s.TotalProducts = len(products)

	var sum float64
	var n int
	for _, p := range products {
		m := Effective(p)
		if !math.IsNaN(m) && !math.IsInf(m, 0) {
			sum += m
			n++
		}
		switch HealthOf(m) {
		case types.HealthGood:
			s.HighMarginCount++
		case types.HealthMedium:
			s.MediumMarginCount++
		default:
			s.LowMarginCount++
		}
	}
	if n > 0 {
		s.AvgMargin = sum / float64(n)
	}
	return s
}
