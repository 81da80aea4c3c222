// Package enrich derives per-product display data from margins and target margins.
package enrich

import (
	"fmt"
	"math"

	"github.com/komsit37/margins/pkg/margins/margin"
	"github.com/komsit37/margins/pkg/margins/types"
)

// DefaultTargets are the target margins shown when none are configured.
var DefaultTargets = []float64{70, 75}

// Row is a product with its computed margin data.
type Row struct {
	Product types.Product
	Margin  float64
	Health  types.Health
	// Targets holds one projection per requested target, in request order.
	Targets []types.CalculatedMargin
}

// Target returns the projection for percent, if it was requested.
func (r Row) Target(percent float64) (types.CalculatedMargin, bool) {
	for _, t := range r.Targets {
		if t.TargetPercentage == percent {
			return t, true
		}
	}
	return types.CalculatedMargin{}, false
}

// Project computes a Row for every product. Nothing is cached: target values are
// recomputed on every call.
func Project(products []types.Product, targets []float64) []Row {
	rows := make([]Row, len(products))
	for i, p := range products {
		m := margin.Effective(p)
		row := Row{Product: p, Margin: m, Health: margin.HealthOf(m)}
		if len(targets) > 0 {
			row.Targets = make([]types.CalculatedMargin, len(targets))
			for j, t := range targets {
				row.Targets[j] = margin.ForTarget(p, t)
			}
		}
		rows[i] = row
	}
	return rows
}

// ValidateTargets checks that every target lies in [0, 99].
func ValidateTargets(targets []float64) error {
	for _, t := range targets {
		if math.IsNaN(t) || t < 0 || t > 99 {
			return fmt.Errorf("target margin %v out of range 0-99", t)
		}
	}
	return nil
}
