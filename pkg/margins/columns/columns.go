package columns

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/komsit37/margins/pkg/margins/enrich"
	"github.com/komsit37/margins/pkg/margins/types"
)

// Column describes how a display column is resolved from a row.
type Column struct {
	Key    string
	Header string
	// Numeric columns are right-aligned in tables and written as numbers to workbooks.
	Numeric bool
	// Text is the formatted display value.
	Text func(r enrich.Row) string
	// Value is the raw value used by machine-readable outputs.
	Value func(r enrich.Row) any
}

// Registry maps column keys to static columns. Target columns (t70, t70%) are
// resolved dynamically by Lookup.
var Registry = map[string]Column{}

func register(c Column) {
	if c.Value == nil {
		text := c.Text
		c.Value = func(r enrich.Row) any { return text(r) }
	}
	Registry[c.Key] = c
}

func init() {
	register(Column{Key: "code", Header: "CODE", Text: func(r enrich.Row) string { return r.Product.Code }})
	register(Column{Key: "pairCode", Header: "PAIR CODE", Text: func(r enrich.Row) string { return r.Product.PairCode }})
	register(Column{Key: "name", Header: "NAME", Text: func(r enrich.Row) string { return r.Product.Name }})
	register(Column{Key: "type", Header: "TYPE", Text: func(r enrich.Row) string { return string(r.Product.ProductType) }})
	register(money("purchasePrice", "COST", func(r enrich.Row) float64 { return r.Product.PurchasePrice }))
	register(money("price", "PRICE", func(r enrich.Row) float64 { return r.Product.Price }))
	register(money("standardPrice", "STD PRICE", func(r enrich.Row) float64 { return r.Product.StandardPrice }))
	register(money("absoluteMargin", "ABS MARGIN", func(r enrich.Row) float64 { return r.Product.AbsoluteMargin }))
	register(percent("margin", "MARGIN", func(r enrich.Row) float64 { return r.Margin }))
	// relativeMargin is the supplied cell as imported, margin the value actually used.
	register(percent("relativeMargin", "REL MARGIN", func(r enrich.Row) float64 { return r.Product.RelativeMargin }))
	register(Column{Key: "health", Header: "HEALTH", Text: func(r enrich.Row) string { return string(r.Health) }})
	register(Column{
		Key: "vat", Header: "VAT",
		Text: func(r enrich.Row) string {
			s := FormatPercent(r.Product.PercentVat)
			if r.Product.IncludingVat {
				s += " incl."
			}
			return s
		},
		Value: func(r enrich.Row) any { return r.Product.PercentVat },
	})
	register(Column{Key: "variants", Header: "VARIANTS", Text: func(r enrich.Row) string { return joinVariants(r.Product.Variants) }})
	register(Column{Key: "visibility", Header: "VISIBILITY", Text: func(r enrich.Row) string { return joinVisibility(r.Product.Visibility) }})
}

func money(key, header string, get func(enrich.Row) float64) Column {
	return Column{
		Key: key, Header: header, Numeric: true,
		Text:  func(r enrich.Row) string { return FormatMoney(get(r)) },
		Value: func(r enrich.Row) any { return get(r) },
	}
}

func percent(key, header string, get func(enrich.Row) float64) Column {
	return Column{
		Key: key, Header: header, Numeric: true,
		Text:  func(r enrich.Row) string { return FormatPercent(get(r)) },
		Value: func(r enrich.Row) any { return get(r) },
	}
}

// UnknownColumnError reports a column key that is neither registered nor a target column.
type UnknownColumnError struct {
	Key       string
	Available []string
}

func (e *UnknownColumnError) Error() string {
	return "unknown column: " + e.Key + "; available: " + strings.Join(e.Available, ", ") + ", tNN, tNN%"
}

// Lookup resolves a column key. "t70" is the price needed for a 70% margin and
// "t70%" the change from the current price, in percent.
func Lookup(key string) (Column, error) {
	if c, ok := Registry[key]; ok {
		return c, nil
	}
	if c, ok := targetColumn(key); ok {
		return c, nil
	}
	return Column{}, &UnknownColumnError{Key: key, Available: availableColumns()}
}

// TargetKey returns the price column key for a target percentage.
func TargetKey(target float64) string {
	return "t" + strconv.FormatFloat(target, 'f', -1, 64)
}

// TargetOf reports the target percentage referenced by a target column key.
func TargetOf(key string) (float64, bool) {
	if !strings.HasPrefix(key, "t") || len(key) < 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(key[1:], "%"), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 99 {
		return 0, false
	}
	return v, true
}

func targetColumn(key string) (Column, bool) {
	target, ok := TargetOf(key)
	if !ok {
		return Column{}, false
	}
	label := strconv.FormatFloat(target, 'f', -1, 64) + "%"
	calc := func(r enrich.Row) (types.CalculatedMargin, bool) {
		if t, ok := r.Target(target); ok {
			return t, true
		}
		return types.CalculatedMargin{}, false
	}
	if strings.HasSuffix(key, "%") {
		return Column{
			Key: key, Header: "@" + label + " CHG", Numeric: true,
			Text: func(r enrich.Row) string {
				t, ok := calc(r)
				if !ok {
					return ""
				}
				return FormatSignedPercent(t.PriceChangePercent)
			},
			Value: func(r enrich.Row) any {
				t, _ := calc(r)
				return t.PriceChangePercent
			},
		}, true
	}
	return Column{
		Key: key, Header: "@" + label, Numeric: true,
		Text: func(r enrich.Row) string {
			t, ok := calc(r)
			if !ok {
				return ""
			}
			return FormatMoney(t.NewPrice)
		},
		Value: func(r enrich.Row) any {
			t, _ := calc(r)
			return t.NewPrice
		},
	}, true
}

// Compute determines final column order. Explicit columns are honored exactly,
// minus duplicates. Otherwise the default set is used, followed by a price and a
// change column per target.
func Compute(explicit []string, targets []float64) []string {
	if len(explicit) > 0 {
		seen := map[string]struct{}{}
		out := make([]string, 0, len(explicit))
		for _, k := range explicit {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
		return out
	}
	out := append([]string(nil), Sets["default"]...)
	for _, t := range targets {
		k := TargetKey(t)
		out = append(out, k, k+"%")
	}
	return out
}

// Resolve looks up every key, failing on the first unknown one.
func Resolve(keys []string) ([]Column, error) {
	out := make([]Column, 0, len(keys))
	for _, k := range keys {
		c, err := Lookup(k)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func joinVariants(v types.Variants) string {
	parts := make([]string, 0, len(types.VariantKeys))
	for _, k := range types.VariantKeys {
		if val, ok := v.Get(k); ok {
			parts = append(parts, k+"="+val)
		}
	}
	return strings.Join(parts, " ")
}

func joinVisibility(v types.Visibility) string {
	parts := make([]string, 0, len(types.VisibilityKeys))
	for _, k := range types.VisibilityKeys {
		if val, ok := v.Get(k); ok && val != "" {
			parts = append(parts, k+"="+val)
		}
	}
	return strings.Join(parts, " ")
}

func availableColumns() []string {
	keys := make([]string, 0, len(Registry))
	for k := range Registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Describe lists every static column as "key (HEADER)", sorted by key.
func Describe() []string {
	keys := availableColumns()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf("%s (%s)", k, Registry[k].Header)
	}
	return out
}
