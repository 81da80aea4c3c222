package filter

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/komsit37/margins/pkg/margins/margin"
	"github.com/komsit37/margins/pkg/margins/types"
)

// Field is a sortable product attribute.
type Field string

const (
	FieldCode          Field = "code"
	FieldName          Field = "name"
	FieldPurchasePrice Field = "purchasePrice"
	FieldPrice         Field = "price"
	FieldMargin        Field = "margin"
)

// Fields lists the sortable fields.
var Fields = []Field{FieldCode, FieldName, FieldPurchasePrice, FieldPrice, FieldMargin}

// ParseField resolves a field name, case-insensitively. "relativeMargin" is an alias for margin.
func ParseField(s string) (Field, error) {
	if strings.EqualFold(s, "relativeMargin") {
		return FieldMargin, nil
	}
	for _, f := range Fields {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Sort orders products in place by field. Strings compare case-insensitively,
// margins use the effective margin and NaN sorts last. Equal keys keep input order.
func Sort(products []types.Product, field Field, desc bool) {
	less := func(a, b types.Product) bool {
		switch field {
		case FieldCode:
			return strings.ToLower(a.Code) < strings.ToLower(b.Code)
		case FieldName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case FieldPurchasePrice:
			return a.PurchasePrice < b.PurchasePrice
		case FieldPrice:
			return a.Price < b.Price
		default:
			return numLess(margin.Effective(a), margin.Effective(b))
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func numLess(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	return a < b
}
