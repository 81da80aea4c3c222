// Package mapper turns raw spreadsheet rows into normalized products.
package mapper

import (
	"github.com/komsit37/margins/pkg/margins/classify"
	"github.com/komsit37/margins/pkg/margins/types"
)

// Kind is the coercion applied to a mapped column.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBool
	KindVariant
	KindVisibility
)

// Target describes where a header's value lands in a Product.
type Target struct {
	Kind  Kind
	Field string
}

// Table maps spreadsheet headers to product fields.
type Table map[string]Target

// DefaultTable returns the column layout of the product export spreadsheets.
func DefaultTable() Table {
	return Table{
		"code":              {KindText, "code"},
		"pairCode":          {KindText, "pairCode"},
		"name":              {KindText, "name"},
		"price":             {KindNumber, "price"},
		"priceRatio":        {KindNumber, "priceRatio"},
		"standardPrice":     {KindNumber, "standardPrice"},
		"purchasePrice":     {KindNumber, "purchasePrice"},
		"includingVat":      {KindBool, "includingVat"},
		"percentVat":        {KindNumber, "percentVat"},
		"relativeMargin":    {KindNumber, "relativeMargin"},
		"absoluteMargin":    {KindNumber, "absoluteMargin"},
		"variant:Barva":     {KindVariant, "color"},
		"variant:Díl":       {KindVariant, "part"},
		"variant:PDF":       {KindVariant, "pdf"},
		"variant:TISK":      {KindVariant, "print"},
		"variant:Velikost":  {KindVariant, "size"},
		"variant:barevná":   {KindVariant, "colored"},
		"variant:černobílá": {KindVariant, "monochrome"},
		"variantVisibility": {KindVisibility, "variant"},
		"productVisibility": {KindVisibility, "product"},
	}
}

// Normalize maps a raw row onto a Product and classifies it. Headers missing from
// table are ignored and malformed cells degrade to zero values; it never fails.
func Normalize(row types.RawRow, table Table) types.Product {
	var p types.Product
	for _, col := range row {
		t, ok := table[col.Header]
		if !ok {
			continue
		}
		apply(&p, t, col.Value)
	}
	p.ProductType = classify.Detect(p.Code, p.Name)
	return p
}

func apply(p *types.Product, t Target, c types.Cell) {
	switch t.Kind {
	case KindVariant:
		if !c.IsEmpty() {
			p.Variants.Set(t.Field, CoerceText(c))
		}
	case KindVisibility:
		p.Visibility.Set(t.Field, CoerceText(c))
	case KindBool:
		if t.Field == "includingVat" {
			p.IncludingVat = CoerceBool(c)
		}
	case KindNumber:
		setNumber(p, t.Field, c)
	case KindText:
		setText(p, t.Field, CoerceText(c))
	}
}

func setNumber(p *types.Product, field string, c types.Cell) {
	v := CoerceNumber(c)
	switch field {
	case "price":
		p.Price = v
	case "priceRatio":
		p.PriceRatio = v
	case "standardPrice":
		p.StandardPrice = v
	case "purchasePrice":
		p.PurchasePrice = v
	case "percentVat":
		p.PercentVat = v
	case "relativeMargin":
		p.RelativeMargin = v
		p.RelativeMarginSet = !c.IsEmpty()
	case "absoluteMargin":
		p.AbsoluteMargin = v
	}
}

func setText(p *types.Product, field, v string) {
	switch field {
	case "code":
		p.Code = v
	case "pairCode":
		p.PairCode = v
	case "name":
		p.Name = v
	}
}
