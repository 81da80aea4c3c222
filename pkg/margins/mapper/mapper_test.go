package mapper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/margins/pkg/margins/types"
)

func row(kv ...any) types.RawRow {
	var r types.RawRow
	for i := 0; i+1 < len(kv); i += 2 {
		var c types.Cell
		switch v := kv[i+1].(type) {
		case string:
			c = types.Text(v)
		case float64:
			c = types.Number(v)
		case int:
			c = types.Number(float64(v))
		case bool:
			c = types.Bool(v)
		case nil:
			c = types.Empty()
		}
		r = append(r, types.Column{Header: kv[i].(string), Value: c})
	}
	return r
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name     string
		in       types.Cell
		expected float64
	}{
		{"decimal comma", types.Text("12,50"), 12.5},
		{"decimal point", types.Text("12.5"), 12.5},
		{"garbage", types.Text("abc"), 0},
		{"empty text", types.Text(""), 0},
		{"empty", types.Empty(), 0},
		{"number", types.Number(42.25), 42.25},
		{"negative", types.Text("-3,5"), -3.5},
		{"leading whitespace", types.Text("  7"), 7},
		{"trailing junk", types.Text("19.90 Kč"), 19.9},
		{"only first comma replaced", types.Text("1,234,5"), 1.234},
		{"exponent", types.Text("1e3"), 1000},
		{"dangling exponent", types.Text("2e"), 2},
		{"bool true", types.Bool(true), 0},
		{"nan number", types.Number(math.NaN()), 0},
		{"inf number", types.Number(math.Inf(1)), 0},
		{"overflow text", types.Text("1e999"), 0},
		{"infinity text", types.Text("Infinity"), 0},
		{"lone dot", types.Text("."), 0},
		{"leading dot", types.Text(",5"), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceNumber(tt.in))
		})
	}
}

func TestCoerceBool(t *testing.T) {
	assert.True(t, CoerceBool(types.Bool(true)))
	assert.True(t, CoerceBool(types.Text("true")))
	assert.True(t, CoerceBool(types.Text("1")))
	assert.True(t, CoerceBool(types.Number(1)))

	assert.False(t, CoerceBool(types.Bool(false)))
	assert.False(t, CoerceBool(types.Text("TRUE")))
	assert.False(t, CoerceBool(types.Text("yes")))
	assert.False(t, CoerceBool(types.Number(2)))
	assert.False(t, CoerceBool(types.Empty()))
}

func TestNormalize_Scenario(t *testing.T) {
	p := Normalize(row(
		"code", "X1/TISK",
		"name", "Widget",
		"price", "100",
		"purchasePrice", "40",
	), DefaultTable())

	assert.Equal(t, "X1/TISK", p.Code)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, types.ProductTypePrint, p.ProductType)
	assert.Equal(t, 100.0, p.Price)
	assert.Equal(t, 40.0, p.PurchasePrice)
	assert.Equal(t, 0.0, p.RelativeMargin)
	assert.False(t, p.RelativeMarginSet)
}

func TestNormalize_PurchasePrice(t *testing.T) {
	p := Normalize(row("purchasePrice", "12,50"), DefaultTable())
	assert.Equal(t, 12.5, p.PurchasePrice)

	p = Normalize(row("purchasePrice", "abc"), DefaultTable())
	assert.Equal(t, 0.0, p.PurchasePrice)
}

func TestNormalize_AllFields(t *testing.T) {
	p := Normalize(row(
		"code", "A-1",
		"pairCode", 12345,
		"name", "Omalovánky PDF",
		"price", 199.0,
		"priceRatio", "1",
		"standardPrice", "249,00",
		"purchasePrice", 80,
		"includingVat", "1",
		"percentVat", 21,
		"relativeMargin", "55,5",
		"absoluteMargin", "119",
		"variant:Barva", "red",
		"variant:Díl", "",
		"variant:PDF", "ano",
		"variant:TISK", nil,
		"variant:Velikost", "A4",
		"variant:barevná", true,
		"variant:černobílá", 0,
		"variantVisibility", "visible",
		"productVisibility", "",
		"unknown column", "ignored",
	), DefaultTable())

	assert.Equal(t, "A-1", p.Code)
	assert.Equal(t, "12345", p.PairCode)
	assert.Equal(t, 199.0, p.Price)
	assert.Equal(t, 1.0, p.PriceRatio)
	assert.Equal(t, 249.0, p.StandardPrice)
	assert.Equal(t, 80.0, p.PurchasePrice)
	assert.True(t, p.IncludingVat)
	assert.Equal(t, 21.0, p.PercentVat)
	assert.Equal(t, 55.5, p.RelativeMargin)
	assert.True(t, p.RelativeMarginSet)
	assert.Equal(t, 119.0, p.AbsoluteMargin)
	assert.Equal(t, types.ProductTypePDF, p.ProductType)

	color, ok := p.Variants.Get("color")
	require.True(t, ok)
	assert.Equal(t, "red", color)
	_, ok = p.Variants.Get("part")
	assert.False(t, ok, "empty variant cell must be absent")
	_, ok = p.Variants.Get("print")
	assert.False(t, ok)
	colored, _ := p.Variants.Get("colored")
	assert.Equal(t, "true", colored)
	mono, ok := p.Variants.Get("monochrome")
	require.True(t, ok)
	assert.Equal(t, "0", mono)

	require.NotNil(t, p.Visibility.Variant)
	assert.Equal(t, "visible", *p.Visibility.Variant)
	require.NotNil(t, p.Visibility.Product, "empty visibility cell resolves to empty string")
	assert.Equal(t, "", *p.Visibility.Product)
}

func TestNormalize_MissingHeadersStayZero(t *testing.T) {
	p := Normalize(row("foo", "bar"), DefaultTable())

	assert.Equal(t, types.Product{ProductType: types.ProductTypeUnknown}, p)
}

func TestNormalize_CustomTable(t *testing.T) {
	table := Table{"Kód": {KindText, "code"}, "Cena": {KindNumber, "price"}}
	p := Normalize(row("Kód", "K/PDF", "Cena", "10,5", "code", "ignored"), table)

	assert.Equal(t, "K/PDF", p.Code)
	assert.Equal(t, 10.5, p.Price)
	assert.Equal(t, types.ProductTypePDF, p.ProductType)
}
