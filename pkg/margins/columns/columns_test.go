package columns

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/margins/pkg/margins/enrich"
	"github.com/komsit37/margins/pkg/margins/types"
)

func str(s string) *string { return &s }

func row() enrich.Row {
	p := types.Product{
		Code: "X1/TISK", Name: "Widget", Price: 1234.5, PurchasePrice: 40,
		PercentVat: 21, IncludingVat: true, RelativeMargin: 55, ProductType: types.ProductTypePrint,
		Variants:   types.Variants{Color: str("red"), Size: str("A4")},
		Visibility: types.Visibility{Variant: str("visible"), Product: str("")},
	}
	return enrich.Project([]types.Product{p}, []float64{70, 99})[0]
}

func text(t *testing.T, key string, r enrich.Row) string {
	t.Helper()
	c, err := Lookup(key)
	require.NoError(t, err)
	return c.Text(r)
}

func TestStaticColumns(t *testing.T) {
	r := row()
	assert.Equal(t, "X1/TISK", text(t, "code", r))
	assert.Equal(t, "print", text(t, "type", r))
	assert.Equal(t, "1,234.50", text(t, "price", r))
	assert.Equal(t, "40.00", text(t, "purchasePrice", r))
	assert.Equal(t, "96.76%", text(t, "margin", r))
	assert.Equal(t, "55.00%", text(t, "relativeMargin", r))
	assert.Equal(t, "good", text(t, "health", r))
	assert.Equal(t, "21.00% incl.", text(t, "vat", r))
	assert.Equal(t, "color=red size=A4", text(t, "variants", r))
	assert.Equal(t, "variant=visible", text(t, "visibility", r))

	c, err := Lookup("price")
	require.NoError(t, err)
	assert.True(t, c.Numeric)
	assert.Equal(t, 1234.5, c.Value(r))

	c, err = Lookup("name")
	require.NoError(t, err)
	assert.Equal(t, "Widget", c.Value(r))
}

func TestTargetColumns(t *testing.T) {
	r := row()
	assert.Equal(t, "133.33", text(t, "t70", r))
	assert.Equal(t, "4,000.00", text(t, "t99", r))
	assert.Equal(t, "-89.20%", text(t, "t70%", r))
	assert.Equal(t, "", text(t, "t75", r), "target not projected")

	c, err := Lookup("t70")
	require.NoError(t, err)
	assert.Equal(t, "@70%", c.Header)
	assert.InDelta(t, 133.333, c.Value(r).(float64), 0.001)

	c, err = Lookup("t72.5%")
	require.NoError(t, err)
	assert.Equal(t, "@72.5% CHG", c.Header)
}

func TestLookup_Unknown(t *testing.T) {
	for _, key := range []string{"bogus", "t", "t100", "t-1", "tx", "tNaN"} {
		_, err := Lookup(key)
		var uce *UnknownColumnError
		require.True(t, errors.As(err, &uce), key)
		assert.Equal(t, key, uce.Key)
		assert.Contains(t, uce.Available, "code")
	}
}

func TestTargetKeyAndOf(t *testing.T) {
	assert.Equal(t, "t70", TargetKey(70))
	assert.Equal(t, "t72.5", TargetKey(72.5))

	v, ok := TargetOf("t75%")
	assert.True(t, ok)
	assert.Equal(t, 75.0, v)
	_, ok = TargetOf("type")
	assert.False(t, ok)
}

func TestCompute(t *testing.T) {
	assert.Equal(t, []string{"name", "code"}, Compute([]string{"name", " code", "name", ""}, []float64{70}))

	got := Compute(nil, []float64{70, 75})
	assert.Equal(t, append(append([]string{}, Sets["default"]...), "t70", "t70%", "t75", "t75%"), got)
	assert.Equal(t, Sets["default"], Compute(nil, nil))
}

func TestResolve(t *testing.T) {
	cols, err := Resolve([]string{"code", "t70"})
	require.NoError(t, err)
	assert.Len(t, cols, 2)

	_, err = Resolve([]string{"code", "nope"})
	assert.Error(t, err)
}

func TestExpandSets(t *testing.T) {
	got, err := ExpandSets([]string{"export", "prices", " "})
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "name", "purchasePrice", "price", "relativeMargin", "absoluteMargin", "standardPrice", "vat"}, got)

	_, err = ExpandSets([]string{"nope"})
	var use *UnknownSetError
	require.True(t, errors.As(err, &use))
	assert.Equal(t, []string{"attributes", "default", "export", "prices"}, use.Available)
}

func TestEverySetColumnResolves(t *testing.T) {
	for name, cols := range Sets {
		_, err := Resolve(cols)
		assert.NoError(t, err, name)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in      float64
		money   string
		percent string
		signed  string
	}{
		{0, "0.00", "0.00%", "0.00%"},
		{12.345, "12.35", "12.35%", "+12.35%"},
		{-1234567.891, "-1,234,567.89", "-1,234,567.89%", "-1,234,567.89%"},
		{999.999, "1,000.00", "1,000.00%", "+1,000.00%"},
		{math.Inf(1), "∞", "∞%", "+∞%"},
		{math.NaN(), "", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.money, FormatMoney(tt.in), "%v", tt.in)
		assert.Equal(t, tt.percent, FormatPercent(tt.in), "%v", tt.in)
		assert.Equal(t, tt.signed, FormatSignedPercent(tt.in), "%v", tt.in)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 133.33, Round2(400.0/3))
	assert.Equal(t, -2.35, Round2(-2.345))
	assert.True(t, math.IsInf(Round2(math.Inf(1)), 1))
}

func TestDescribe(t *testing.T) {
	d := Describe()
	assert.Len(t, d, len(Registry))
	assert.Contains(t, d, "code (CODE)")
}
