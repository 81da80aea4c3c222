package columns

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats v with two decimals and comma thousand separators.
// +Inf renders as "∞" (an unattainable target price) and NaN as "".
func FormatMoney(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	return groupThousands(decimal.NewFromFloat(v).StringFixed(2))
}

// FormatPercent formats v like FormatMoney with a trailing "%".
func FormatPercent(v float64) string {
	s := FormatMoney(v)
	if s == "" {
		return ""
	}
	return s + "%"
}

// FormatSignedPercent is FormatPercent with an explicit "+" on positive values.
func FormatSignedPercent(v float64) string {
	s := FormatPercent(v)
	if v > 0 {
		return "+" + s
	}
	return s
}

// Round2 rounds v half away from zero to two decimals. Non-finite values pass through.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// groupThousands inserts comma separators into the integer part of a decimal string.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + fracPart
	}
	out := make([]byte, 0, n+n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	out = append(out, intPart[:rem]...)
	for i := rem; i < n; i += 3 {
		out = append(out, ',')
		out = append(out, intPart[i:i+3]...)
	}
	return sign + string(out) + fracPart
}
