package mapper

import (
	"math"
	"strconv"
	"strings"

	"github.com/komsit37/margins/pkg/margins/types"
)

// CoerceNumber converts a cell to a finite float. Text is parsed leniently after the
// first decimal comma is turned into a point; anything unparsable becomes 0.
func CoerceNumber(c types.Cell) float64 {
	switch c.Kind {
	case types.CellEmpty:
		return 0
	case types.CellNumber:
		return finite(c.Number)
	}
	s := strings.Replace(c.String(), ",", ".", 1)
	return finite(parseLeadingFloat(s))
}

// CoerceBool is true only for boolean true, "true", 1 or "1".
func CoerceBool(c types.Cell) bool {
	switch c.Kind {
	case types.CellBool:
		return c.Bool
	case types.CellNumber:
		return c.Number == 1
	case types.CellText:
		return c.Text == "true" || c.Text == "1"
	}
	return false
}

// CoerceText stringifies a cell; empty cells become "".
func CoerceText(c types.Cell) string {
	return c.String()
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseLeadingFloat parses the longest decimal float prefix of s, ignoring leading
// whitespace. It returns NaN when s has no numeric prefix.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n\v\f ")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i
	// exponent only counts when followed by at least one digit
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			end = j
		}
	}
	// out of range values come back as ±Inf alongside the error
	f, _ := strconv.ParseFloat(s[:end], 64)
	return f
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
