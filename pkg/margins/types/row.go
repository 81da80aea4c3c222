package types

import (
	"fmt"
	"strconv"
)

// CellKind tags the value held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellBool
)

func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	default:
		return "empty"
	}
}

// Cell is a single untyped spreadsheet value.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
}

func Empty() Cell           { return Cell{Kind: CellEmpty} }
func Text(s string) Cell    { return Cell{Kind: CellText, Text: s} }
func Number(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }
func Bool(b bool) Cell      { return Cell{Kind: CellBool, Bool: b} }

// IsEmpty reports whether the cell carries no value. Empty text counts as empty.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty || (c.Kind == CellText && c.Text == "") }

// String stringifies the cell the way a spreadsheet would display its raw value.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	default:
		return ""
	}
}

// GoString helps test failure output.
func (c Cell) GoString() string { return fmt.Sprintf("%s(%q)", c.Kind, c.String()) }

// Column is one header/value pair of a RawRow.
type Column struct {
	Header string
	Value  Cell
}

// RawRow is an ordered mapping from column header to cell value.
type RawRow []Column

// Get returns the value for header.
func (r RawRow) Get(header string) (Cell, bool) {
	for _, c := range r {
		if c.Header == header {
			return c.Value, true
		}
	}
	return Cell{}, false
}

// Headers returns the row's headers in order.
func (r RawRow) Headers() []string {
	out := make([]string, 0, len(r))
	for _, c := range r {
		out = append(out, c.Header)
	}
	return out
}
