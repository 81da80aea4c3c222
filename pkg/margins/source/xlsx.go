package source

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/komsit37/margins/pkg/margins/types"
)

// XLSXDecoder reads the first sheet of an Excel workbook. The first non-blank row
// holds the headers.
type XLSXDecoder struct{}

func (XLSXDecoder) Decode(ctx context.Context, r io.Reader) ([]types.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, decodeErr("read workbook", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, decodeErr("open workbook", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil
	}
	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, decodeErr("read rows", err)
	}

	start := 0
	for start < len(records) && isBlank(records[start]) {
		start++
	}
	if start >= len(records) {
		return nil, nil
	}
	headers := headerNames(records[start])
	dataStart := start + 1

	return buildRows(ctx, headers, records[dataStart:], func(ri, ci int, v string) types.Cell {
		axis, err := excelize.CoordinatesToCellName(ci+1, dataStart+ri+1)
		if err != nil {
			return types.Text(v)
		}
		typ, err := f.GetCellType(sheet, axis)
		if err != nil {
			return types.Text(v)
		}
		return xlsxCell(typ, v)
	})
}

func xlsxCell(typ excelize.CellType, v string) types.Cell {
	switch typ {
	case excelize.CellTypeBool:
		return types.Bool(v == "1" || v == "TRUE" || v == "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return types.Number(f)
		}
	}
	return types.Text(v)
}
