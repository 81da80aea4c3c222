package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	productsSheet = "Products"
	summarySheet  = "Summary"
)

// XLSXRenderer writes a workbook with a product sheet and a summary sheet.
// Numeric columns are stored as numbers so the export can be recalculated.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (r *XLSXRenderer) Render(w io.Writer, v View, _ RenderOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), productsSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	hdr := make([]any, len(v.Columns))
	for i, c := range v.Columns {
		hdr[i] = c.Key
	}
	if err := f.SetSheetRow(productsSheet, "A1", &hdr); err != nil {
		return err
	}
	if len(v.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(v.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(productsSheet, "A1", last, bold); err != nil {
			return err
		}
	}

	for ri, row := range v.Rows {
		vals := make([]any, len(v.Columns))
		for i, c := range v.Columns {
			vals[i] = finite(c.Value(row))
		}
		axis, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(productsSheet, axis, &vals); err != nil {
			return err
		}
	}
	if err := f.SetPanes(productsSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	if err := writeSummarySheet(f, v, bold); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, v View, bold int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	s := v.Summary
	rows := [][]any{
		{"name", v.Analysis.Name},
		{"fileName", v.Analysis.FileName},
		{"createdAt", v.Analysis.CreatedAt.Format("2006-01-02 15:04:05")},
		{"totalProducts", s.TotalProducts},
		{"avgMargin", s.AvgMargin},
		{"lowMarginCount", s.LowMarginCount},
		{"mediumMarginCount", s.MediumMarginCount},
		{"highMarginCount", s.HighMarginCount},
	}
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, axis, &row); err != nil {
			return err
		}
	}
	return f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(rows)), bold)
}
