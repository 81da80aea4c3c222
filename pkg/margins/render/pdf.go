package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/komsit37/margins/pkg/margins/columns"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 6.0
)

// PDFRenderer writes a landscape A4 report: title, summary and the product table.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) Render(w io.Writer, v View, opts RenderOptions) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	// core fonts are cp1252
	cp := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return cp(pdfSafe(s)) }
	pageW, pageH := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(v.Analysis.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	meta := v.Analysis.FileName
	if !v.Analysis.CreatedAt.IsZero() {
		meta += "  " + v.Analysis.CreatedAt.Format("2006-01-02 15:04")
	}
	pdf.CellFormat(0, 5, tr(meta), "", 1, "L", false, 0, "")

	if !opts.HideSummary {
		s := v.Summary
		pdf.Ln(2)
		pdf.CellFormat(0, 5, fmt.Sprintf("Products: %d   Avg margin: %s   Low: %d   Medium: %d   Good: %d",
			s.TotalProducts, columns.FormatPercent(s.AvgMargin),
			s.LowMarginCount, s.MediumMarginCount, s.HighMarginCount), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	widths := columnWidths(v.Columns, pageW-2*pdfMargin)
	header := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range v.Columns {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(c.Header), "1", 0, align(c), true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	header()

	for _, row := range v.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			header()
		}
		for i, c := range v.Columns {
			s := fit(pdf, tr(c.Text(row)), widths[i]-2)
			pdf.CellFormat(widths[i], pdfRowHeight, s, "1", 0, align(c), false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// pdfSafe spells out characters cp1252 cannot encode.
func pdfSafe(s string) string {
	return strings.ReplaceAll(s, "∞", "inf")
}

// columnWidths gives name columns three shares of the width and code columns two.
func columnWidths(cols []columns.Column, total float64) []float64 {
	shares := make([]float64, len(cols))
	var sum float64
	for i, c := range cols {
		switch c.Key {
		case "name":
			shares[i] = 3
		case "code", "pairCode", "variants", "visibility":
			shares[i] = 2
		default:
			shares[i] = 1
		}
		sum += shares[i]
	}
	out := make([]float64, len(cols))
	for i := range shares {
		out[i] = total * shares[i] / sum
	}
	return out
}

func align(c columns.Column) string {
	if c.Numeric {
		return "R"
	}
	return "L"
}

// fit truncates s with ".." until it is at most width wide.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"..") > width {
		b = b[:len(b)-1]
	}
	return string(b) + ".."
}
