package render

import (
	"encoding/csv"
	"io"
)

// CSVRenderer writes one header row of column keys followed by raw values.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

func (r *CSVRenderer) Render(w io.Writer, v View, _ RenderOptions) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(keys(v.Columns)); err != nil {
		return err
	}
	rec := make([]string, len(v.Columns))
	for _, row := range v.Rows {
		for i, c := range v.Columns {
			rec[i] = rawString(c.Value(row))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
