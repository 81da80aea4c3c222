package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/margins/pkg/margins/columns"
	"github.com/komsit37/margins/pkg/margins/types"
)

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, v View, opts RenderOptions) error {
	if name := strings.TrimSpace(v.Analysis.Name); name != "" {
		fmt.Fprintln(w, text.Bold.Sprint(strings.ToUpper(name)))
	}

	tw := newWriter(w)

	hdr := make(table.Row, len(v.Columns))
	for i, c := range v.Columns {
		hdr[i] = c.Header
	}
	tw.AppendHeader(hdr)

	// wrap text to MaxColWidth (default 40), no truncation
	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(v.Columns))
	for i, c := range v.Columns {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		if c.Numeric {
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	if len(cfgs) > 0 {
		tw.SetColumnConfigs(cfgs)
	}

	for _, row := range v.Rows {
		out := make(table.Row, len(v.Columns))
		for i, c := range v.Columns {
			val := c.Text(row)
			if opts.Color && (c.Key == "margin" || c.Key == "health") {
				val = healthColors(row.Health).Sprint(val)
			}
			out[i] = val
		}
		tw.AppendRow(out)
	}
	tw.Render()

	if opts.HideSummary {
		return nil
	}
	fmt.Fprintln(w)
	return renderSummary(w, v.Summary, opts.Color)
}

func renderSummary(w io.Writer, s types.AnalysisSummary, color bool) error {
	tw := newWriter(w)
	tw.AppendHeader(table.Row{"PRODUCTS", "AVG MARGIN", "LOW", "MEDIUM", "GOOD"})
	row := table.Row{
		s.TotalProducts,
		columns.FormatPercent(s.AvgMargin),
		s.LowMarginCount,
		s.MediumMarginCount,
		s.HighMarginCount,
	}
	if color {
		row[2] = healthColors(types.HealthLow).Sprint(row[2])
		row[3] = healthColors(types.HealthMedium).Sprint(row[3])
		row[4] = healthColors(types.HealthGood).Sprint(row[4])
	}
	tw.AppendRow(row)
	tw.Render()
	return nil
}

func newWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	return tw
}

func healthColors(h types.Health) text.Colors {
	switch h {
	case types.HealthGood:
		return text.Colors{text.FgGreen}
	case types.HealthMedium:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed}
	}
}
