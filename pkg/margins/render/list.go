package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/margins/pkg/margins/columns"
	"github.com/komsit37/margins/pkg/margins/margin"
	"github.com/komsit37/margins/pkg/margins/types"
)

// listEntry is an analysis without its products.
type listEntry struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	FileName  string                `json:"fileName"`
	CreatedAt time.Time             `json:"createdAt"`
	Summary   types.AnalysisSummary `json:"summary"`
}

// RenderList writes saved analyses as a table, or as JSON when asJSON is set.
func RenderList(w io.Writer, analyses []types.MarginAnalysis, asJSON bool, opts RenderOptions) error {
	if asJSON {
		out := make([]listEntry, 0, len(analyses))
		for _, a := range analyses {
			out = append(out, listEntry{
				ID: a.ID, Name: a.Name, FileName: a.FileName,
				CreatedAt: a.CreatedAt, Summary: a.Summary,
			})
		}
		enc := json.NewEncoder(w)
		if opts.PrettyJSON {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(out)
	}

	tw := newWriter(w)
	tw.AppendHeader(table.Row{"ID", "NAME", "FILE", "CREATED", "PRODUCTS", "AVG MARGIN", "LOW", "MEDIUM", "GOOD"})
	right := []int{5, 6, 7, 8, 9}
	cfgs := make([]table.ColumnConfig, 0, len(right)+1)
	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs = append(cfgs, table.ColumnConfig{Number: 2, WidthMax: maxWidth})
	for _, n := range right {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tw.SetColumnConfigs(cfgs)

	for _, a := range analyses {
		avg := columns.FormatPercent(a.Summary.AvgMargin)
		if opts.Color {
			avg = healthColors(margin.HealthOf(a.Summary.AvgMargin)).Sprint(avg)
		}
		tw.AppendRow(table.Row{
			a.ID, a.Name, a.FileName, a.CreatedAt.Local().Format("2006-01-02 15:04"),
			a.Summary.TotalProducts, avg,
			a.Summary.LowMarginCount, a.Summary.MediumMarginCount, a.Summary.HighMarginCount,
		})
	}
	tw.Render()
	return nil
}
