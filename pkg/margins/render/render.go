package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/komsit37/margins/pkg/margins/columns"
	"github.com/komsit37/margins/pkg/margins/enrich"
	"github.com/komsit37/margins/pkg/margins/types"
)

// Renderer renders an analysis view to an output writer.
type Renderer interface {
	Render(w io.Writer, v View, opts RenderOptions) error
}

// View is the filtered, projected slice of an analysis being rendered.
// Summary covers Rows only, not the whole analysis.
type View struct {
	Analysis types.MarginAnalysis
	Rows     []enrich.Row
	Columns  []columns.Column
	Summary  types.AnalysisSummary
	Targets  []float64
}

type RenderOptions struct {
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	// HideSummary suppresses the summary block of table and PDF output.
	HideSummary bool
}

// ForFormat returns the renderer registered for a format name.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return NewTableRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "csv":
		return NewCSVRenderer(), nil
	case "xlsx":
		return NewXLSXRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	case "codes":
		return NewCodesRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q; available: table, json, csv, xlsx, pdf, codes", format)
	}
}

// Binary reports whether a format writes non-text output.
func Binary(format string) bool {
	switch strings.ToLower(format) {
	case "xlsx", "pdf":
		return true
	}
	return false
}

func keys(cols []columns.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}

// rawString formats a raw column value for text outputs such as CSV.
func rawString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// finite replaces non-finite floats with nil so the value can be JSON encoded.
func finite(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}
