package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/komsit37/margins/pkg/margins/types"
)

// jsonModel is the output shape for JSONRenderer.
type jsonModel struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	FileName  string                `json:"fileName"`
	CreatedAt time.Time             `json:"createdAt"`
	Columns   []string              `json:"columns"`
	Targets   []float64             `json:"targets"`
	Summary   types.AnalysisSummary `json:"summary"`
	Rows      []map[string]any      `json:"rows"`
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, v View, opts RenderOptions) error {
	rows := make([]map[string]any, 0, len(v.Rows))
	for _, row := range v.Rows {
		m := make(map[string]any, len(v.Columns))
		for _, c := range v.Columns {
			m[c.Key] = finite(c.Value(row))
		}
		rows = append(rows, m)
	}
	out := jsonModel{
		ID:        v.Analysis.ID,
		Name:      v.Analysis.Name,
		FileName:  v.Analysis.FileName,
		CreatedAt: v.Analysis.CreatedAt,
		Columns:   keys(v.Columns),
		Targets:   v.Targets,
		Summary:   v.Summary,
		Rows:      rows,
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
