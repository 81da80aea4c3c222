package pipeline

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/komsit37/margins/pkg/margins/columns"
	"github.com/komsit37/margins/pkg/margins/enrich"
	"github.com/komsit37/margins/pkg/margins/filter"
	"github.com/komsit37/margins/pkg/margins/margin"
	"github.com/komsit37/margins/pkg/margins/render"
	"github.com/komsit37/margins/pkg/margins/store"
	"github.com/komsit37/margins/pkg/margins/types"
)

type Runner struct {
	Store    store.Store
	Renderer render.Renderer
	Writer   io.Writer
}

type ExecuteOptions struct {
	Filter filter.Filter
	// Sort defaults to margin ascending.
	Sort filter.Field
	Desc bool
	// Select keeps only these codes when non-empty; applied after Filter.
	Select  []string
	Targets []float64
	Columns []string

	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	HideSummary bool
}

// Execute loads an analysis, narrows and orders its products, then renders them.
// The rendered summary covers the narrowed products only.
func (r *Runner) Execute(ctx context.Context, id string, opts ExecuteOptions) error {
	a, err := r.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	v, err := BuildView(*a, opts)
	if err != nil {
		return err
	}
	return r.Renderer.Render(r.Writer, v, render.RenderOptions{
		Color:       opts.Color,
		PrettyJSON:  opts.PrettyJSON,
		MaxColWidth: opts.MaxColWidth,
		HideSummary: opts.HideSummary,
	})
}

// BuildView applies opts to an analysis without rendering it.
func BuildView(a types.MarginAnalysis, opts ExecuteOptions) (render.View, error) {
	if err := enrich.ValidateTargets(opts.Targets); err != nil {
		return render.View{}, err
	}
	cols, err := columns.Resolve(columns.Compute(opts.Columns, opts.Targets))
	if err != nil {
		return render.View{}, err
	}

	products := filter.Apply(a.Products, opts.Filter)
	products = Select(products, opts.Select)
	field := opts.Sort
	if field == "" {
		field = filter.FieldMargin
	}
	filter.Sort(products, field, opts.Desc)

	targets := withColumnTargets(opts.Targets, cols)
	meta := a
	meta.Products = nil
	return render.View{
		Analysis: meta,
		Rows:     enrich.Project(products, targets),
		Columns:  cols,
		Summary:  margin.Summarize(products),
		Targets:  targets,
	}, nil
}

// withColumnTargets appends the targets referenced by tNN columns that are not
// already in targets, so every requested target column has a projection.
func withColumnTargets(targets []float64, cols []columns.Column) []float64 {
	out := append([]float64(nil), targets...)
	for _, c := range cols {
		t, ok := columns.TargetOf(c.Key)
		if ok && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// Select keeps products whose code is in codes. No codes keeps everything.
func Select(products []types.Product, codes []string) []types.Product {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			set[c] = struct{}{}
		}
	}
	if len(set) == 0 {
		return products
	}
	out := make([]types.Product, 0, len(set))
	for _, p := range products {
		if _, ok := set[p.Code]; ok {
			out = append(out, p)
		}
	}
	return out
}
