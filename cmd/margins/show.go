package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/komsit37/margins/pkg/margins/columns"
	"github.com/komsit37/margins/pkg/margins/enrich"
	"github.com/komsit37/margins/pkg/margins/filter"
	"github.com/komsit37/margins/pkg/margins/pipeline"
	"github.com/komsit37/margins/pkg/margins/render"
	"github.com/komsit37/margins/pkg/margins/types"
)

// viewFlags are the filter, sort and column flags shared by show and export.
type viewFlags struct {
	search     string
	variants   []string
	visibility []string
	typ        string
	sort       string
	desc       bool
	targets    []float64
	columns    []string
	sets       []string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.search, "search", "s", "", "search code or name: substring, glob (X*), exact list (a,b) or /regex/")
	fl.StringArrayVar(&f.variants, "variant", nil, "variant filter key:value, repeatable, OR'ed (keys: "+strings.Join(types.VariantKeys, ", ")+")")
	fl.StringArrayVar(&f.visibility, "visibility", nil, "visibility filter key:value, repeatable, OR'ed (keys: variant, product)")
	fl.StringVar(&f.typ, "type", "", "product type: print, pdf or unknown")
	fl.StringVar(&f.sort, "sort", "margin", "sort by code, name, purchasePrice, price or margin")
	fl.BoolVar(&f.desc, "desc", false, "sort descending")
	fl.Float64SliceVar(&f.targets, "targets", nil, "target margins in percent, 0-99 (default from config)")
	fl.StringSliceVarP(&f.columns, "columns", "c", nil, "columns to show; tNN is the price for an NN% margin, tNN% its change")
	fl.StringSliceVar(&f.sets, "set", nil, "column sets: default, export, prices, attributes")
}

// options builds pipeline options from the flags. defaultCols is used when neither
// --columns nor --set is given.
func (f *viewFlags) options(a *app, defaultCols []string) (pipeline.ExecuteOptions, error) {
	var opts pipeline.ExecuteOptions

	search, err := filter.Parse(f.search)
	if err != nil {
		return opts, err
	}
	variant, err := chipFilter(f.variants, filter.Variant)
	if err != nil {
		return opts, err
	}
	visibility, err := chipFilter(f.visibility, filter.Visibility)
	if err != nil {
		return opts, err
	}
	typ, err := filter.OfType(types.ProductType(strings.ToLower(f.typ)))
	if err != nil {
		return opts, err
	}
	field, err := filter.ParseField(f.sort)
	if err != nil {
		return opts, err
	}

	targets := f.targets
	if len(targets) == 0 {
		targets = a.cfg.Targets
	}
	if err := enrich.ValidateTargets(targets); err != nil {
		return opts, err
	}

	cols := f.columns
	if len(f.sets) > 0 {
		expanded, err := columns.ExpandSets(f.sets)
		if err != nil {
			return opts, err
		}
		cols = append(append([]string{}, cols...), expanded...)
	}
	if len(cols) == 0 {
		cols = defaultCols
	}

	opts = pipeline.ExecuteOptions{
		Filter:      filter.All(search, variant, visibility, typ),
		Sort:        field,
		Desc:        f.desc,
		Targets:     targets,
		Columns:     cols,
		Color:       a.cfg.Render.Color,
		PrettyJSON:  true,
		MaxColWidth: a.maxColWidth(len(columns.Compute(cols, targets))),
	}
	return opts, nil
}

func chipFilter(raw []string, build func([]filter.Chip) (filter.Filter, error)) (filter.Filter, error) {
	chips := make([]filter.Chip, 0, len(raw))
	for _, r := range raw {
		c, err := filter.ParseChip(r)
		if err != nil {
			return nil, err
		}
		chips = append(chips, c)
	}
	return build(chips)
}

func newShowCmd(a *app) *cobra.Command {
	var (
		vf          viewFlags
		format      string
		noSummary   bool
		showOptions bool
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the products of an analysis with margins and target prices",
		Args:  exactArgs(1, "an analysis id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showOptions {
				an, err := a.store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printOptions(a.out, filter.Options(an.Products))
			}
			switch strings.ToLower(format) {
			case "table", "json", "codes":
			default:
				return fmt.Errorf("unknown format %q; available: table, json, codes", format)
			}
			r, err := render.ForFormat(format)
			if err != nil {
				return err
			}
			opts, err := vf.options(a, nil)
			if err != nil {
				return err
			}
			opts.HideSummary = noSummary
			runner := pipeline.Runner{Store: a.store, Renderer: r, Writer: a.out}
			return runner.Execute(cmd.Context(), args[0], opts)
		},
	}
	vf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or codes")
	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "omit the summary block")
	cmd.Flags().BoolVar(&showOptions, "options", false, "list the filter values present in the analysis and exit")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		vf     viewFlags
		format string
		sel    []string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export filtered or selected products to csv, xlsx, pdf or json",
		Args:  exactArgs(1, "an analysis id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case "csv", "xlsx", "pdf", "json":
			default:
				return fmt.Errorf("unknown format %q; available: csv, xlsx, pdf, json", format)
			}
			r, err := render.ForFormat(format)
			if err != nil {
				return err
			}
			var defaultCols []string
			if format == "csv" {
				defaultCols = columns.Sets["export"]
			}
			opts, err := vf.options(a, defaultCols)
			if err != nil {
				return err
			}
			opts.Select = sel
			opts.Color = false

			an, err := a.store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v, err := pipeline.BuildView(*an, opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.NewReplacer("/", "_", `\`, "_").Replace(an.Name) + "-export." + format
			}
			var w io.Writer = a.out
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			} else if render.Binary(format) {
				return fmt.Errorf("%s output cannot be written to stdout; use -o <file>", format)
			}
			if err := r.Render(w, v, render.RenderOptions{PrettyJSON: true}); err != nil {
				return err
			}
			if output != "-" {
				a.logger.Info("exported", "id", an.ID, "format", format, "rows", len(v.Rows), "file", output)
				fmt.Fprintf(a.out, "exported %d products to %s\n", len(v.Rows), output)
			}
			return nil
		},
	}
	vf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format: csv, xlsx, pdf or json")
	cmd.Flags().StringSliceVar(&sel, "select", nil, "export only these product codes (after filtering)")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default "<name>-export.<format>")`)
	return cmd
}

func printOptions(w io.Writer, opts filter.Available) error {
	writeGroup := func(group string, m map[string][]string) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s %s: %s\n", group, k, strings.Join(m[k], ", "))
		}
	}
	writeGroup("variant", opts.Variants)
	writeGroup("visibility", opts.Visibility)
	typeNames := make([]string, len(opts.Types))
	for i, t := range opts.Types {
		typeNames[i] = string(t)
	}
	_, err := fmt.Fprintf(w, "type: %s\n", strings.Join(typeNames, ", "))
	return err
}
