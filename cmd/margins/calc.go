package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/komsit37/margins/pkg/margins/classify"
	"github.com/komsit37/margins/pkg/margins/columns"
	"github.com/komsit37/margins/pkg/margins/enrich"
	"github.com/komsit37/margins/pkg/margins/mapper"
	"github.com/komsit37/margins/pkg/margins/margin"
	"github.com/komsit37/margins/pkg/margins/types"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <code> [name]",
		Short: "Print the product type (print, pdf or unknown) for a code and name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 1 {
				name = args[1]
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), classify.Detect(args[0], name))
			return err
		},
	}
}

func newCalcCmd(a *app) *cobra.Command {
	var (
		cost, price string
		targets     []float64
	)
	cmd := &cobra.Command{
		Use:   "calc --cost <cost> [--price <price>] [--targets 70,75]",
		Short: "Compute the margin of a price and the prices needed for target margins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(targets) == 0 {
				targets = a.cfg.Targets
			}
			if err := enrich.ValidateTargets(targets); err != nil {
				return err
			}
			// accept decimal commas, as in imported files
			p := types.Product{
				PurchasePrice: mapper.CoerceNumber(types.Text(cost)),
				Price:         mapper.CoerceNumber(types.Text(price)),
			}
			m := margin.Effective(p)
			h := margin.HealthOf(m)
			line := fmt.Sprintf("cost %s  price %s  margin %s (%s)",
				columns.FormatMoney(p.PurchasePrice), columns.FormatMoney(p.Price), columns.FormatPercent(m), h)
			if a.cfg.Render.Color {
				line = text.Bold.Sprint(line)
			}
			fmt.Fprintln(a.out, line)

			tw := table.NewWriter()
			tw.SetOutputMirror(a.out)
			tw.SetStyle(table.StyleColoredDark)
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.AppendHeader(table.Row{"TARGET", "NEW PRICE", "CHANGE", "CHANGE %"})
			tw.SetColumnConfigs([]table.ColumnConfig{
				{Number: 1, Align: text.AlignRight}, {Number: 2, Align: text.AlignRight},
				{Number: 3, Align: text.AlignRight}, {Number: 4, Align: text.AlignRight},
			})
			for _, t := range targets {
				c := margin.ForTarget(p, t)
				tw.AppendRow(table.Row{
					columns.FormatPercent(c.TargetPercentage),
					columns.FormatMoney(c.NewPrice),
					columns.FormatMoney(c.PriceChange),
					columns.FormatSignedPercent(c.PriceChangePercent),
				})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&cost, "cost", "", "purchase price")
	cmd.Flags().StringVar(&price, "price", "0", "current selling price")
	cmd.Flags().Float64SliceVar(&targets, "targets", nil, "target margins in percent, 0-99 (default from config)")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}
