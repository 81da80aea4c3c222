package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/komsit37/margins/pkg/margins/columns"
	"github.com/komsit37/margins/pkg/margins/pipeline"
)

func newImportCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an .xlsx, .csv, .yaml or .json product export as a new analysis",
		Args:  exactArgs(1, "exactly 1 file argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}

			im := pipeline.NewImporter(a.store, a.cfg.ImportLimits(), a.logger)
			an, err := im.Import(cmd.Context(), pipeline.Request{
				FileName: filepath.Base(path),
				Name:     name,
				Data:     f,
				Size:     info.Size(),
			})
			if err != nil {
				return err
			}
			s := an.Summary
			fmt.Fprintf(a.out, "imported %q as %s: %d products, avg margin %s (low %d, medium %d, good %d)\n",
				an.Name, an.ID, s.TotalProducts, columns.FormatPercent(s.AvgMargin),
				s.LowMarginCount, s.MediumMarginCount, s.HighMarginCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "analysis name (default: file name without extension)")
	return cmd
}
