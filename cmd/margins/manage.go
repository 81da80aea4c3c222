package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/komsit37/margins/pkg/margins/render"
	"github.com/komsit37/margins/pkg/margins/store"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analyses, err := a.store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(analyses) == 0 && !asJSON {
				fmt.Fprintln(a.out, "no analyses yet; run `margins import <file>`")
				return nil
			}
			return render.RenderList(a.out, analyses, asJSON, render.RenderOptions{
				Color:       a.cfg.Render.Color,
				PrettyJSON:  true,
				MaxColWidth: a.maxColWidth(9),
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a saved analysis",
		Args:  exactArgs(2, "an analysis id and a new name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[1])
			if name == "" {
				return fmt.Errorf("name must not be empty")
			}
			if err := a.store.Update(cmd.Context(), args[0], store.Patch{Name: &name}); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "renamed %s to %q\n", args[0], name)
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved analysis",
		Args:  exactArgs(1, "an analysis id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted %s\n", args[0])
			return nil
		},
	}
}
