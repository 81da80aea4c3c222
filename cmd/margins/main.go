package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/margins/pkg/margins/config"
	"github.com/komsit37/margins/pkg/margins/logging"
	"github.com/komsit37/margins/pkg/margins/store"
)

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  store.Store
	out    io.Writer
	closer io.Closer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	v := viper.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "margins",
		Short:        "Analyze product margins from spreadsheet exports",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			logger, closer, err := logging.New(cfg.LogOptions())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			a.closer = closer
			a.store = store.NewFileStore(cfg.Store.Path, cfg.Store.MaxBytes, logger)
			logger.Debug("config loaded", "store", cfg.Store.Path, "config", v.ConfigFileUsed())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}
	rootCmd.SetOut(out)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./margins.yaml or ~/.config/margins/margins.yaml)")
	pf.String("store", "", "path of the analyses file")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	_ = v.BindPFlag("store.path", pf.Lookup("store"))
	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))

	rootCmd.AddCommand(
		newImportCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newRenameCmd(a),
		newDeleteCmd(a),
		newClassifyCmd(),
		newCalcCmd(a),
	)
	return rootCmd
}

// maxColWidth returns the configured column width, or one derived from the
// terminal width when the setting is 0.
func (a *app) maxColWidth(ncols int) int {
	if a.cfg.Render.MaxColWidth > 0 {
		return a.cfg.Render.MaxColWidth
	}
	w := detectTerminalWidth()
	if w <= 0 || ncols <= 0 {
		return 40
	}
	return max(w/ncols, 8)
}

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("requires %s", what)
		}
		return nil
	}
}
