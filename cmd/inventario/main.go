package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-snapshot/pkg/config"
	"github.com/jhoicas/Inventario-snapshot/pkg/logger"
)

// app estado compartido por los subcomandos, cargado en PersistentPreRunE.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "inventario",
		Short:         "Snapshots diarios de inventario de Shopify y reporte de disminuciones",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{
				Env:   cfg.App.Env,
				Level: cfg.App.LogLevel,
			})
			a.log.Debug().
				Str("env", cfg.App.Env).
				Str("app", cfg.App.Name).
				Str("command", cmd.Name()).
				Msg("configuración cargada")
			return nil
		},
	}

	root.AddCommand(
		newSnapshotCmd(a),
		newCompareCmd(a),
		newServeCmd(a),
		newTokenCmd(a),
	)
	return root
}
