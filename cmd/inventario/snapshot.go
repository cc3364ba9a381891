package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	appsnapshot "github.com/jhoicas/Inventario-snapshot/internal/application/snapshot"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/repository"
	"github.com/jhoicas/Inventario-snapshot/internal/infrastructure/csvfile"
	"github.com/jhoicas/Inventario-snapshot/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-snapshot/internal/infrastructure/shopify"
	"github.com/jhoicas/Inventario-snapshot/pkg/numfmt"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		date   string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Descarga el inventario de Shopify y escribe inventory_report_YYYY-MM-DD.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if date != "" {
				d, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return a.fail(fmt.Errorf("--date %q: se espera YYYY-MM-DD", date), "fecha inválida")
				}
				day = d
			}
			if outDir != "" {
				a.cfg.Report.Dir = outDir
			}
			return a.runSnapshot(cmd.Context(), day)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "fecha del snapshot YYYY-MM-DD (por defecto hoy)")
	cmd.Flags().StringVar(&outDir, "out", "", "directorio de salida del CSV (REPORT_DIR)")
	return cmd
}

func (a *app) runSnapshot(ctx context.Context, day time.Time) error {
	if err := a.cfg.Shopify.Validate(); err != nil {
		return a.fail(err, "configuración de Shopify incompleta")
	}

	var repo repository.SnapshotRepository
	if a.cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, a.cfg.DB)
		if err != nil {
			return a.fail(err, "conexión a PostgreSQL")
		}
		defer pool.Close()
		snapshotRepo := postgres.NewSnapshotRepository(pool)
		if err := snapshotRepo.EnsureSchema(ctx); err != nil {
			return a.fail(err, "crear esquema de snapshots")
		}
		repo = snapshotRepo
	}

	uc := appsnapshot.NewUseCase(
		shopify.NewClient(a.cfg.Shopify, a.log.Zerolog()),
		csvfile.NewWriter(),
		repo,
		appsnapshot.Options{
			PageSize:        a.cfg.Shopify.PageSize,
			LevelsBatchSize: a.cfg.Shopify.LevelsBatchSize,
			ReportDir:       a.cfg.Report.Dir,
			TopN:            a.cfg.Report.TopN,
		},
		a.log.Zerolog(),
	)

	summary, err := uc.Run(ctx, day)
	if err != nil {
		return a.fail(err, "error durante el snapshot")
	}
	printSnapshotSummary(os.Stdout, numfmt.NewPrinter(a.cfg.App.Locale), summary)
	return nil
}

// fail registra el error de nivel superior y lo devuelve para que main salga con código 1.
func (a *app) fail(err error, msg string) error {
	a.log.Error().Err(err).Msg(msg)
	return err
}
