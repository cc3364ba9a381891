package main

import (
	"os"

	"github.com/spf13/cobra"

	appcompare "github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	"github.com/jhoicas/Inventario-snapshot/internal/infrastructure/csvfile"
	infrapdf "github.com/jhoicas/Inventario-snapshot/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-snapshot/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-snapshot/pkg/numfmt"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		yesterday, today, out, pdfPath string
		strict                         bool
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compara dos snapshots y escribe inventory_decrease_report.csv",
		Long: `Compara el snapshot anterior con el actual por "Producto - Variante" y lista
las variantes cuyo stock disminuyó, de mayor a menor disminución.

Cada snapshot es una ruta CSV o pg:YYYY-MM-DD para leerlo de PostgreSQL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := a.cfg.Compare
			if cmd.Flags().Changed("yesterday") {
				cc.Yesterday = yesterday
			}
			if cmd.Flags().Changed("today") {
				cc.Today = today
			}
			if cmd.Flags().Changed("out") {
				cc.Output = out
			}
			if cmd.Flags().Changed("pdf") {
				cc.PDFPath = pdfPath
			}
			if cmd.Flags().Changed("strict") {
				cc.StrictKeys = strict
			}
			if cc.Today == "" {
				cc.Today = todayReportPath(a.cfg.Report.Dir)
			}

			ctx := cmd.Context()
			router := appcompare.SourceRouter{Files: csvfile.NewSnapshotReader()}
			if a.cfg.DB.Enabled() {
				pool, err := postgres.NewPool(ctx, a.cfg.DB)
				if err != nil {
					return a.fail(err, "conexión a PostgreSQL")
				}
				defer pool.Close()
				router.DB = postgres.SnapshotSource{Repo: postgres.NewSnapshotRepository(pool)}
			}

			uc := appcompare.NewUseCase(router, csvfile.NewWriter(), infrapdf.NewMarotoReportGenerator(a.cfg.App.Locale),
				appcompare.Options{StrictKeys: cc.StrictKeys}, a.log.Zerolog())

			summary, err := uc.Run(ctx, dto.CompareRequest{
				Yesterday:  cc.Yesterday,
				Today:      cc.Today,
				OutputPath: cc.Output,
				PDFPath:    cc.PDFPath,
			})
			if err != nil {
				return a.fail(err, "error en la comparación")
			}
			printCompareSummary(os.Stdout, numfmt.NewPrinter(a.cfg.App.Locale), summary, a.cfg.Report.TopN)
			return nil
		},
	}
	cmd.Flags().StringVar(&yesterday, "yesterday", "", "snapshot anterior: CSV o pg:YYYY-MM-DD (COMPARE_YESTERDAY)")
	cmd.Flags().StringVar(&today, "today", "", "snapshot actual: CSV o pg:YYYY-MM-DD (por defecto el reporte de hoy)")
	cmd.Flags().StringVar(&out, "out", "", "CSV de salida (COMPARE_OUTPUT)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "genera además el reporte en PDF (COMPARE_PDF_PATH)")
	cmd.Flags().BoolVar(&strict, "strict", false, "falla si hay claves Producto - Variante duplicadas")
	return cmd
}
