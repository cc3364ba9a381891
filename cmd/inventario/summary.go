package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"golang.org/x/text/message"

	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	appsnapshot "github.com/jhoicas/Inventario-snapshot/internal/application/snapshot"
	"github.com/jhoicas/Inventario-snapshot/pkg/numfmt"
)

const titleWidth = 40

// todayReportPath ruta del snapshot de hoy, comparada por defecto contra COMPARE_YESTERDAY.
func todayReportPath(dir string) string {
	return filepath.Join(dir, appsnapshot.ReportFileName(time.Now()))
}

func printSnapshotSummary(w io.Writer, p *message.Printer, s *dto.SnapshotSummary) {
	p.Fprintf(w, "Reporte guardado: %s\n", s.Path)
	p.Fprintf(w, "Productos: %d\n", s.Products)
	p.Fprintf(w, "Total de items: %d\n", s.Items)
	p.Fprintf(w, "Con stock: %d\n", s.InStock)
	p.Fprintf(w, "Sin stock: %d\n", s.OutOfStock)
	if s.FailedBatches > 0 {
		p.Fprintf(w, "Lotes de niveles omitidos: %d\n", s.FailedBatches)
	}
	if s.Persisted {
		fmt.Fprintln(w, "Snapshot guardado en PostgreSQL")
	}
	fmt.Fprintln(w, "Ordenado por stock: de mayor a menor")

	if len(s.Top) == 0 {
		return
	}
	p.Fprintf(w, "\nTop %d items con más stock:\n", len(s.Top))
	for _, r := range s.Top {
		fmt.Fprintf(w, "   %s | %-10s | Stock: %3s\n", padTitle(r.ProductTitle), r.VariantTitle, numfmt.Quantity(p, r.Available))
	}
}

func printCompareSummary(w io.Writer, p *message.Printer, s *dto.CompareSummary, topN int) {
	fmt.Fprintf(w, "Reporte guardado: %s\n", s.Path)
	if s.PDFPath != "" {
		fmt.Fprintf(w, "PDF guardado: %s\n", s.PDFPath)
	}
	p.Fprintf(w, "Items con disminución de inventario: %d\n", s.Stats.Decreased)
	fmt.Fprintf(w, "Disminución total: %s unidades\n", numfmt.Quantity(p, s.Stats.TotalDecrease))
	if n := len(s.Stats.DuplicateKeys); n > 0 {
		p.Fprintf(w, "Claves Producto - Variante repetidas: %d\n", n)
	}

	rows := s.Rows
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	if len(rows) == 0 {
		return
	}
	p.Fprintf(w, "\nTop %d mayores disminuciones:\n", len(rows))
	for _, r := range rows {
		fmt.Fprintf(w, "   %s | %-10s | -%3s\n", padTitle(r.ProductTitle), r.VariantTitle, numfmt.Quantity(p, r.DecreaseAmount))
	}
}

// padTitle corta a titleWidth runas y rellena a la derecha.
func padTitle(s string) string {
	r := []rune(s)
	if len(r) > titleWidth {
		r = r[:titleWidth]
	}
	return fmt.Sprintf("%-*s", titleWidth, string(r))
}
