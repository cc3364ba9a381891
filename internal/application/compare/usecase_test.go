package compare_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

func row(product, variant, sku string, qty int64) entity.SnapshotRow {
	return entity.SnapshotRow{
		ProductTitle: product,
		VariantTitle: variant,
		SKU:          sku,
		Available:    decimal.NewNullDecimal(decimal.NewFromInt(qty)),
	}
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ── Compare ───────────────────────────────────────────────────────────────────

func TestCompare_EjemploWidgetRed(t *testing.T) {
	yesterday := []entity.SnapshotRow{row("Widget", "Red", "W-R", 10)}
	today := []entity.SnapshotRow{row("Widget", "Red", "", 4)}

	rows, stats, err := compare.Compare(yesterday, today, false)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Widget", rows[0].ProductTitle)
	assert.Equal(t, "Red", rows[0].VariantTitle)
	assert.Equal(t, "W-R", rows[0].SKU, "el SKU sale del snapshot anterior")
	assert.True(t, rows[0].YesterdayStock.Equal(dec(10)))
	assert.True(t, rows[0].TodayStock.Equal(dec(4)))
	assert.True(t, rows[0].DecreaseAmount.Equal(dec(6)))
	assert.True(t, stats.TotalDecrease.Equal(dec(6)))
}

func TestCompare_SinCambioNoApareceNiAumentos(t *testing.T) {
	yesterday := []entity.SnapshotRow{
		row("Widget", "Red", "W-R", 5),
		row("Widget", "Blue", "W-B", 2),
	}
	today := []entity.SnapshotRow{
		row("Widget", "Red", "W-R", 5),
		row("Widget", "Blue", "W-B", 9),
	}

	rows, stats, err := compare.Compare(yesterday, today, false)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 2, stats.Joined)
	assert.True(t, stats.TotalDecrease.IsZero())
}

func TestCompare_SoloCruceInternoYOrdenDescendente(t *testing.T) {
	yesterday := []entity.SnapshotRow{
		row("A", "", "a", 3),
		row("B", "M", "b", 20),
		row("C", "L", "c", 8),
		row("Solo ayer", "X", "x", 100),
	}
	today := []entity.SnapshotRow{
		row("A", entity.DefaultVariantTitle, "a", 1),
		row("B", "M", "b", 5),
		row("C", "L", "c", 0),
		row("Solo hoy", "X", "x", 0),
	}

	rows, stats, err := compare.Compare(yesterday, today, false)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Joined, "la variante vacía empareja con Default Title")
	require.Len(t, rows, 3)
	assert.LessOrEqual(t, len(rows), stats.Joined)
	assert.True(t, rows[0].DecreaseAmount.Equal(dec(15)))
	assert.True(t, rows[1].DecreaseAmount.Equal(dec(8)))
	assert.True(t, rows[2].DecreaseAmount.Equal(dec(2)))
	for _, r := range rows {
		assert.True(t, r.DecreaseAmount.IsPositive())
	}
}

func TestCompare_ClavesDuplicadasMultiplicanFilas(t *testing.T) {
	yesterday := []entity.SnapshotRow{
		row("Widget", "Red", "W-R-1", 10),
		row("Widget", "Red", "W-R-2", 12),
	}
	today := []entity.SnapshotRow{row("Widget", "Red", "W-R", 4)}

	rows, stats, err := compare.Compare(yesterday, today, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Joined)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Widget - Red"}, stats.DuplicateKeys)
	assert.Equal(t, "W-R-2", rows[0].SKU)
	assert.Equal(t, "W-R-1", rows[1].SKU)
}

func TestCompare_ModoEstrictoRechazaDuplicados(t *testing.T) {
	yesterday := []entity.SnapshotRow{row("Widget", "Red", "", 1)}
	today := []entity.SnapshotRow{row("Widget", "Red", "", 1), row("Widget", "Red", "", 0)}

	_, _, err := compare.Compare(yesterday, today, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey))
}

func TestCompare_CantidadVaciaNoGeneraDisminucion(t *testing.T) {
	yesterday := []entity.SnapshotRow{{ProductTitle: "Widget", VariantTitle: "Red"}}
	today := []entity.SnapshotRow{row("Widget", "Red", "", 0)}

	rows, stats, err := compare.Compare(yesterday, today, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Joined)
	assert.Empty(t, rows)
}

// ── SourceRouter ──────────────────────────────────────────────────────────────

type mapSource map[string][]entity.SnapshotRow

func (m mapSource) LoadSnapshot(_ context.Context, ref string) ([]entity.SnapshotRow, error) {
	rows, ok := m[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rows, nil
}

func TestSourceRouter_EnrutaPorPrefijo(t *testing.T) {
	r := compare.SourceRouter{
		Files: mapSource{"ayer.csv": {row("F", "", "", 1)}},
		DB:    mapSource{"2025-08-29": {row("D", "", "", 1)}},
	}

	rows, err := r.LoadSnapshot(context.Background(), "ayer.csv")
	require.NoError(t, err)
	assert.Equal(t, "F", rows[0].ProductTitle)

	rows, err = r.LoadSnapshot(context.Background(), "pg:2025-08-29")
	require.NoError(t, err)
	assert.Equal(t, "D", rows[0].ProductTitle)
}

func TestSourceRouter_SinDBRechazaReferenciaPG(t *testing.T) {
	r := compare.SourceRouter{Files: mapSource{}}
	_, err := r.LoadSnapshot(context.Background(), "pg:2025-08-29")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.LoadSnapshot(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Run ───────────────────────────────────────────────────────────────────────

type captureWriter struct {
	path string
	rows []entity.DecreaseRow
}

func (w *captureWriter) WriteDecreaseReport(path string, rows []entity.DecreaseRow) error {
	w.path, w.rows = path, rows
	return nil
}

type fakeRenderer struct{ calls int }

func (f *fakeRenderer) RenderDecreaseReport(context.Context, string, []entity.DecreaseRow) ([]byte, error) {
	f.calls++
	return []byte("%PDF-1.3 fake"), nil
}

func TestRun_EscribeCSVYPDF(t *testing.T) {
	src := mapSource{
		"ayer.csv": {row("Widget", "Red", "W-R", 10)},
		"hoy.csv":  {row("Widget", "Red", "W-R", 4)},
	}
	w := &captureWriter{}
	r := &fakeRenderer{}
	uc := compare.NewUseCase(src, w, r, compare.Options{}, zerolog.Nop())

	pdfPath := filepath.Join(t.TempDir(), "reporte.pdf")
	summary, err := uc.Run(context.Background(), dto.CompareRequest{
		Yesterday: "ayer.csv", Today: "hoy.csv",
		OutputPath: "inventory_decrease_report.csv", PDFPath: pdfPath,
	})
	require.NoError(t, err)

	assert.Equal(t, "inventory_decrease_report.csv", w.path)
	require.Len(t, w.rows, 1)
	assert.Equal(t, 1, summary.Stats.Decreased)
	assert.Equal(t, pdfPath, summary.PDFPath)
	assert.Equal(t, 1, r.calls)

	content, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "%PDF")
}

func TestRun_ArchivoFaltanteTermina(t *testing.T) {
	uc := compare.NewUseCase(mapSource{}, &captureWriter{}, nil, compare.Options{}, zerolog.Nop())
	_, err := uc.Run(context.Background(), dto.CompareRequest{Yesterday: "no.csv", Today: "hoy.csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompare_VarianteVaciaSeConservaEnElReporte(t *testing.T) {
	yesterday := []entity.SnapshotRow{row("Gorra", "", "G", 5)}
	today := []entity.SnapshotRow{row("Gorra", entity.DefaultVariantTitle, "G", 2)}

	rows, _, err := compare.Compare(yesterday, today, false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].VariantTitle, "se proyecta el título de ayer sin rellenar")
	assert.True(t, rows[0].DecreaseAmount.Equal(dec(3)))
}
