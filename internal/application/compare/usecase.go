package compare

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

// Options parámetros del comparador.
type Options struct {
	// StrictKeys rechaza snapshots con claves compuestas repetidas en lugar de
	// multiplicar las filas del cruce.
	StrictKeys bool
}

// UseCase compara dos snapshots diarios y reporta las variantes cuyo stock bajó.
type UseCase struct {
	source   SnapshotSource
	writer   DecreaseWriter
	renderer ReportRenderer
	opts     Options
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. renderer puede ser nil (sin PDF).
func NewUseCase(source SnapshotSource, writer DecreaseWriter, renderer ReportRenderer, opts Options, log zerolog.Logger) *UseCase {
	return &UseCase{source: source, writer: writer, renderer: renderer, opts: opts, log: log}
}

// Diff carga ambos snapshots y calcula las disminuciones sin escribir nada.
func (uc *UseCase) Diff(ctx context.Context, yesterdayRef, todayRef string) ([]entity.DecreaseRow, dto.CompareStats, error) {
	yesterday, err := uc.source.LoadSnapshot(ctx, yesterdayRef)
	if err != nil {
		return nil, dto.CompareStats{}, fmt.Errorf("cargar snapshot anterior %s: %w", yesterdayRef, err)
	}
	today, err := uc.source.LoadSnapshot(ctx, todayRef)
	if err != nil {
		return nil, dto.CompareStats{}, fmt.Errorf("cargar snapshot actual %s: %w", todayRef, err)
	}

	rows, stats, err := Compare(yesterday, today, uc.opts.StrictKeys)
	if err != nil {
		return nil, stats, err
	}
	if len(stats.DuplicateKeys) > 0 {
		uc.log.Warn().
			Int("duplicate_keys", len(stats.DuplicateKeys)).
			Strs("sample", sample(stats.DuplicateKeys, 5)).
			Msg("claves compuestas repetidas: el cruce multiplica filas")
	}
	uc.log.Info().
		Int("yesterday_rows", stats.YesterdayRows).
		Int("today_rows", stats.TodayRows).
		Int("joined", stats.Joined).
		Int("decreased", stats.Decreased).
		Msg("snapshots comparados")
	return rows, stats, nil
}

// Run compara, escribe el CSV de salida y, si se pidió, el PDF.
func (uc *UseCase) Run(ctx context.Context, req dto.CompareRequest) (*dto.CompareSummary, error) {
	rows, stats, err := uc.Diff(ctx, req.Yesterday, req.Today)
	if err != nil {
		return nil, err
	}

	if err := uc.writer.WriteDecreaseReport(req.OutputPath, rows); err != nil {
		return nil, fmt.Errorf("escribir reporte %s: %w", req.OutputPath, err)
	}
	uc.log.Info().Str("path", req.OutputPath).Msg("reporte de disminuciones guardado")

	summary := &dto.CompareSummary{Stats: stats, Rows: rows, Path: req.OutputPath}

	if req.PDFPath != "" && uc.renderer != nil {
		title := fmt.Sprintf("%s → %s", req.Yesterday, req.Today)
		doc, err := uc.renderer.RenderDecreaseReport(ctx, title, rows)
		if err != nil {
			return nil, fmt.Errorf("generar PDF: %w", err)
		}
		if err := os.WriteFile(req.PDFPath, doc, 0o644); err != nil {
			return nil, fmt.Errorf("escribir PDF %s: %w", req.PDFPath, err)
		}
		summary.PDFPath = req.PDFPath
		uc.log.Info().Str("path", req.PDFPath).Msg("PDF del reporte guardado")
	}
	return summary, nil
}

// Compare hace el inner join por clave compuesta, conserva sólo disminuciones positivas y las
// ordena de mayor a menor. El orden del cruce sigue el de yesterday y, dentro de una clave, el de today.
// Con claves repetidas cada combinación produce una fila, salvo strict, que devuelve ErrDuplicateKey.
// Filas con cantidad vacía participan del cruce pero nunca generan disminución.
func Compare(yesterday, today []entity.SnapshotRow, strict bool) ([]entity.DecreaseRow, dto.CompareStats, error) {
	stats := dto.CompareStats{
		YesterdayRows: len(yesterday),
		TodayRows:     len(today),
		TotalDecrease: decimal.Zero,
	}

	stats.DuplicateKeys = append(duplicateKeys(yesterday), duplicateKeys(today)...)
	if strict && len(stats.DuplicateKeys) > 0 {
		return nil, stats, fmt.Errorf("%w: %q", domain.ErrDuplicateKey, sample(stats.DuplicateKeys, 5))
	}

	todayByKey := make(map[string][]int, len(today))
	for i, r := range today {
		k := r.Key()
		todayByKey[k] = append(todayByKey[k], i)
	}

	var out []entity.DecreaseRow
	for _, y := range yesterday {
		for _, ti := range todayByKey[y.Key()] {
			stats.Joined++
			t := today[ti]
			if !y.Available.Valid || !t.Available.Valid {
				continue
			}
			decrease := y.Available.Decimal.Sub(t.Available.Decimal)
			if !decrease.IsPositive() {
				continue
			}
			out = append(out, entity.DecreaseRow{
				ProductTitle:   y.ProductTitle,
				VariantTitle:   y.VariantTitle,
				SKU:            y.SKU,
				YesterdayStock: y.Available.Decimal,
				TodayStock:     t.Available.Decimal,
				DecreaseAmount: decrease,
			})
			stats.TotalDecrease = stats.TotalDecrease.Add(decrease)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DecreaseAmount.GreaterThan(out[j].DecreaseAmount)
	})
	stats.Decreased = len(out)
	return out, stats, nil
}

// duplicateKeys devuelve las claves que aparecen más de una vez, en orden de primera aparición.
func duplicateKeys(rows []entity.SnapshotRow) []string {
	seen := make(map[string]int, len(rows))
	var dups []string
	for _, r := range rows {
		k := r.Key()
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

func sample(keys []string, n int) []string {
	if len(keys) > n {
		return keys[:n]
	}
	return keys
}
