package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	"github.com/jhoicas/Inventario-snapshot/internal/application/snapshot"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

var (
	_ snapshot.ReportWriter  = (*Writer)(nil)
	_ compare.DecreaseWriter = (*Writer)(nil)
)

// Writer escribe snapshots y reportes de disminución en CSV, sin índice y con cabecera fija.
type Writer struct{}

// NewWriter construye el escritor.
func NewWriter() *Writer { return &Writer{} }

// WriteSnapshot escribe el snapshot cruzado en path (crea el directorio si hace falta).
func (w *Writer) WriteSnapshot(path string, records []entity.MatchedRecord) error {
	return writeFile(path, func(out io.Writer) error { return EncodeSnapshot(out, records) })
}

// WriteDecreaseReport escribe el reporte de disminuciones en path.
func (w *Writer) WriteDecreaseReport(path string, rows []entity.DecreaseRow) error {
	return writeFile(path, func(out io.Writer) error { return EncodeDecreaseReport(out, rows) })
}

// EncodeSnapshot serializa los registros con la cabecera de ReportSchema.
func EncodeSnapshot(out io.Writer, records []entity.MatchedRecord) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(snapshotHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{
			r.ProductTitle,
			r.VariantTitle,
			r.SKU,
			strconv.FormatInt(r.InventoryItemID, 10),
			r.Available.String(),
			r.LocationID,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeDecreaseReport serializa el reporte de disminuciones.
func EncodeDecreaseReport(out io.Writer, rows []entity.DecreaseRow) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(decreaseHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.ProductTitle,
			r.VariantTitle,
			r.SKU,
			r.YesterdayStock.String(),
			r.TodayStock.String(),
			r.DecreaseAmount.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFile(path string, encode func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return f.Close()
}
