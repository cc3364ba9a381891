package csvfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

var _ compare.SnapshotSource = (*SnapshotReader)(nil)

// SnapshotReader carga snapshots desde archivos CSV detectando el esquema de columnas.
type SnapshotReader struct{}

// NewSnapshotReader construye el lector.
func NewSnapshotReader() *SnapshotReader { return &SnapshotReader{} }

// LoadSnapshot abre el archivo en path y lo decodifica con ReadSnapshot.
// Los CSV que no son UTF-8 válido (exportaciones de Excel) se leen como Windows-1252.
func (r *SnapshotReader) LoadSnapshot(_ context.Context, path string) ([]entity.SnapshotRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}

	rows, err := ReadSnapshot(decodeLegacy(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// decodeLegacy devuelve raw tal cual si es UTF-8; si no, lo transcodifica desde Windows-1252.
func decodeLegacy(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder())
}

// ReadSnapshot decodifica un snapshot en cualquiera de los esquemas conocidos.
// La variante se conserva tal cual (vacía incluida; la clave aplica DefaultVariantTitle);
// cantidad vacía → Available nulo.
func ReadSnapshot(in io.Reader) ([]entity.SnapshotRow, error) {
	cr := csv.NewReader(skipBOM(in))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: archivo vacío", domain.ErrMissingColumn)
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	_, idx, err := detectSchema(header)
	if err != nil {
		return nil, err
	}

	var rows []entity.SnapshotRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}

		row := entity.SnapshotRow{
			ProductTitle: field(rec, idx.product),
			VariantTitle: field(rec, idx.variant),
			SKU:          field(rec, idx.sku),
		}
		if raw := strings.TrimSpace(field(rec, idx.available)); raw != "" {
			qty, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("línea %d: cantidad %q: %w", line, raw, domain.ErrInvalidInput)
			}
			row.Available = decimal.NewNullDecimal(qty)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// skipBOM descarta el BOM UTF-8 antes del parser CSV: con una primera celda entre comillas
// el BOM delante de la comilla rompe el parseo de la cabecera.
func skipBOM(in io.Reader) io.Reader {
	br := bufio.NewReader(in)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
