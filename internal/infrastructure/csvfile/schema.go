// Package csvfile lee y escribe los snapshots y reportes de inventario en CSV.
package csvfile

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-snapshot/internal/domain"
)

// utf8BOM marca de orden de bytes que Excel antepone a los CSV.
const utf8BOM = "\ufeff"

// Schema nombres de columna de un snapshot. Los snapshots generados por este programa
// y los exportados a mano usan convenciones distintas.
type Schema struct {
	Name         string
	ProductTitle string
	VariantTitle string
	SKU          string
	Available    string
}

var (
	// ReportSchema columnas del CSV que escribe SnapshotWriter.
	ReportSchema = Schema{
		Name:         "report",
		ProductTitle: "product_title",
		VariantTitle: "variant_title",
		SKU:          "sku",
		Available:    "available",
	}
	// LegacySchema columnas de las exportaciones limpiadas a mano.
	LegacySchema = Schema{
		Name:         "legacy",
		ProductTitle: "Product Title",
		VariantTitle: "Variant Title",
		SKU:          "SKU",
		Available:    "Inventory Available",
	}

	knownSchemas = []Schema{ReportSchema, LegacySchema}
)

// snapshotHeader cabecera del CSV de snapshot diario.
var snapshotHeader = []string{
	"product_title", "variant_title", "sku", "inventory_item_id", "available", "location_id",
}

// decreaseHeader cabecera del reporte de disminuciones.
var decreaseHeader = []string{
	"Product Title", "Variant Title", "SKU", "Yesterday Stock", "Today Stock", "Decrease Amount",
}

// columnIndex posiciones de las columnas del esquema dentro de una cabecera concreta.
// SKU y VariantTitle son opcionales (-1 si faltan).
type columnIndex struct {
	product, variant, sku, available int
}

// detectSchema elige el esquema cuya columna de producto aparece en la cabecera y valida
// que estén las columnas obligatorias (producto y cantidad).
func detectSchema(header []string) (Schema, columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	lookup := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	for _, s := range knownSchemas {
		idx := columnIndex{
			product:   lookup(s.ProductTitle),
			variant:   lookup(s.VariantTitle),
			sku:       lookup(s.SKU),
			available: lookup(s.Available),
		}
		if idx.product < 0 {
			continue
		}
		if idx.available < 0 {
			return s, idx, fmt.Errorf("%w: %q (esquema %s)", domain.ErrMissingColumn, s.Available, s.Name)
		}
		return s, idx, nil
	}
	return Schema{}, columnIndex{}, fmt.Errorf("%w: se esperaba %q o %q",
		domain.ErrMissingColumn, ReportSchema.ProductTitle, LegacySchema.ProductTitle)
}
