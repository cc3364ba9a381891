package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

// CompareRequest entradas del comparador. Yesterday/Today son referencias de snapshot
// (ruta CSV o "pg:YYYY-MM-DD").
type CompareRequest struct {
	Yesterday  string
	Today      string
	OutputPath string
	PDFPath    string
}

// CompareStats contadores del cruce entre dos snapshots.
type CompareStats struct {
	YesterdayRows int             `json:"yesterday_rows"`
	TodayRows     int             `json:"today_rows"`
	Joined        int             `json:"joined"`
	Decreased     int             `json:"decreased"`
	DuplicateKeys []string        `json:"duplicate_keys,omitempty"`
	TotalDecrease decimal.Decimal `json:"total_decrease"`
}

// CompareSummary resultado de una ejecución del comparador.
type CompareSummary struct {
	Stats   CompareStats
	Rows    []entity.DecreaseRow
	Path    string
	PDFPath string
}

// DecreaseRowDTO fila del reporte de disminución en respuestas JSON.
type DecreaseRowDTO struct {
	ProductTitle   string          `json:"product_title"`
	VariantTitle   string          `json:"variant_title"`
	SKU            string          `json:"sku"`
	YesterdayStock decimal.Decimal `json:"yesterday_stock"`
	TodayStock     decimal.Decimal `json:"today_stock"`
	DecreaseAmount decimal.Decimal `json:"decrease_amount"`
}

// FromDecreaseRows mapea las filas de dominio al DTO HTTP.
func FromDecreaseRows(rows []entity.DecreaseRow) []DecreaseRowDTO {
	out := make([]DecreaseRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, DecreaseRowDTO{
			ProductTitle:   r.ProductTitle,
			VariantTitle:   r.VariantTitle,
			SKU:            r.SKU,
			YesterdayStock: r.YesterdayStock,
			TodayStock:     r.TodayStock,
			DecreaseAmount: r.DecreaseAmount,
		})
	}
	return out
}

// SnapshotRowDTO fila de snapshot en respuestas JSON.
type SnapshotRowDTO struct {
	ProductTitle string              `json:"product_title"`
	VariantTitle string              `json:"variant_title"`
	SKU          string              `json:"sku"`
	Available    decimal.NullDecimal `json:"available"`
}

// FromSnapshotRows mapea filas de snapshot al DTO HTTP.
func FromSnapshotRows(rows []entity.SnapshotRow) []SnapshotRowDTO {
	out := make([]SnapshotRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, SnapshotRowDTO{
			ProductTitle: r.ProductTitle,
			VariantTitle: r.VariantTitle,
			SKU:          r.SKU,
			Available:    r.Available,
		})
	}
	return out
}
