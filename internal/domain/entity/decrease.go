package entity

import "github.com/shopspring/decimal"

// DecreaseRow fila del reporte de disminución de stock entre dos snapshots.
// DecreaseAmount = YesterdayStock - TodayStock y siempre es positivo.
type DecreaseRow struct {
	ProductTitle   string
	VariantTitle   string
	SKU            string
	YesterdayStock decimal.Decimal
	TodayStock     decimal.Decimal
	DecreaseAmount decimal.Decimal
}
