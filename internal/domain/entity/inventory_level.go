package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLevel cantidad disponible de un inventory item en una ubicación.
type InventoryLevel struct {
	InventoryItemID int64
	Available       decimal.Decimal
	LocationID      string
	UpdatedAt       time.Time
}

// MatchedRecord item de inventario con su nivel asociado.
// Si no se encontró nivel, Available es 0 y LocationID vacío.
type MatchedRecord struct {
	InventoryItem
	Available  decimal.Decimal
	LocationID string
}
