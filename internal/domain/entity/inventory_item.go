package entity

// InventoryItem fila aplanada producto+variante, previa al cruce con los niveles de inventario.
type InventoryItem struct {
	ProductTitle    string
	VariantTitle    string
	SKU             string
	InventoryItemID int64
	VariantID       int64
}
