package entity

import "github.com/shopspring/decimal"

// KeySeparator separa título de producto y título de variante en la clave compuesta.
const KeySeparator = " - "

// SnapshotRow fila de un snapshot diario de inventario, independiente del esquema de columnas de origen.
// Available es nulo cuando la celda de cantidad venía vacía.
type SnapshotRow struct {
	ProductTitle string
	VariantTitle string
	SKU          string
	Available    decimal.NullDecimal
}

// Key devuelve la clave compuesta con la que se empareja la misma variante entre dos días.
func (r SnapshotRow) Key() string {
	return CompositeKey(r.ProductTitle, r.VariantTitle)
}

// CompositeKey construye "<producto> - <variante>", con la variante por defecto si viene vacía.
func CompositeKey(productTitle, variantTitle string) string {
	return productTitle + KeySeparator + VariantTitleOrDefault(variantTitle)
}
