package entity

// DefaultVariantTitle es el título que Shopify asigna a la variante única de un producto sin opciones.
// También se usa como valor de relleno cuando el título de la variante viene vacío.
const DefaultVariantTitle = "Default Title"

// Product producto del catálogo con sus variantes.
type Product struct {
	ID       int64
	Title    string
	Variants []Variant
}

// Variant opción comprable de un producto (talla, color...) con su propio stock.
// InventoryItemID es el identificador con el que se consultan los niveles de inventario.
type Variant struct {
	ID              int64
	Title           string
	SKU             string
	InventoryItemID int64
}

// DisplayTitle devuelve el título de la variante o DefaultVariantTitle si está vacío.
func (v Variant) DisplayTitle() string {
	return VariantTitleOrDefault(v.Title)
}

// VariantTitleOrDefault aplica el título por defecto a un título de variante vacío.
func VariantTitleOrDefault(title string) string {
	if title == "" {
		return DefaultVariantTitle
	}
	return title
}
