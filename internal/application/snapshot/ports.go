package snapshot

import (
	"context"

	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

// Catalog puerto hacia la API de comercio (listado paginado de productos y niveles de inventario).
// Las respuestas no exitosas deben devolver un error que envuelva domain.ErrUpstreamStatus.
type Catalog interface {
	// ProductsPage pide una página del listado. pageURL vacío = primera página.
	ProductsPage(ctx context.Context, pageURL string, limit int) (*dto.ProductPage, error)
	// InventoryLevels pide en una sola petición los niveles de los inventory items indicados.
	InventoryLevels(ctx context.Context, inventoryItemIDs []int64) ([]entity.InventoryLevel, error)
}

// ReportWriter escribe el snapshot cruzado en un archivo plano.
type ReportWriter interface {
	WriteSnapshot(path string, records []entity.MatchedRecord) error
}
