package dto

import "github.com/jhoicas/Inventario-snapshot/internal/domain/entity"

// ProductPage una página del listado de productos y la URL de la siguiente (vacía = última).
type ProductPage struct {
	Products    []entity.Product
	NextPageURL string
}

// SnapshotSummary resultado de una ejecución del snapshot diario.
type SnapshotSummary struct {
	RunID         string                 `json:"run_id"`
	Path          string                 `json:"path"`
	Products      int                    `json:"products"`
	Items         int                    `json:"items"`
	Levels        int                    `json:"levels"`
	InStock       int                    `json:"in_stock"`     // available > 0
	OutOfStock    int                    `json:"out_of_stock"` // available == 0
	FailedBatches int                    `json:"failed_batches"`
	Persisted     bool                   `json:"persisted"`
	Top           []entity.MatchedRecord `json:"-"`
}
