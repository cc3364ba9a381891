package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

// SnapshotRepository define el puerto de persistencia de snapshots diarios (DIP).
// Un snapshot se identifica por su fecha; guardar de nuevo la misma fecha lo reemplaza.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshotDate time.Time, runID string, records []entity.MatchedRecord) error
	LoadSnapshot(ctx context.Context, snapshotDate time.Time) ([]entity.SnapshotRow, error)
	ListSnapshotDates(ctx context.Context, limit int) ([]time.Time, error)
}
