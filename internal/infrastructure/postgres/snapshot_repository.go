package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/repository"
)

var (
	_ repository.SnapshotRepository = (*SnapshotRepo)(nil)
	_ compare.SnapshotSource        = (*SnapshotSource)(nil)
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS inventory_snapshots (
	snapshot_date     DATE        NOT NULL,
	run_id            TEXT        NOT NULL,
	inventory_item_id BIGINT      NOT NULL,
	variant_id        BIGINT      NOT NULL,
	product_title     TEXT        NOT NULL,
	variant_title     TEXT        NOT NULL,
	sku               TEXT        NOT NULL DEFAULT '',
	available         NUMERIC     NOT NULL DEFAULT 0,
	location_id       TEXT        NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_inventory_snapshots_date ON inventory_snapshots (snapshot_date);`

var snapshotColumns = []string{
	"snapshot_date", "run_id", "inventory_item_id", "variant_id",
	"product_title", "variant_title", "sku", "available", "location_id",
}

// SnapshotRepo implementación de SnapshotRepository sobre PostgreSQL.
type SnapshotRepo struct {
	db DB
	tx *TxRunner
}

// NewSnapshotRepository construye el adaptador. Acepta pool o tx.
func NewSnapshotRepository(db DB) *SnapshotRepo {
	return &SnapshotRepo{db: db, tx: NewTxRunner(db)}
}

// EnsureSchema crea la tabla de snapshots si no existe.
func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("crear esquema inventory_snapshots: %w", err)
	}
	return nil
}

// SaveSnapshot reemplaza el snapshot de la fecha en una sola transacción (DELETE + COPY).
func (r *SnapshotRepo) SaveSnapshot(ctx context.Context, snapshotDate time.Time, runID string, records []entity.MatchedRecord) error {
	day := truncateDay(snapshotDate)

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []any{
			day, runID, rec.InventoryItemID, rec.VariantID,
			rec.ProductTitle, rec.VariantTitle, rec.SKU, rec.Available, rec.LocationID,
		})
	}

	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM inventory_snapshots WHERE snapshot_date = $1`, day); err != nil {
			return fmt.Errorf("borrar snapshot previo: %w", err)
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"inventory_snapshots"}, snapshotColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copiar snapshot: %w", err)
		}
		return nil
	})
}

// LoadSnapshot devuelve las filas del snapshot de la fecha, en el orden en que se guardaron
// (stock descendente). ErrNotFound si no hay snapshot para esa fecha.
func (r *SnapshotRepo) LoadSnapshot(ctx context.Context, snapshotDate time.Time) ([]entity.SnapshotRow, error) {
	query := `
		SELECT product_title, variant_title, sku, available
		FROM inventory_snapshots
		WHERE snapshot_date = $1
		ORDER BY available DESC, product_title, variant_title`
	rows, err := r.db.Query(ctx, query, truncateDay(snapshotDate))
	if err != nil {
		return nil, fmt.Errorf("cargar snapshot: %w", err)
	}
	defer rows.Close()

	var list []entity.SnapshotRow
	for rows.Next() {
		var (
			row       entity.SnapshotRow
			available decimal.Decimal
		)
		if err := rows.Scan(&row.ProductTitle, &row.VariantTitle, &row.SKU, &available); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		row.Available = decimal.NewNullDecimal(available)
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotDate.Format(dateLayout), domain.ErrNotFound)
	}
	return list, nil
}

// ListSnapshotDates devuelve las fechas con snapshot, más recientes primero.
func (r *SnapshotRepo) ListSnapshotDates(ctx context.Context, limit int) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT snapshot_date
		FROM inventory_snapshots
		ORDER BY snapshot_date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listar fechas de snapshot: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan fecha de snapshot: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// SnapshotSource adapta SnapshotRepo al puerto compare.SnapshotSource (referencias "YYYY-MM-DD").
type SnapshotSource struct {
	Repo repository.SnapshotRepository
}

// LoadSnapshot implementa compare.SnapshotSource.
func (s SnapshotSource) LoadSnapshot(ctx context.Context, ref string) ([]entity.SnapshotRow, error) {
	d, err := ParseSnapshotDate(ref)
	if err != nil {
		return nil, err
	}
	return s.Repo.LoadSnapshot(ctx, d)
}
