package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
	"github.com/jhoicas/Inventario-snapshot/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-snapshot/pkg/config"
)

func TestParseSnapshotDate(t *testing.T) {
	d, err := postgres.ParseSnapshotDate("2025-08-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = postgres.ParseSnapshotDate("29/08/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Requiere una base de datos real: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func TestSnapshotRepo_GuardarYCargar(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	defer pool.Close()

	repo := postgres.NewSnapshotRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	date := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)
	records := []entity.MatchedRecord{
		{InventoryItem: entity.InventoryItem{ProductTitle: "Widget", VariantTitle: "Red", SKU: "W-R", InventoryItemID: 1, VariantID: 11}, Available: decimal.NewFromInt(7), LocationID: "9"},
		{InventoryItem: entity.InventoryItem{ProductTitle: "Widget", VariantTitle: "Blue", InventoryItemID: 2, VariantID: 12}, Available: decimal.Zero},
	}
	require.NoError(t, repo.SaveSnapshot(ctx, date, uuid.NewString(), records))
	// Guardar de nuevo la misma fecha reemplaza, no duplica.
	require.NoError(t, repo.SaveSnapshot(ctx, date, uuid.NewString(), records))

	rows, err := postgres.SnapshotSource{Repo: repo}.LoadSnapshot(ctx, "1999-12-31")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Widget - Red", rows[0].Key())
	assert.True(t, rows[0].Available.Decimal.Equal(decimal.NewFromInt(7)))

	_, err = repo.LoadSnapshot(ctx, date.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
