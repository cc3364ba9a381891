package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

// DBRefPrefix prefijo de las referencias de snapshot persistidas: "pg:2025-08-29".
const DBRefPrefix = "pg:"

// SourceRouter decide de dónde cargar cada referencia: las que empiezan por DBRefPrefix van a DB,
// el resto se tratan como rutas a CSV.
type SourceRouter struct {
	Files SnapshotSource // nil en la API HTTP, que sólo lee de DB
	DB    SnapshotSource // nil si no hay base de datos configurada
}

// LoadSnapshot implementa SnapshotSource.
func (r SourceRouter) LoadSnapshot(ctx context.Context, ref string) ([]entity.SnapshotRow, error) {
	if rest, ok := strings.CutPrefix(ref, DBRefPrefix); ok {
		if r.DB == nil {
			return nil, fmt.Errorf("snapshot %q requiere DATABASE_URL: %w", ref, domain.ErrInvalidInput)
		}
		return r.DB.LoadSnapshot(ctx, rest)
	}
	if ref == "" {
		return nil, fmt.Errorf("referencia de snapshot vacía: %w", domain.ErrInvalidInput)
	}
	if r.Files == nil {
		return nil, fmt.Errorf("snapshot %q: sólo se admiten referencias %s: %w", ref, DBRefPrefix, domain.ErrInvalidInput)
	}
	return r.Files.LoadSnapshot(ctx, ref)
}
