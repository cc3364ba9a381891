package compare

import (
	"context"

	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

// SnapshotSource carga las filas de un snapshot a partir de una referencia (ruta, fecha...).
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context, ref string) ([]entity.SnapshotRow, error)
}

// DecreaseWriter escribe el reporte de disminuciones en un archivo plano.
type DecreaseWriter interface {
	WriteDecreaseReport(path string, rows []entity.DecreaseRow) error
}

// ReportRenderer genera una representación gráfica del reporte (PDF).
type ReportRenderer interface {
	RenderDecreaseReport(ctx context.Context, title string, rows []entity.DecreaseRow) ([]byte, error)
}
