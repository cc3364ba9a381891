package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/repository"
)

// SnapshotHandler expone los snapshots diarios persistidos (protegido).
type SnapshotHandler struct {
	repo repository.SnapshotRepository
}

// NewSnapshotHandler construye el handler.
func NewSnapshotHandler(repo repository.SnapshotRepository) *SnapshotHandler {
	return &SnapshotHandler{repo: repo}
}

// ListDates godoc
// @Summary      Listar fechas con snapshot
// @Tags         snapshots
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(30)
// @Success      200    {object}  map[string][]string
// @Router       /api/snapshots [get]
func (h *SnapshotHandler) ListDates(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 30)
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	dates, err := h.repo.ListSnapshotDates(c.UserContext(), limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return c.JSON(fiber.Map{"dates": out})
}

// GetByDate godoc
// @Summary      Obtener snapshot de un día
// @Tags         snapshots
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "Fecha YYYY-MM-DD"
// @Success      200   {array}   dto.SnapshotRowDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/snapshots/{date} [get]
func (h *SnapshotHandler) GetByDate(c *fiber.Ctx) error {
	d, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha con formato YYYY-MM-DD requerida"})
	}
	rows, err := h.repo.LoadSnapshot(c.UserContext(), d)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromSnapshotRows(rows))
}
