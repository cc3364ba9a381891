package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

// decreaseDiffer es lo que el handler necesita del comparador.
type decreaseDiffer interface {
	Diff(ctx context.Context, yesterdayRef, todayRef string) ([]entity.DecreaseRow, dto.CompareStats, error)
}

var _ decreaseDiffer = (*compare.UseCase)(nil)

// ReportHandler reporte de disminución entre dos snapshots persistidos (protegido).
type ReportHandler struct {
	uc       decreaseDiffer
	renderer compare.ReportRenderer
}

// NewReportHandler construye el handler. renderer puede ser nil (sin PDF).
func NewReportHandler(uc decreaseDiffer, renderer compare.ReportRenderer) *ReportHandler {
	return &ReportHandler{uc: uc, renderer: renderer}
}

// DecreaseResponse cuerpo JSON del reporte de disminución.
type DecreaseResponse struct {
	From  string               `json:"from"`
	To    string               `json:"to"`
	Stats dto.CompareStats     `json:"stats"`
	Rows  []dto.DecreaseRowDTO `json:"rows"`
}

// Decrease godoc
// @Summary      Reporte de disminución de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Snapshot anterior YYYY-MM-DD"
// @Param        to    query  string  true  "Snapshot actual YYYY-MM-DD"
// @Success      200   {object}  DecreaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reports/decrease [get]
func (h *ReportHandler) Decrease(c *fiber.Ctx) error {
	from, to, ok := dateRange(c)
	if !ok {
		return nil
	}
	rows, stats, err := h.uc.Diff(c.UserContext(), compare.DBRefPrefix+from, compare.DBRefPrefix+to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(DecreaseResponse{From: from, To: to, Stats: stats, Rows: dto.FromDecreaseRows(rows)})
}

// DecreasePDF godoc
// @Summary      Reporte de disminución en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  true  "Snapshot anterior YYYY-MM-DD"
// @Param        to    query  string  true  "Snapshot actual YYYY-MM-DD"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reports/decrease.pdf [get]
func (h *ReportHandler) DecreasePDF(c *fiber.Ctx) error {
	if h.renderer == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "PDF_DISABLED", Message: "generación de PDF no configurada"})
	}
	from, to, ok := dateRange(c)
	if !ok {
		return nil
	}
	rows, _, err := h.uc.Diff(c.UserContext(), compare.DBRefPrefix+from, compare.DBRefPrefix+to)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.renderer.RenderDecreaseReport(c.UserContext(), from+" → "+to, rows)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="inventory_decrease_%s_%s.pdf"`, from, to))
	return c.Send(pdf)
}

// dateRange lee from/to; si falta alguno ya escribió la respuesta 400 y devuelve ok=false.
func dateRange(c *fiber.Ctx) (from, to string, ok bool) {
	from, to = c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to son requeridos (YYYY-MM-DD)"})
		return "", "", false
	}
	return from, to, true
}
