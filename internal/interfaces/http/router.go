package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SnapshotRepo repository.SnapshotRepository
	CompareUC    decreaseDiffer
	Renderer     compare.ReportRenderer
	JWTSecret    string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Snapshots (lectura)
	snapshots := api.Group("/snapshots", RequireRole(RoleAdmin, RoleAnalista, RoleLector))
	snapshotHandler := NewSnapshotHandler(deps.SnapshotRepo)
	snapshots.Get("/", snapshotHandler.ListDates)
	snapshots.Get("/:date", snapshotHandler.GetByDate)

	// Reportes
	reports := api.Group("/reports", RequireRole(RoleAdmin, RoleAnalista))
	reportHandler := NewReportHandler(deps.CompareUC, deps.Renderer)
	reports.Get("/decrease", reportHandler.Decrease)
	reports.Get("/decrease.pdf", reportHandler.DecreasePDF)
}
