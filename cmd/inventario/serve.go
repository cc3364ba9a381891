package main

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	appcompare "github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	infrapdf "github.com/jhoicas/Inventario-snapshot/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-snapshot/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-snapshot/internal/interfaces/http"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "API HTTP de lectura de snapshots y reportes (requiere PostgreSQL)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	if !a.cfg.DB.Enabled() {
		return a.fail(errors.New("DATABASE_URL o DB_HOST requerido"), "serve necesita PostgreSQL")
	}
	if a.cfg.JWT.Secret == "" {
		return a.fail(errors.New("JWT_SECRET requerido"), "serve necesita JWT_SECRET")
	}

	pool, err := postgres.NewPool(ctx, a.cfg.DB)
	if err != nil {
		return a.fail(err, "conexión a PostgreSQL")
	}
	defer pool.Close()

	snapshotRepo := postgres.NewSnapshotRepository(pool)
	if err := snapshotRepo.EnsureSchema(ctx); err != nil {
		return a.fail(err, "crear esquema de snapshots")
	}
	renderer := infrapdf.NewMarotoReportGenerator(a.cfg.App.Locale)
	compareUC := appcompare.NewUseCase(
		appcompare.SourceRouter{DB: postgres.SnapshotSource{Repo: snapshotRepo}},
		nil, renderer,
		appcompare.Options{StrictKeys: a.cfg.Compare.StrictKeys},
		a.log.Zerolog(),
	)

	srv := fiber.New(fiber.Config{
		AppName:      a.cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	srv.Use(recover.New())

	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": a.cfg.App.Name})
	})

	httpRouter.Router(srv, httpRouter.RouterDeps{
		SnapshotRepo: snapshotRepo,
		CompareUC:    compareUC,
		Renderer:     renderer,
		JWTSecret:    a.cfg.JWT.Secret,
	})

	return a.listenUntilDone(ctx, srv, a.cfg.HTTP.Addr())
}

// listenUntilDone sirve en addr hasta que se cancele ctx y entonces apaga con un plazo de 10s.
// Si Listen falla (puerto ocupado...) devuelve ese error sin esperar a la señal.
func (a *app) listenUntilDone(ctx context.Context, srv *fiber.App, addr string) error {
	listenErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		listenErr <- srv.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return a.fail(err, "servidor HTTP finalizado")
	case <-ctx.Done():
	}
	a.log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("apagado del servidor")
	}

	a.log.Info().Msg("aplicación detenida")
	return nil
}
