package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sicoil/backoffice/internal/application/auth"
	"github.com/sicoil/backoffice/internal/application/capital"
	"github.com/sicoil/backoffice/internal/application/cartera"
	"github.com/sicoil/backoffice/internal/application/cliente"
	"github.com/sicoil/backoffice/internal/application/inventario"
	"github.com/sicoil/backoffice/internal/application/kardex"
	"github.com/sicoil/backoffice/internal/application/venta"
	infrapdf "github.com/sicoil/backoffice/internal/infrastructure/pdf"
	"github.com/sicoil/backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/sicoil/backoffice/internal/interfaces/http"
	"github.com/sicoil/backoffice/pkg/config"
	"github.com/sicoil/backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	loteRepo := postgres.NewLoteRepository(pool)
	kardexRepo := postgres.NewKardexRepository(pool)
	capitalRepo := postgres.NewCapitalMovimientoRepository(pool)
	carteraRepo := postgres.NewCarteraRepository(pool)
	carteraMovRepo := postgres.NewCarteraMovimientoRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	capitalUC := capital.NewUseCase(txRunner, capitalRepo, carteraRepo, carteraMovRepo, reporteRepo, log)
	inventarioUC := inventario.NewUseCase(txRunner, loteRepo, capitalUC, log)
	carteraUC := cartera.NewUseCase(txRunner, carteraRepo, carteraMovRepo, clienteRepo, capitalUC, log)
	reciboRenderer := infrapdf.NewMarotoReciboRenderer()
	ventaUC := venta.NewUseCase(
		txRunner, ventaRepo, loteRepo, clienteRepo, usuarioRepo,
		inventarioUC, capitalUC, carteraUC, reciboRenderer, log,
	)
	kardexUC := kardex.NewUseCase(kardexRepo, loteRepo)
	clienteUC := cliente.NewUseCase(clienteRepo)
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InventarioUC: inventarioUC,
		VentaUC:      ventaUC,
		CarteraUC:    carteraUC,
		CapitalUC:    capitalUC,
		KardexUC:     kardexUC,
		ClienteUC:    clienteUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
