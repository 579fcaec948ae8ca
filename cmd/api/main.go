package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/motherindia/millstock-api/internal/application/auth"
	"github.com/motherindia/millstock-api/internal/application/report"
	"github.com/motherindia/millstock-api/internal/application/usecase"
	"github.com/motherindia/millstock-api/internal/infrastructure/export"
	infrapdf "github.com/motherindia/millstock-api/internal/infrastructure/pdf"
	"github.com/motherindia/millstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/motherindia/millstock-api/internal/interfaces/http"
	"github.com/motherindia/millstock-api/pkg/config"
	"github.com/motherindia/millstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	productionRepo := postgres.NewRiceProductionRepository(pool)
	outturnRepo := postgres.NewOutturnRepository(pool)
	hamaliRepo := postgres.NewHamaliRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := usecase.NewMovementUseCase(movementRepo, outturnRepo)
	productionUC := usecase.NewRiceProductionUseCase(productionRepo, outturnRepo)
	outturnUC := usecase.NewOutturnUseCase(outturnRepo, productionRepo, txRunner)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	hamaliUC := usecase.NewHamaliUseCase(hamaliRepo)
	paddyReportUC := report.NewPaddyStockUseCase(movementRepo, productionRepo, outturnRepo, log)
	riceReportUC := report.NewRiceStockUseCase(productionRepo, outturnRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: the printable statements the mill office files every day
	pdfGenerator := infrapdf.NewStatementGenerator(cfg.Report.MillName)
	exporter := export.NewExcelExporter()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Millstock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:       movementUC,
		RiceProductionUC: productionUC,
		OutturnUC:        outturnUC,
		WarehouseUC:      warehouseUC,
		HamaliUC:         hamaliUC,
		PaddyReportUC:    paddyReportUC,
		RiceReportUC:     riceReportUC,
		AuthUC:           authUC,
		PDF:              pdfGenerator,
		Exporter:         exporter,
		JWTSecret:        cfg.JWT.Secret,
		RolloverHour:     cfg.Report.DayRolloverHour,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
