package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/handlers"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/repositories"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/services"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/shared/utils"
)

// @title SmartSales365 Reports API
// @version 1.0
// @description Sales dashboard and AI prediction exports (PDF / Excel)
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	logger := utils.InitLogger(cfg.LogLevel)
	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("🚀 Starting reports API")

	if cfg.JWTSecret == "" {
		logger.Warn().Msg("⚠️ JWT_SECRET is empty, every export request will be rejected")
	}

	// Init database
	db, err := database.NewDB(cfg.DatabaseURL, database.Options{Debug: !cfg.IsProduction()}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to connect to database")
	}
	defer db.Close()

	// Init repositories
	salesRepo := repositories.NewSalesRepo(db.GORM)
	predictionRepo := repositories.NewPredictionRepo(db.GORM)
	statsRepo := repositories.NewStatsRepo(db.GORM)

	// Init services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	exportService := services.NewExportService(salesRepo, predictionRepo, statsRepo, export.NewService(), logger, services.Options{
		CurrencyPrefix: cfg.CurrencyPrefix,
		BrandName:      cfg.BrandName,
		Location:       cfg.Location(),
	})

	// Init handlers
	reportHandler := handlers.NewReportHandler(exportService)
	healthHandler := handlers.NewHealthHandler(db.DB)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SmartSales365 Reports API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition",
	}))

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Report routes
	reports := app.Group("/reportes", auth.Authenticate(jwtService))
	reports.Get("/dashboard-ventas/exportar", reportHandler.ExportDashboard)
	reports.Get("/predicciones/exportar", reportHandler.ExportPredictions)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("Server stopped")
		}
	}()
	logger.Info().Msgf("✅ reports API running at :%s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logger.Info().Msg("Goodbye 👋")
}
