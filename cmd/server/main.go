package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"gitscribe/internal/adapter/ai"
	"gitscribe/internal/adapter/github"
	"gitscribe/internal/adapter/store"
	"gitscribe/internal/handler"
	"gitscribe/internal/middleware"
	"gitscribe/internal/port"
	"gitscribe/internal/service"
	"gitscribe/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	cfg := config.Load()

	slog.Info("starting gitscribe",
		"port", cfg.Port,
		"github_api", cfg.GitHubAPIURL,
		"openrouter", cfg.OpenRouterBaseURL,
		"default_model", cfg.DefaultModel,
	)

	// ── Document store ───────────────────────────────────────────────────
	// One decision at startup: Postgres when configured and reachable,
	// in-memory otherwise. Never switched afterwards.
	var docStore port.DocumentStore
	if cfg.DatabaseURL != "" {
		pgStore, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			slog.Warn("database unavailable, falling back to in-memory store", "error", err)
			docStore = store.NewMemoryStore()
		} else {
			docStore = pgStore
		}
	} else {
		slog.Info("no DATABASE_URL configured, using in-memory store")
		docStore = store.NewMemoryStore()
	}
	defer docStore.Close()

	// ── Adapters ─────────────────────────────────────────────────────────
	githubClient := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken)
	openrouter := ai.NewOpenRouterProvider(ai.OpenRouterConfig{
		BaseURL:      cfg.OpenRouterBaseURL,
		APIKey:       cfg.OpenRouterAPIKey,
		DefaultModel: cfg.DefaultModel,
	})

	// ── Services ─────────────────────────────────────────────────────────
	analyzerService := service.NewAnalyzerService(githubClient)
	generationService := service.NewGenerationService(openrouter, docStore)

	retention := time.Duration(cfg.ExportRetentionHours) * time.Hour
	exportService, err := service.NewExportService(docStore, cfg.ExportDir, retention)
	if err != nil {
		slog.Error("failed to prepare export directory", "error", err)
		os.Exit(1)
	}

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go exportService.StartSweeper(sweepCtx, time.Hour)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second, // generation holds the response up to the upstream timeout
	})

	stats := middleware.NewStats()

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))
	app.Use(stats.Middleware())

	// ── Routes ───────────────────────────────────────────────────────────
	api := app.Group("/api")

	healthHandler := handler.NewHealthHandler(cfg.AppName, docStore, stats,
		cfg.GitHubToken != "", cfg.OpenRouterAPIKey != "")
	healthHandler.Register(api)

	analyzeHandler := handler.NewAnalyzeHandler(analyzerService)
	analyzeHandler.Register(api)

	generateHandler := handler.NewGenerateHandler(generationService, openrouter)
	generateHandler.Register(api)

	docsHandler := handler.NewDocsHandler(docStore)
	docsHandler.Register(api)

	exportHandler := handler.NewExportHandler(exportService)
	exportHandler.Register(api)

	// Catch-all for unmatched routes.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "route not found",
		})
	})

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port, "store", docStore.Mode())
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
