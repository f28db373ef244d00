package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"gitscribe/internal/middleware"
	"gitscribe/internal/port"
)

// HealthHandler reports liveness and a configuration summary.
type HealthHandler struct {
	appName     string
	store       port.DocumentStore
	stats       *middleware.Stats
	githubToken bool
	upstreamKey bool
}

// NewHealthHandler creates a new health handler. Key presence is reported
// as booleans only; secrets never leave the process.
func NewHealthHandler(appName string, store port.DocumentStore, stats *middleware.Stats, githubToken, upstreamKey bool) *HealthHandler {
	return &HealthHandler{
		appName:     appName,
		store:       store,
		stats:       stats,
		githubToken: githubToken,
		upstreamKey: upstreamKey,
	}
}

// Register sets up the health route.
func (h *HealthHandler) Register(api fiber.Router) {
	api.Get("/health", h.Health)
}

// Health returns the liveness/config summary.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":        "healthy",
		"app":           h.appName,
		"store":         h.store.Mode(),
		"githubToken":   h.githubToken,
		"openrouterKey": h.upstreamKey,
		"requests":      h.stats.Snapshot(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
