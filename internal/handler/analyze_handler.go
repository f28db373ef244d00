package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"gitscribe/internal/service"
)

// AnalyzeHandler handles repository analysis requests.
type AnalyzeHandler struct {
	analyzer *service.AnalyzerService
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyzer *service.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// Register sets up analysis routes.
func (h *AnalyzeHandler) Register(api fiber.Router) {
	api.Post("/github/analyze", h.Analyze)
}

// Analyze resolves a repository URL into its analysis bundle.
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var body struct {
		RepoURL string `json:"repoUrl"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(body.RepoURL) == "" {
		return badRequest(c, "repoUrl is required")
	}

	analysis, err := h.analyzer.Analyze(c.Context(), body.RepoURL)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": analysis})
}
