package handler

import (
	"github.com/gofiber/fiber/v3"

	"gitscribe/internal/domain"
	"gitscribe/internal/port"
	"gitscribe/internal/service"
)

// GenerateHandler handles documentation generation and model listing.
type GenerateHandler struct {
	generation *service.GenerationService
	ai         port.AIProvider
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(generation *service.GenerationService, ai port.AIProvider) *GenerateHandler {
	return &GenerateHandler{generation: generation, ai: ai}
}

// Register sets up generation routes.
func (h *GenerateHandler) Register(api fiber.Router) {
	ai := api.Group("/ai")
	ai.Post("/generate", h.Generate)
	ai.Get("/models", h.ListModels)
}

// Generate runs one blocking generation call and returns the stored
// document together with the raw AI result.
func (h *GenerateHandler) Generate(c fiber.Ctx) error {
	var body struct {
		RepoData *domain.RepoAnalysis    `json:"repoData"`
		Options  service.GenerateOptions `json:"options"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.RepoData == nil || body.RepoData.RepoName == "" || body.RepoData.RepoOwner == "" {
		return badRequest(c, "repoData with repoName and repoOwner is required")
	}

	doc, result, err := h.generation.Generate(c.Context(), body.RepoData, body.Options)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"document": doc,
		"aiResult": result,
	})
}

// ListModels returns the selectable model catalog.
func (h *GenerateHandler) ListModels(c fiber.Ctx) error {
	models := h.ai.ListModels(c.Context())
	return c.JSON(fiber.Map{
		"success": true,
		"models":  models,
		"default": h.ai.DefaultModel(),
	})
}
