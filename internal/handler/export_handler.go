package handler

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	"gitscribe/internal/domain"
	"gitscribe/internal/service"
)

// ExportHandler handles export rendering and file downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Register sets up export routes.
func (h *ExportHandler) Register(api fiber.Router) {
	export := api.Group("/export")
	export.Get("/files/:name", h.Download)
	export.Post("/:documentId", h.Export)
}

// Export renders a document into the requested format.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	var body struct {
		Format string `json:"format"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Format == "" {
		body.Format = domain.FormatMarkdown
	}

	entry, doc, err := h.exports.Export(c.Context(), c.Params("documentId"), body.Format)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"export":   entry,
		"document": doc,
	})
}

// Download serves a rendered export file. The name is reduced to its base
// so traversal outside the export directory is impossible.
func (h *ExportHandler) Download(c fiber.Ctx) error {
	name := filepath.Base(c.Params("name"))
	fullPath := filepath.Join(h.exports.Dir(), name)

	if _, err := os.Stat(fullPath); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "file not found"})
	}
	return c.SendFile(fullPath)
}
