package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"gitscribe/internal/port"
)

const maxPageSize = 100

// DocsHandler handles document listing and retrieval.
type DocsHandler struct {
	store port.DocumentStore
}

// NewDocsHandler creates a new documents handler.
func NewDocsHandler(store port.DocumentStore) *DocsHandler {
	return &DocsHandler{store: store}
}

// Register sets up document routes.
func (h *DocsHandler) Register(api fiber.Router) {
	docs := api.Group("/docs")
	docs.Get("/", h.List)
	docs.Get("/:id", h.Get)
}

// List returns a page of documents with optional search and status filter.
func (h *DocsHandler) List(c fiber.Ctx) error {
	q := port.ListQuery{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}

	docs, pagination, err := h.store.List(c.Context(), q)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"documents":  docs,
		"pagination": pagination,
	})
}

// Get returns a single document by id.
func (h *DocsHandler) Get(c fiber.Ctx) error {
	doc, err := h.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "document": doc})
}

// queryInt reads an integer query param with a default value.
func queryInt(c fiber.Ctx, key string, defaultVal int) int {
	v := c.Query(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
