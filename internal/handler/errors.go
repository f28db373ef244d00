package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"gitscribe/internal/port"
)

// errorMapping pairs a sentinel error with its HTTP status and the
// user-facing message. Nothing upstream-specific reaches the client.
type errorMapping struct {
	sentinel error
	status   int
	message  string
}

var errorMappings = []errorMapping{
	{port.ErrInvalidRepoURL, fiber.StatusBadRequest, "invalid repository URL, expected https://github.com/owner/repo"},
	{port.ErrRepoNotFound, fiber.StatusNotFound, "repository not found, it may be private or misspelled"},
	{port.ErrRateLimited, fiber.StatusTooManyRequests, "GitHub rate limit exceeded, set GITHUB_TOKEN to raise the limit or retry later"},
	{port.ErrAuthFailed, fiber.StatusUnauthorized, "GitHub authentication failed, check the configured access token"},
	{port.ErrUpstream, fiber.StatusBadGateway, "GitHub request failed, try again later"},
	{port.ErrQuotaExceeded, fiber.StatusPaymentRequired, "OpenRouter credits exhausted, add credits to your account"},
	{port.ErrGenerationTimeout, fiber.StatusGatewayTimeout, "the model took too long to respond, try again or pick a faster model"},
	{port.ErrInvalidRequest, fiber.StatusBadRequest, "the generation request was rejected by the model provider"},
	{port.ErrGenerationFailed, fiber.StatusBadGateway, "documentation generation failed, try again"},
	{port.ErrDocumentNotFound, fiber.StatusNotFound, "document not found"},
	{port.ErrUnknownFormat, fiber.StatusBadRequest, "unknown export format, use markdown, pdf, or docx"},
	{port.ErrExportFailed, fiber.StatusInternalServerError, "export failed"},
}

// fail maps an error onto the {success:false, error} response contract.
// Unrecognized errors are logged server-side and reported generically.
func fail(c fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			return c.Status(m.status).JSON(fiber.Map{"success": false, "error": m.message})
		}
	}
	slog.Error("unhandled error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "internal server error"})
}

// badRequest reports a request-body validation failure.
func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": msg})
}
