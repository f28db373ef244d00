package port

import "errors"

// Sentinel errors used across ports. Handlers map these to HTTP statuses
// and user-facing messages; nothing upstream-specific crosses this boundary.
var (
	ErrInvalidRepoURL = errors.New("invalid repository URL")
	ErrRepoNotFound   = errors.New("repository not found")
	ErrRateLimited    = errors.New("rate limit exceeded")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrUpstream       = errors.New("upstream request failed")

	ErrQuotaExceeded     = errors.New("generation quota exceeded")
	ErrGenerationTimeout = errors.New("generation timed out")
	ErrInvalidRequest    = errors.New("invalid generation request")
	ErrGenerationFailed  = errors.New("generation failed")

	ErrDocumentNotFound = errors.New("document not found")
	ErrExportFailed     = errors.New("export failed")
	ErrUnknownFormat    = errors.New("unknown export format")
)
