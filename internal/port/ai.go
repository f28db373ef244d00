package port

import "context"

// GenerationRequest is a single non-streaming completion request.
type GenerationRequest struct {
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Usage reports token consumption for one generation call.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// GenerationResult is the response from the text-generation backend.
type GenerationResult struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	Usage        Usage  `json:"usage"`
	FinishReason string `json:"finishReason"`
}

// ModelInfo describes one selectable model.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AIProvider abstracts the text-generation backend.
// Implementations can target OpenRouter or any compatible API.
type AIProvider interface {
	// DefaultModel returns the model id used when none is requested.
	DefaultModel() string

	// Generate sends one blocking completion request. No retries; a
	// transport failure or timeout is surfaced immediately.
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)

	// ListModels returns the selectable model catalog. Never fails: on
	// upstream errors a hardcoded fallback list is returned instead.
	ListModels(ctx context.Context) []ModelInfo
}
