package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitscribe/internal/port"
)

const (
	defaultTemperature = 0.3
	maxTokensCap       = 8192
	requestTimeout     = 30 * time.Second
)

// allowedModels is the fixed allow-list for generation requests. Unknown
// ids fall back to the configured default instead of failing.
var allowedModels = []string{
	"anthropic/claude-3.5-sonnet",
	"anthropic/claude-3.5-haiku",
	"openai/gpt-4o",
	"openai/gpt-4o-mini",
	"google/gemini-flash-1.5",
	"meta-llama/llama-3.1-70b-instruct",
	"deepseek/deepseek-chat",
}

// modelFilters selects which catalog entries the models endpoint exposes.
var modelFilters = []string{"claude", "gpt-4", "gemini", "llama", "deepseek"}

// fallbackModels is returned when the catalog request fails.
var fallbackModels = []port.ModelInfo{
	{ID: "anthropic/claude-3.5-sonnet", Name: "Claude 3.5 Sonnet"},
	{ID: "openai/gpt-4o-mini", Name: "GPT-4o Mini"},
	{ID: "google/gemini-flash-1.5", Name: "Gemini Flash 1.5"},
}

// OpenRouterConfig holds the configuration for the OpenRouter endpoint.
type OpenRouterConfig struct {
	BaseURL      string // e.g. https://openrouter.ai/api/v1
	APIKey       string
	DefaultModel string
}

// OpenRouterProvider implements port.AIProvider using the OpenRouter
// chat-completions API in non-streaming mode.
type OpenRouterProvider struct {
	cfg        OpenRouterConfig
	httpClient *http.Client
}

// NewOpenRouterProvider creates a new OpenRouter-backed AI provider.
func NewOpenRouterProvider(cfg OpenRouterConfig) *OpenRouterProvider {
	return &OpenRouterProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

var _ port.AIProvider = (*OpenRouterProvider)(nil)

// DefaultModel returns the configured default model id.
func (o *OpenRouterProvider) DefaultModel() string {
	return o.cfg.DefaultModel
}

// resolveModel applies the allow-list: known ids pass through, anything
// else falls back to the default model.
func (o *OpenRouterProvider) resolveModel(id string) string {
	for _, m := range allowedModels {
		if m == id {
			return id
		}
	}
	return o.cfg.DefaultModel
}

// Generate sends one blocking completion request and maps vendor error
// codes onto the port error taxonomy.
func (o *OpenRouterProvider) Generate(ctx context.Context, req port.GenerationRequest) (*port.GenerationResult, error) {
	model := o.resolveModel(req.Model)

	temperature := req.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 || maxTokens > maxTokensCap {
		maxTokens = maxTokensCap
	}

	payload := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
		"temperature": temperature,
		"max_tokens":  maxTokens,
		"stream":      false,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+"/chat/completions", bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	httpReq.Header.Set("X-Title", "Gitscribe")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, port.ErrGenerationTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, port.ErrGenerationTimeout
		}
		return nil, fmt.Errorf("openrouter request: %w", port.ErrGenerationFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("openrouter error response", "status", resp.StatusCode, "body", string(body))
		switch resp.StatusCode {
		case http.StatusPaymentRequired:
			return nil, port.ErrQuotaExceeded
		case http.StatusRequestTimeout:
			return nil, port.ErrGenerationTimeout
		case http.StatusBadRequest:
			return nil, port.ErrInvalidRequest
		default:
			return nil, fmt.Errorf("openrouter status %d: %w", resp.StatusCode, port.ErrGenerationFailed)
		}
	}

	var parsed struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", port.ErrGenerationFailed)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty completion: %w", port.ErrGenerationFailed)
	}

	if parsed.Model == "" {
		parsed.Model = model
	}

	return &port.GenerationResult{
		Content:      parsed.Choices[0].Message.Content,
		Model:        parsed.Model,
		FinishReason: parsed.Choices[0].FinishReason,
		Usage: port.Usage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		},
	}, nil
}

// ListModels queries the vendor catalog and filters it to the supported
// families. Any failure yields the hardcoded fallback list.
func (o *OpenRouterProvider) ListModels(ctx context.Context) []port.ModelInfo {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.BaseURL+"/models", nil)
	if err != nil {
		return fallbackModels
	}
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		slog.Warn("model catalog unavailable, using fallback", "error", err)
		return fallbackModels
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallbackModels
	}

	var parsed struct {
		Data []port.ModelInfo `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fallbackModels
	}

	var models []port.ModelInfo
	for _, m := range parsed.Data {
		for _, f := range modelFilters {
			if strings.Contains(strings.ToLower(m.ID), f) {
				models = append(models, m)
				break
			}
		}
	}
	if len(models) == 0 {
		return fallbackModels
	}
	return models
}
