package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscribe/internal/port"
)

func newProvider(baseURL string) *OpenRouterProvider {
	return NewOpenRouterProvider(OpenRouterConfig{
		BaseURL:      baseURL,
		APIKey:       "sk-test",
		DefaultModel: "anthropic/claude-3.5-sonnet",
	})
}

const completionResponse = `{
	"model": "anthropic/claude-3.5-sonnet",
	"choices": [{"message": {"content": "# Generated docs"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 100, "completion_tokens": 200, "total_tokens": 300}
}`

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, false, payload["stream"])
		assert.Equal(t, 0.3, payload["temperature"])

		w.Write([]byte(completionResponse))
	}))
	defer srv.Close()

	result, err := newProvider(srv.URL).Generate(context.Background(), port.GenerationRequest{
		Prompt: "write docs",
		Model:  "anthropic/claude-3.5-sonnet",
	})
	require.NoError(t, err)

	assert.Equal(t, "# Generated docs", result.Content)
	assert.Equal(t, "stop", result.FinishReason)
	assert.Equal(t, 300, result.Usage.TotalTokens)
}

func TestGenerate_UnknownModelFallsBackToDefault(t *testing.T) {
	var requestedModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		requestedModel, _ = payload["model"].(string)
		w.Write([]byte(completionResponse))
	}))
	defer srv.Close()

	_, err := newProvider(srv.URL).Generate(context.Background(), port.GenerationRequest{
		Prompt: "write docs",
		Model:  "not-a-real-model",
	})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3.5-sonnet", requestedModel)
}

func TestGenerate_ClampsMaxTokens(t *testing.T) {
	var maxTokens float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		maxTokens, _ = payload["max_tokens"].(float64)
		w.Write([]byte(completionResponse))
	}))
	defer srv.Close()

	_, err := newProvider(srv.URL).Generate(context.Background(), port.GenerationRequest{
		Prompt:    "write docs",
		MaxTokens: 999999,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(maxTokensCap), maxTokens)
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusPaymentRequired, port.ErrQuotaExceeded},
		{http.StatusRequestTimeout, port.ErrGenerationTimeout},
		{http.StatusBadRequest, port.ErrInvalidRequest},
		{http.StatusInternalServerError, port.ErrGenerationFailed},
		{http.StatusTooManyRequests, port.ErrGenerationFailed},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		_, err := newProvider(srv.URL).Generate(context.Background(), port.GenerationRequest{Prompt: "x"})
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		srv.Close()
	}
}

func TestGenerate_TransportTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(completionResponse))
	}))
	defer srv.Close()

	p := newProvider(srv.URL)
	p.httpClient.Timeout = 20 * time.Millisecond

	_, err := p.Generate(context.Background(), port.GenerationRequest{Prompt: "x"})
	assert.ErrorIs(t, err, port.ErrGenerationTimeout)
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newProvider(srv.URL).Generate(context.Background(), port.GenerationRequest{Prompt: "x"})
	assert.ErrorIs(t, err, port.ErrGenerationFailed)
}

func TestListModels_FiltersCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"id":"anthropic/claude-3.5-sonnet","name":"Claude 3.5 Sonnet"},
			{"id":"mistralai/mistral-large","name":"Mistral Large"},
			{"id":"openai/gpt-4o","name":"GPT-4o"}
		]}`))
	}))
	defer srv.Close()

	models := newProvider(srv.URL).ListModels(context.Background())

	require.Len(t, models, 2)
	assert.Equal(t, "anthropic/claude-3.5-sonnet", models[0].ID)
	assert.Equal(t, "openai/gpt-4o", models[1].ID)
}

func TestListModels_FallbackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	models := newProvider(srv.URL).ListModels(context.Background())
	assert.Equal(t, fallbackModels, models)

	// Unreachable endpoint falls back the same way.
	srv.Close()
	models = newProvider(srv.URL).ListModels(context.Background())
	assert.Equal(t, fallbackModels, models)
}

func TestResolveModel(t *testing.T) {
	p := newProvider("http://unused")
	assert.Equal(t, "openai/gpt-4o", p.resolveModel("openai/gpt-4o"))
	assert.Equal(t, "anthropic/claude-3.5-sonnet", p.resolveModel("not-a-real-model"))
	assert.Equal(t, "anthropic/claude-3.5-sonnet", p.resolveModel(""))
}
