package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gitscribe/internal/domain"
	"gitscribe/internal/port"
)

// GenerateOptions are the caller-facing knobs for one generation request.
type GenerateOptions struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	Style       string  `json:"style"`
	Extended    bool    `json:"extended"`
}

// GenerationService turns analyzer output into a stored document. Generation
// is synchronous: a failed call returns an error and persists nothing, so
// every stored document has status completed.
type GenerationService struct {
	ai    port.AIProvider
	store port.DocumentStore
}

// NewGenerationService creates a new generation service.
func NewGenerationService(ai port.AIProvider, store port.DocumentStore) *GenerationService {
	return &GenerationService{ai: ai, store: store}
}

// Generate builds the prompt, performs one blocking generation call, and
// persists the result.
func (s *GenerationService) Generate(ctx context.Context, analysis *domain.RepoAnalysis, opts GenerateOptions) (*domain.Document, *port.GenerationResult, error) {
	if analysis == nil || analysis.RepoName == "" || analysis.RepoOwner == "" {
		return nil, nil, port.ErrInvalidRepoURL
	}

	prompt := BuildPrompt(analysis, PromptOptions{Extended: opts.Extended, Style: opts.Style})

	start := time.Now()
	result, err := s.ai.Generate(ctx, port.GenerationRequest{
		Prompt:      prompt,
		Model:       opts.Model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		slog.Error("generation failed", "repo", analysis.RepoOwner+"/"+analysis.RepoName, "error", err)
		return nil, nil, err
	}
	elapsed := time.Since(start).Milliseconds()

	doc := &domain.Document{
		Title:       fmt.Sprintf("%s Documentation", analysis.RepoName),
		Description: fmt.Sprintf("AI-generated documentation for %s/%s", analysis.RepoOwner, analysis.RepoName),
		GithubURL:   fmt.Sprintf("https://github.com/%s/%s", analysis.RepoOwner, analysis.RepoName),
		Content:     result.Content,
		Format:      domain.FormatMarkdown,
		Metadata: domain.DocumentMetadata{
			RepoName:     analysis.RepoName,
			RepoOwner:    analysis.RepoOwner,
			Branch:       analysis.Branch,
			Language:     analysis.Language,
			Framework:    analysis.Framework,
			ProjectType:  analysis.ProjectType,
			Architecture: analysis.Architecture,
			Stars:        analysis.Stars,
			FileCount:    analysis.FileCount,
			TotalSize:    analysis.TotalSize,
		},
		AIModel:        result.Model,
		Status:         domain.StatusCompleted,
		ProcessingTime: elapsed,
		Tags:           deriveTags(analysis),
	}

	stored, err := s.store.Create(ctx, doc)
	if err != nil {
		return nil, nil, fmt.Errorf("store document: %w", err)
	}

	slog.Info("document generated",
		"id", stored.ID,
		"repo", analysis.RepoOwner+"/"+analysis.RepoName,
		"model", result.Model,
		"processing_ms", elapsed,
	)
	return stored, result, nil
}

// deriveTags builds a deduplicated lowercase tag list from language and
// framework.
func deriveTags(a *domain.RepoAnalysis) []string {
	var tags []string
	seen := map[string]bool{}
	for _, t := range []string{a.Language, a.Framework} {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}
