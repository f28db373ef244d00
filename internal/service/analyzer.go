package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"gitscribe/internal/domain"
	"gitscribe/internal/port"
)

const manifestPath = "package.json"

// repoURLPattern accepts host/owner/repo URLs with an optional /tree/branch
// suffix and an optional .git extension.
var repoURLPattern = regexp.MustCompile(`github\.com[/:]([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)(?:\.git)?(?:/tree/([A-Za-z0-9_./-]+))?/?$`)

// ParseRepoURL extracts owner, repo, and optional branch from a GitHub URL.
func ParseRepoURL(raw string) (owner, repo, branch string, err error) {
	m := repoURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", "", "", port.ErrInvalidRepoURL
	}
	return m[1], m[2], m[3], nil
}

// AnalyzerService resolves a repository URL into a RepoAnalysis by querying
// the hosting API and running the detection heuristics.
type AnalyzerService struct {
	host port.RepoHost
}

// NewAnalyzerService creates a new analyzer.
func NewAnalyzerService(host port.RepoHost) *AnalyzerService {
	return &AnalyzerService{host: host}
}

// Analyze fetches repository metadata, the recursive file tree, the README,
// and the manifest, then derives language, framework, project type, and
// architecture. Missing README or manifest are non-fatal.
func (s *AnalyzerService) Analyze(ctx context.Context, rawURL string) (*domain.RepoAnalysis, error) {
	owner, repo, branch, err := ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}

	info, err := s.host.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetch repository: %w", err)
	}

	if branch == "" {
		branch = info.DefaultBranch
	}
	if branch == "" {
		branch = "main"
	}

	tree, err := s.host.GetTree(ctx, owner, repo, branch)
	if err != nil {
		return nil, fmt.Errorf("fetch tree: %w", err)
	}

	var files []string
	var totalSize int64
	for _, e := range tree {
		if e.Type != "blob" {
			continue
		}
		files = append(files, e.Path)
		totalSize += e.Size
	}

	readme, err := s.host.GetReadme(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetch readme: %w", err)
	}

	manifest := s.fetchManifest(ctx, owner, repo)

	language := info.Language
	if language == "" {
		language = detectLanguage(files)
	}

	return &domain.RepoAnalysis{
		RepoName:     info.Name,
		RepoOwner:    owner,
		Branch:       branch,
		Description:  info.Description,
		Stars:        info.Stars,
		Forks:        info.Forks,
		Language:     language,
		Framework:    detect(frameworkIndicators, manifest, files),
		ProjectType:  detect(projectTypeIndicators, manifest, files),
		Architecture: detect(architectureIndicators, manifest, files),
		FileCount:    len(files),
		TotalSize:    totalSize,
		Files:        files,
		Readme:       readme,
		Manifest:     manifest,
	}, nil
}

// fetchManifest reads and parses package.json. Absence or malformed JSON
// both yield nil; detection then runs on file paths alone.
func (s *AnalyzerService) fetchManifest(ctx context.Context, owner, repo string) *domain.Manifest {
	raw, err := s.host.GetManifest(ctx, owner, repo, manifestPath)
	if err != nil || raw == nil {
		return nil
	}

	var m domain.Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		slog.Warn("manifest parse failed", "owner", owner, "repo", repo, "error", err)
		return nil
	}
	return &m
}
