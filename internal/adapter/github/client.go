package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitscribe/internal/port"
)

// Client implements port.RepoHost against the GitHub REST API.
// The token is optional; without one, private repositories read as 404 and
// the unauthenticated rate limit applies.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a GitHub API client. baseURL is normally
// https://api.github.com; tests point it at a local server.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

var _ port.RepoHost = (*Client)(nil)

// GetRepository fetches repository metadata.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*port.RepositoryInfo, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	var info port.RepositoryInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode repository: %w", port.ErrUpstream)
	}
	return &info, nil
}

// GetTree fetches the recursive file tree at a branch.
func (c *Client) GetTree(ctx context.Context, owner, repo, branch string) ([]port.TreeEntry, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1", owner, repo, branch), "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Tree      []port.TreeEntry `json:"tree"`
		Truncated bool             `json:"truncated"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode tree: %w", port.ErrUpstream)
	}
	return resp.Tree, nil
}

// GetReadme fetches the README as raw text. A missing README is not an
// error; it returns "".
func (c *Client) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/readme", owner, repo), "application/vnd.github.raw+json")
	if err != nil {
		if errors.Is(err, port.ErrRepoNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(body), nil
}

// GetManifest fetches a file's raw content at the given path. A missing file
// is not an error; it returns nil.
func (c *Client) GetManifest(ctx context.Context, owner, repo, path string) ([]byte, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path), "application/vnd.github.raw+json")
	if err != nil {
		if errors.Is(err, port.ErrRepoNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return body, nil
}

// get issues one GET and maps GitHub's access-control statuses onto the
// port error taxonomy: 404 not found, 403 rate limited, 401 bad credentials.
func (c *Client) get(ctx context.Context, path, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", port.ErrUpstream)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, port.ErrRepoNotFound
	case http.StatusForbidden:
		return nil, port.ErrRateLimited
	case http.StatusUnauthorized:
		return nil, port.ErrAuthFailed
	default:
		return nil, fmt.Errorf("github status %d: %w", resp.StatusCode, port.ErrUpstream)
	}
}
