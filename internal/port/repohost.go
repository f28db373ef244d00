package port

import "context"

// RepositoryInfo is the repository metadata record from the hosting API.
type RepositoryInfo struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	Language      string `json:"language"`
	Stars         int    `json:"stargazers_count"`
	Forks         int    `json:"forks_count"`
}

// TreeEntry is one node of a recursive repository file tree.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // blob or tree
	Size int64  `json:"size"`
}

// RepoHost abstracts the source-control hosting API (GitHub REST).
type RepoHost interface {
	// GetRepository fetches repository metadata.
	GetRepository(ctx context.Context, owner, repo string) (*RepositoryInfo, error)

	// GetTree fetches the recursive file tree at a branch.
	GetTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error)

	// GetReadme fetches the README body. Returns "" without error when the
	// repository has no README.
	GetReadme(ctx context.Context, owner, repo string) (string, error)

	// GetManifest fetches a file at the given path. Returns nil without
	// error when the file does not exist.
	GetManifest(ctx context.Context, owner, repo, path string) ([]byte, error)
}
