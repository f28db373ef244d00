package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscribe/internal/port"
)

// fakeHost is a canned-response port.RepoHost.
type fakeHost struct {
	info     *port.RepositoryInfo
	infoErr  error
	tree     []port.TreeEntry
	treeErr  error
	readme   string
	manifest []byte
}

func (f *fakeHost) GetRepository(_ context.Context, _, _ string) (*port.RepositoryInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeHost) GetTree(_ context.Context, _, _, _ string) ([]port.TreeEntry, error) {
	return f.tree, f.treeErr
}

func (f *fakeHost) GetReadme(_ context.Context, _, _ string) (string, error) {
	return f.readme, nil
}

func (f *fakeHost) GetManifest(_ context.Context, _, _, _ string) ([]byte, error) {
	return f.manifest, nil
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		owner   string
		repo    string
		branch  string
		wantErr bool
	}{
		{name: "https", url: "https://github.com/octocat/Hello-World", owner: "octocat", repo: "Hello-World"},
		{name: "trailing slash", url: "https://github.com/octocat/Hello-World/", owner: "octocat", repo: "Hello-World"},
		{name: "git suffix", url: "https://github.com/octocat/Hello-World.git", owner: "octocat", repo: "Hello-World"},
		{name: "tree branch", url: "https://github.com/octocat/Hello-World/tree/dev", owner: "octocat", repo: "Hello-World", branch: "dev"},
		{name: "bare host path", url: "github.com/octocat/Hello-World", owner: "octocat", repo: "Hello-World"},
		{name: "no repo", url: "https://github.com/octocat", wantErr: true},
		{name: "not github", url: "https://gitlab.com/octocat/Hello-World", wantErr: true},
		{name: "garbage", url: "not a url at all", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, branch, err := ParseRepoURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, port.ErrInvalidRepoURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
			assert.Equal(t, tt.branch, branch)
		})
	}
}

func TestAnalyze_HelloWorld(t *testing.T) {
	host := &fakeHost{
		info: &port.RepositoryInfo{
			Name:          "Hello-World",
			Description:   "My first repository",
			DefaultBranch: "master",
			Language:      "C",
			Stars:         80,
		},
		tree: []port.TreeEntry{
			{Path: "README", Type: "blob", Size: 13},
			{Path: "src", Type: "tree"},
			{Path: "src/main.c", Type: "blob", Size: 120},
		},
		readme: "Hello World!",
	}
	svc := NewAnalyzerService(host)

	analysis, err := svc.Analyze(context.Background(), "https://github.com/octocat/Hello-World")
	require.NoError(t, err)

	assert.Equal(t, "Hello-World", analysis.RepoName)
	assert.Equal(t, "octocat", analysis.RepoOwner)
	assert.Equal(t, "master", analysis.Branch)
	assert.Equal(t, "C", analysis.Language)
	assert.Equal(t, 2, analysis.FileCount) // trees are not files
	assert.Equal(t, int64(133), analysis.TotalSize)
	assert.Equal(t, "Hello World!", analysis.Readme)
	assert.Nil(t, analysis.Manifest)
}

func TestAnalyze_LanguageFallsBackToExtensionCount(t *testing.T) {
	host := &fakeHost{
		info: &port.RepositoryInfo{Name: "mixed", DefaultBranch: "main"},
		tree: []port.TreeEntry{
			{Path: "a.py", Type: "blob"},
			{Path: "b.go", Type: "blob"},
			{Path: "c.go", Type: "blob"},
		},
	}
	svc := NewAnalyzerService(host)

	analysis, err := svc.Analyze(context.Background(), "https://github.com/x/mixed")
	require.NoError(t, err)
	assert.Equal(t, "Go", analysis.Language)
}

func TestAnalyze_ManifestDrivesFrameworkDetection(t *testing.T) {
	host := &fakeHost{
		info:     &port.RepositoryInfo{Name: "webapp", DefaultBranch: "main"},
		tree:     []port.TreeEntry{{Path: "package.json", Type: "blob"}},
		manifest: []byte(`{"name":"webapp","dependencies":{"react":"^18.0.0","express":"^4.0.0"}}`),
	}
	svc := NewAnalyzerService(host)

	analysis, err := svc.Analyze(context.Background(), "https://github.com/x/webapp")
	require.NoError(t, err)

	// React outranks Express in the ordered indicator list.
	assert.Equal(t, "React", analysis.Framework)
	assert.Equal(t, "web-application", analysis.ProjectType)
	assert.Equal(t, "component-based", analysis.Architecture)
}

func TestAnalyze_MalformedManifestIsNonFatal(t *testing.T) {
	host := &fakeHost{
		info:     &port.RepositoryInfo{Name: "broken", DefaultBranch: "main"},
		tree:     []port.TreeEntry{{Path: "package.json", Type: "blob"}},
		manifest: []byte(`{not json`),
	}
	svc := NewAnalyzerService(host)

	analysis, err := svc.Analyze(context.Background(), "https://github.com/x/broken")
	require.NoError(t, err)
	assert.Nil(t, analysis.Manifest)
}

func TestAnalyze_UpstreamErrorsPropagate(t *testing.T) {
	host := &fakeHost{infoErr: port.ErrRepoNotFound}
	svc := NewAnalyzerService(host)

	_, err := svc.Analyze(context.Background(), "https://github.com/x/gone")
	assert.ErrorIs(t, err, port.ErrRepoNotFound)
}

func TestAnalyze_InvalidURL(t *testing.T) {
	svc := NewAnalyzerService(&fakeHost{})
	_, err := svc.Analyze(context.Background(), "ftp://example.com/whatever")
	assert.ErrorIs(t, err, port.ErrInvalidRepoURL)
}

func TestDetectLanguage_TieBreaksTowardFirstSeen(t *testing.T) {
	// One .py and one .go: python appears first, so it wins the tie.
	assert.Equal(t, "Python", detectLanguage([]string{"a.py", "b.go"}))
	assert.Equal(t, "Go", detectLanguage([]string{"b.go", "a.py"}))
	assert.Equal(t, "", detectLanguage([]string{"LICENSE", "Makefile"}))
}

func TestDetect_FileSubstringIndicators(t *testing.T) {
	files := []string{"manage.py", "requirements.txt"}
	assert.Equal(t, "Django", detect(frameworkIndicators, nil, files))

	files = []string{"go.mod", "internal/server/server.go"}
	assert.Equal(t, "Go", detect(frameworkIndicators, nil, files))
	assert.Equal(t, "layered", detect(architectureIndicators, nil, files))

	assert.Equal(t, "", detect(frameworkIndicators, nil, []string{"notes.txt"}))
}
