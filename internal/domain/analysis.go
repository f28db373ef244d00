package domain

// RepoAnalysis is the structured bundle of repository metadata, file list,
// README text, and manifest contents produced by the analyzer.
type RepoAnalysis struct {
	RepoName     string    `json:"repoName"`
	RepoOwner    string    `json:"repoOwner"`
	Branch       string    `json:"branch"`
	Description  string    `json:"description"`
	Stars        int       `json:"stars"`
	Forks        int       `json:"forks"`
	Language     string    `json:"language"`
	Framework    string    `json:"framework"`
	ProjectType  string    `json:"projectType"`
	Architecture string    `json:"architecture"`
	FileCount    int       `json:"fileCount"`
	TotalSize    int64     `json:"totalSize"`
	Files        []string  `json:"files"`
	Readme       string    `json:"readme,omitempty"`
	Manifest     *Manifest `json:"manifest,omitempty"`
}

// Manifest is a parsed package descriptor (package.json), used for
// framework and project-type detection.
type Manifest struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// DependencyKeys returns all dependency names, regular before dev.
func (m *Manifest) DependencyKeys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.Dependencies)+len(m.DevDependencies))
	for k := range m.Dependencies {
		keys = append(keys, k)
	}
	for k := range m.DevDependencies {
		keys = append(keys, k)
	}
	return keys
}
