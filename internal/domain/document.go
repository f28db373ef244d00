package domain

import "time"

// Document pairs generated documentation text with its source repository
// metadata and export history.
type Document struct {
	ID             string           `json:"id"             db:"id"`
	Title          string           `json:"title"          db:"title"`
	Description    string           `json:"description"    db:"description"`
	GithubURL      string           `json:"githubUrl"      db:"github_url"`
	Content        string           `json:"content"        db:"content"`
	Format         string           `json:"format"         db:"format"`
	Metadata       DocumentMetadata `json:"metadata"       db:"metadata"`
	AIModel        string           `json:"aiModel"        db:"ai_model"`
	Status         string           `json:"status"         db:"status"` // processing, completed, failed
	ProcessingTime int64            `json:"processingTime" db:"processing_time"`
	Exports        []ExportEntry    `json:"exports"        db:"exports"`
	Tags           []string         `json:"tags"           db:"tags"`
	CreatedAt      time.Time        `json:"createdAt"      db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt"      db:"updated_at"`
}

// DocumentMetadata is the analyzer snapshot captured at generation time.
// Immutable after creation.
type DocumentMetadata struct {
	RepoName     string `json:"repoName"`
	RepoOwner    string `json:"repoOwner"`
	Branch       string `json:"branch"`
	Language     string `json:"language"`
	Framework    string `json:"framework"`
	ProjectType  string `json:"projectType"`
	Architecture string `json:"architecture"`
	Stars        int    `json:"stars"`
	FileCount    int    `json:"fileCount"`
	TotalSize    int64  `json:"totalSize"` // sum of blob sizes in bytes
}

// ExportEntry records one rendered output file. Entries are append-only.
type ExportEntry struct {
	Format    string    `json:"format"`
	URL       string    `json:"url"`
	FilePath  string    `json:"filePath"`
	Size      int64     `json:"size"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document status constants.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Export format constants.
const (
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
	FormatDocx     = "docx"
)
