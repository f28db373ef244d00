package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitscribe/internal/docx"
	"gitscribe/internal/domain"
	"gitscribe/internal/markdown"
	"gitscribe/internal/port"
)

const pdfNote = "rendered as styled HTML; client-side conversion is required for a true PDF"

// ExportService renders stored documents into downloadable files and keeps
// the export directory within its retention window.
type ExportService struct {
	store     port.DocumentStore
	dir       string
	retention time.Duration
}

// NewExportService creates an export service writing into dir.
func NewExportService(store port.DocumentStore, dir string, retention time.Duration) (*ExportService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &ExportService{store: store, dir: dir, retention: retention}, nil
}

// Dir returns the export directory path.
func (s *ExportService) Dir() string { return s.dir }

// Export renders the document into the requested format, writes the file,
// and appends a descriptor to the document's export history. A missing
// document writes nothing.
func (s *ExportService) Export(ctx context.Context, documentID, format string) (*domain.ExportEntry, *domain.Document, error) {
	doc, err := s.store.Get(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	var data []byte
	var ext, note string

	switch format {
	case domain.FormatMarkdown:
		data = []byte(doc.Content)
		ext = ".md"
	case domain.FormatPDF:
		nodes := markdown.Parse(doc.Content)
		data = []byte(markdown.RenderHTML(doc.Title, nodes))
		ext = ".html"
		note = pdfNote
	case domain.FormatDocx:
		nodes := markdown.Parse(doc.Content)
		data, err = docx.Build(nodes)
		if err != nil {
			return nil, nil, fmt.Errorf("build docx: %w", port.ErrExportFailed)
		}
		ext = ".docx"
	default:
		return nil, nil, port.ErrUnknownFormat
	}

	name := fmt.Sprintf("%s-%s%s", slugify(doc.Metadata.RepoName), uuid.New().String()[:8], ext)
	fullPath := filepath.Join(s.dir, name)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		slog.Error("export write failed", "path", fullPath, "error", err)
		return nil, nil, fmt.Errorf("write export file: %w", port.ErrExportFailed)
	}

	entry := domain.ExportEntry{
		Format:    format,
		URL:       "/api/export/files/" + name,
		FilePath:  fullPath,
		Size:      int64(len(data)),
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}

	updated, err := s.store.AppendExport(ctx, documentID, entry)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("export written", "document_id", documentID, "format", format, "size", entry.Size)
	return &entry, updated, nil
}

// CleanupSweep deletes files in the export directory older than the
// retention window. Document records are untouched; their export entries
// simply point at files that no longer exist.
func (s *ExportService) CleanupSweep() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read export dir: %w", err)
	}

	cutoff := time.Now().Add(-s.retention)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				slog.Warn("cleanup remove failed", "file", e.Name(), "error", err)
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		slog.Info("export cleanup", "removed", removed)
	}
	return removed, nil
}

// StartSweeper runs CleanupSweep on a fixed interval until ctx is done.
func (s *ExportService) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CleanupSweep(); err != nil {
				slog.Error("export cleanup failed", "error", err)
			}
		}
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9-]+`)

func slugify(s string) string {
	s = slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "document"
	}
	return s
}
