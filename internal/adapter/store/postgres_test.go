package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscribe/internal/domain"
	"gitscribe/internal/port"
)

var documentRowColumns = []string{
	"id", "title", "description", "github_url", "content", "format",
	"metadata", "ai_model", "status", "processing_time", "exports", "tags",
	"created_at", "updated_at",
}

func documentRow(id string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(documentRowColumns).AddRow(
		id, "Demo Documentation", "docs for demo", "https://github.com/x/demo", "# Demo", "markdown",
		[]byte(`{"repoName":"demo","repoOwner":"x"}`), "anthropic/claude-3.5-sonnet", "completed", int64(1200),
		[]byte(`[]`), []byte(`["go"]`), now, now,
	)
}

func TestPostgresStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresStore(db)

	mock.ExpectQuery("INSERT INTO documents").
		WillReturnRows(documentRow("11111111-1111-1111-1111-111111111111"))

	doc, err := s.Create(context.Background(), &domain.Document{
		Title:     "Demo Documentation",
		GithubURL: "https://github.com/x/demo",
		Content:   "# Demo",
		Format:    domain.FormatMarkdown,
		Status:    domain.StatusCompleted,
		Metadata:  domain.DocumentMetadata{RepoName: "demo", RepoOwner: "x"},
		Tags:      []string{"go"},
	})
	require.NoError(t, err)

	assert.Equal(t, "11111111-1111-1111-1111-111111111111", doc.ID)
	assert.Equal(t, "demo", doc.Metadata.RepoName)
	assert.Equal(t, []string{"go"}, doc.Tags)
	assert.Empty(t, doc.Exports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresStore(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id").
			WithArgs("doc-1").
			WillReturnRows(documentRow("doc-1"))

		doc, err := s.Get(context.Background(), "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(documentRowColumns))

		_, err := s.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, port.ErrDocumentNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM documents")).
		WithArgs("%demo%", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE .+ ORDER BY created_at DESC").
		WithArgs("%demo%", "completed", 2, 2).
		WillReturnRows(documentRow("doc-1"))

	docs, pagination, err := s.List(context.Background(), port.ListQuery{
		Page: 2, Limit: 2, Search: "demo", Status: "completed",
	})
	require.NoError(t, err)

	assert.Len(t, docs, 1)
	assert.Equal(t, 5, pagination.TotalCount)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasNextPage)
	assert.True(t, pagination.HasPrevPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendExport(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresStore(db)

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		row := sqlmock.NewRows(documentRowColumns).AddRow(
			"doc-1", "Demo Documentation", "", "u", "# Demo", "markdown",
			[]byte(`{}`), "", "completed", int64(0),
			[]byte(`[{"format":"markdown","url":"/api/export/files/a.md","filePath":"/tmp/a.md","size":6,"createdAt":"2026-08-23T00:00:00Z"}]`),
			[]byte(`[]`), now, now,
		)
		mock.ExpectQuery("UPDATE documents").
			WillReturnRows(row)

		doc, err := s.AppendExport(context.Background(), "doc-1", domain.ExportEntry{
			Format: domain.FormatMarkdown, URL: "/api/export/files/a.md", FilePath: "/tmp/a.md", Size: 6,
		})
		require.NoError(t, err)
		require.Len(t, doc.Exports, 1)
		assert.Equal(t, "markdown", doc.Exports[0].Format)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE documents").
			WillReturnRows(sqlmock.NewRows(documentRowColumns))

		_, err := s.AppendExport(context.Background(), "missing", domain.ExportEntry{Format: "markdown"})
		assert.ErrorIs(t, err, port.ErrDocumentNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
