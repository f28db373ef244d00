package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitscribe/internal/domain"
	"gitscribe/internal/port"
)

const documentColumns = `id, title, description, github_url, content, format,
	metadata, ai_model, status, processing_time, exports, tags, created_at, updated_at`

// PostgresStore implements port.DocumentStore on PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// Open connects to the database, verifies the connection, and applies
// embedded migrations.
func Open(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStore wraps an existing connection. Used by tests.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ port.DocumentStore = (*PostgresStore)(nil)

// Mode identifies this backend.
func (s *PostgresStore) Mode() string { return "postgres" }

// Close closes the database connection.
func (s *PostgresStore) Close() error { return s.db.Close() }

// Create inserts a new document row and returns the stored record.
func (s *PostgresStore) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	tags, err := json.Marshal(emptyIfNil(doc.Tags))
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	query := `INSERT INTO documents (id, title, description, github_url, content, format,
	              metadata, ai_model, status, processing_time, exports, tags)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '[]'::jsonb, $11)
	          RETURNING ` + documentColumns

	row := s.db.QueryRowContext(ctx, query,
		uuid.New().String(), doc.Title, doc.Description, doc.GithubURL, doc.Content, doc.Format,
		metadata, doc.AIModel, doc.Status, doc.ProcessingTime, tags,
	)

	stored, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return stored, nil
}

// Get returns a document by id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns one page of documents, newest first, with optional
// case-insensitive title/description search and exact status filter.
func (s *PostgresStore) List(ctx context.Context, q port.ListQuery) ([]domain.Document, *port.Pagination, error) {
	where := ""
	args := []interface{}{}
	argIdx := 1

	if q.Search != "" {
		where = fmt.Sprintf(" WHERE (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+q.Search+"%")
		argIdx++
	}
	if q.Status != "" {
		if where == "" {
			where = fmt.Sprintf(" WHERE status = $%d", argIdx)
		} else {
			where += fmt.Sprintf(" AND status = $%d", argIdx)
		}
		args = append(args, q.Status)
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents"+where, args...).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("count documents: %w", err)
	}

	query := fmt.Sprintf("SELECT "+documentColumns+" FROM documents"+where+
		" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, port.NewPagination(q.Page, q.Limit, total), nil
}

// AppendExport appends an export descriptor to the document's history.
// Exports are append-only; existing entries are never touched.
func (s *PostgresStore) AppendExport(ctx context.Context, id string, entry domain.ExportEntry) (*domain.Document, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshal export entry: %w", err)
	}

	query := `UPDATE documents
	          SET exports = exports || $2::jsonb, updated_at = NOW()
	          WHERE id = $1
	          RETURNING ` + documentColumns

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id, payload))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("append export: %w", err)
	}
	return doc, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var metadata, exports, tags []byte

	err := row.Scan(
		&doc.ID, &doc.Title, &doc.Description, &doc.GithubURL, &doc.Content, &doc.Format,
		&metadata, &doc.AIModel, &doc.Status, &doc.ProcessingTime, &exports, &tags,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	if err := json.Unmarshal(exports, &doc.Exports); err != nil {
		return nil, fmt.Errorf("unmarshal exports: %w", err)
	}
	if err := json.Unmarshal(tags, &doc.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return &doc, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
