package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gitscribe/internal/domain"
	"gitscribe/internal/port"
)

// MemoryStore implements port.DocumentStore on a process-local slice.
// Selected at startup when no database is configured; all data is lost on
// restart.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   []domain.Document
	nextID int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

var _ port.DocumentStore = (*MemoryStore)(nil)

// Mode identifies this backend.
func (s *MemoryStore) Mode() string { return "memory" }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// Create assigns a counter id and timestamps and appends the document.
func (s *MemoryStore) Create(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *doc
	stored.ID = fmt.Sprintf("mem-%d", s.nextID)
	s.nextID++

	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Exports == nil {
		stored.Exports = []domain.ExportEntry{}
	}
	if stored.Tags == nil {
		stored.Tags = []string{}
	}

	s.docs = append(s.docs, stored)

	out := stored
	return &out, nil
}

// Get returns a copy of the document with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.docs {
		if s.docs[i].ID == id {
			out := s.docs[i]
			return &out, nil
		}
	}
	return nil, port.ErrDocumentNotFound
}

// List filters, sorts newest first, and slices one page.
func (s *MemoryStore) List(_ context.Context, q port.ListQuery) ([]domain.Document, *port.Pagination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(q.Search)
	matched := make([]domain.Document, 0)
	for _, d := range s.docs {
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Title), search) &&
			!strings.Contains(strings.ToLower(d.Description), search) {
			continue
		}
		if q.Status != "" && d.Status != q.Status {
			continue
		}
		matched = append(matched, d)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	return matched[start:end], port.NewPagination(q.Page, q.Limit, total), nil
}

// AppendExport appends an export descriptor to the document's history.
func (s *MemoryStore) AppendExport(_ context.Context, id string, entry domain.ExportEntry) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.docs {
		if s.docs[i].ID == id {
			s.docs[i].Exports = append(s.docs[i].Exports, entry)
			s.docs[i].UpdatedAt = time.Now().UTC()
			out := s.docs[i]
			return &out, nil
		}
	}
	return nil, port.ErrDocumentNotFound
}
