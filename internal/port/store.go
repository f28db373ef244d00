package port

import (
	"context"

	"gitscribe/internal/domain"
)

// ListQuery holds pagination and filter parameters for document listing.
type ListQuery struct {
	Page   int
	Limit  int
	Search string // case-insensitive substring match on title or description
	Status string // exact match
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination computes page metadata for a total count. Both store
// implementations use it so the contract stays identical.
func NewPagination(page, limit, total int) *Pagination {
	totalPages := (total + limit - 1) / limit
	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// DocumentStore persists generated documents. The backing implementation is
// chosen once at startup (Postgres when DATABASE_URL is configured and
// reachable, in-memory otherwise) and never switched afterwards.
type DocumentStore interface {
	// Create assigns an id and timestamps and stores the document.
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)

	// Get returns a document by id, or ErrDocumentNotFound.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns one page of documents sorted by creation time descending.
	List(ctx context.Context, q ListQuery) ([]domain.Document, *Pagination, error)

	// AppendExport appends an export descriptor to a document's history.
	AppendExport(ctx context.Context, id string, entry domain.ExportEntry) (*domain.Document, error)

	// Mode identifies the backing implementation ("postgres" or "memory").
	Mode() string

	// Close releases backing resources.
	Close() error
}
