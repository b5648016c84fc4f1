package articles

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes the read-only article query layer consumed by the web edge.
type Service interface {
	// List returns every article ordered by modified timestamp, descending.
	List(ctx context.Context) ([]*Article, error)
	// GetByID returns the article with the given identity.
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	// GetBySlug returns the article with the given slug, or *NotFoundError.
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	// Search filters articles whose title, tags, or body contain the query
	// case-insensitively, newest first. A blank query returns an empty slice
	// without touching the store.
	Search(ctx context.Context, query string) ([]*Article, error)
}

// Repository abstracts article persistence for the query layer and the
// synchronizer. Apply flushes a full sync batch atomically.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context) ([]*Article, error)
	Search(ctx context.Context, query string, matchModifiedDate bool) ([]*Article, error)
	Apply(ctx context.Context, batch SyncBatch) error
}

// SyncBatch buffers the pending writes of one synchronizer pass so they can
// be committed as a unit.
type SyncBatch struct {
	Creates []*Article
	Updates []*Article
}

// Empty reports whether the batch holds no pending writes.
func (b SyncBatch) Empty() bool {
	return len(b.Creates) == 0 && len(b.Updates) == 0
}
