package articles

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	kbarticles "github.com/goliatone/go-kb/articles"
)

// MemoryArticleRepository is an in-memory articles.Repository used by unit
// tests and ephemeral runs that do not want a SQL store.
type MemoryArticleRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*kbarticles.Article
	bySlug  map[string]uuid.UUID
	applied int
}

var _ kbarticles.Repository = (*MemoryArticleRepository)(nil)

func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{
		byID:   map[uuid.UUID]*kbarticles.Article{},
		bySlug: map[string]uuid.UUID{},
	}
}

func (r *MemoryArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*kbarticles.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &kbarticles.NotFoundError{Resource: "article", Key: id.String()}
	}
	return cloneArticle(record), nil
}

// GetBySlug retrieves an article by slug, returning NotFoundError when absent.
func (r *MemoryArticleRepository) GetBySlug(ctx context.Context, slug string) (*kbarticles.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[slug]
	if !ok {
		return nil, &kbarticles.NotFoundError{Resource: "article", Key: slug}
	}
	return cloneArticle(r.byID[id]), nil
}

func (r *MemoryArticleRepository) List(ctx context.Context) ([]*kbarticles.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(*kbarticles.Article) bool { return true }), nil
}

func (r *MemoryArticleRepository) Search(ctx context.Context, query string, matchModifiedDate bool) ([]*kbarticles.Article, error) {
	needle := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(a *kbarticles.Article) bool {
		if strings.Contains(strings.ToLower(a.Title), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(a.Tags), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(a.Body), needle) {
			return true
		}
		if matchModifiedDate && strings.Contains(strings.ToLower(a.ModifiedAt.String()), needle) {
			return true
		}
		return false
	}), nil
}

func (r *MemoryArticleRepository) Apply(ctx context.Context, batch kbarticles.SyncBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range batch.Creates {
		copied := cloneArticle(record)
		r.byID[copied.ID] = copied
		r.bySlug[copied.Slug] = copied.ID
	}
	for _, record := range batch.Updates {
		copied := cloneArticle(record)
		r.byID[copied.ID] = copied
		r.bySlug[copied.Slug] = copied.ID
	}
	if !batch.Empty() {
		r.applied++
	}
	return nil
}

// AppliedBatches reports how many non-empty batches were flushed, letting
// tests assert the single-flush contract.
func (r *MemoryArticleRepository) AppliedBatches() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.applied
}

func (r *MemoryArticleRepository) collect(match func(*kbarticles.Article) bool) []*kbarticles.Article {
	out := make([]*kbarticles.Article, 0, len(r.byID))
	for _, record := range r.byID {
		if match(record) {
			out = append(out, cloneArticle(record))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ModifiedAt.After(out[j].ModifiedAt)
	})
	return out
}

func cloneArticle(in *kbarticles.Article) *kbarticles.Article {
	if in == nil {
		return nil
	}
	out := *in
	out.TOC = append([]kbarticles.TOCEntry(nil), in.TOC...)
	out.Quiz = append([]kbarticles.QuizQuestion(nil), in.Quiz...)
	return &out
}
