package articles

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	kbarticles "github.com/goliatone/go-kb/articles"
)

// BunArticleRepository implements articles.Repository on top of bun.
type BunArticleRepository struct {
	db   *bun.DB
	repo repository.Repository[*kbarticles.Article]
}

var _ kbarticles.Repository = (*BunArticleRepository)(nil)

func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache constructs an article repository with
// optional read caching.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunArticleRepository {
	base := NewArticleRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunArticleRepository{db: db, repo: wrapped}
}

func (r *BunArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*kbarticles.Article, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "article", id.String())
	}
	return record, nil
}

func (r *BunArticleRepository) GetBySlug(ctx context.Context, slug string) (*kbarticles.Article, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "article", slug)
	}
	return record, nil
}

func (r *BunArticleRepository) List(ctx context.Context) ([]*kbarticles.Article, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.modified_at DESC")
		}),
	)
	return records, err
}

// Search runs a case-insensitive substring filter over title, tags, and
// body; when matchModifiedDate is set the stringified modified timestamp is
// matched as well. The caller guards the empty-query case.
func (r *BunArticleRepository) Search(ctx context.Context, query string, matchModifiedDate bool) ([]*kbarticles.Article, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				q = q.Where("LOWER(?TableAlias.title) LIKE ?", pattern).
					WhereOr("LOWER(?TableAlias.tags) LIKE ?", pattern).
					WhereOr("LOWER(?TableAlias.body) LIKE ?", pattern)
				if matchModifiedDate {
					q = q.WhereOr("LOWER(CAST(?TableAlias.modified_at AS TEXT)) LIKE ?", pattern)
				}
				return q
			})
			return q.OrderExpr("?TableAlias.modified_at DESC")
		}),
	)
	return records, err
}

// Apply flushes one synchronizer batch inside a single transaction so a
// mid-pass failure never leaves the article set partially updated.
func (r *BunArticleRepository) Apply(ctx context.Context, batch kbarticles.SyncBatch) error {
	if batch.Empty() {
		return nil
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, record := range batch.Creates {
			if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
				return fmt.Errorf("articles: insert %s: %w", record.Slug, err)
			}
		}
		for _, record := range batch.Updates {
			if _, err := tx.NewUpdate().Model(record).WherePK().Exec(ctx); err != nil {
				return fmt.Errorf("articles: update %s: %w", record.Slug, err)
			}
		}
		return nil
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &kbarticles.NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
