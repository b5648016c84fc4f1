package progress

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	kbarticles "github.com/goliatone/go-kb/articles"
	kbprogress "github.com/goliatone/go-kb/progress"
)

// BunProgressRepository implements progress.Repository on top of bun.
type BunProgressRepository struct {
	db *bun.DB
}

var _ kbprogress.Repository = (*BunProgressRepository)(nil)

func NewBunProgressRepository(db *bun.DB) *BunProgressRepository {
	return &BunProgressRepository{db: db}
}

// MarkRead inserts the read marker, relying on the (user_id, article_id)
// unique constraint to make duplicate marks a no-op rather than an error.
func (r *BunProgressRepository) MarkRead(ctx context.Context, read *kbprogress.Read) error {
	_, err := r.db.NewInsert().
		Model(read).
		On("CONFLICT (user_id, article_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("progress: mark read: %w", err)
	}
	return nil
}

func (r *BunProgressRepository) CreateAttempt(ctx context.Context, attempt *kbprogress.QuizAttempt) (*kbprogress.QuizAttempt, error) {
	if _, err := r.db.NewInsert().Model(attempt).Exec(ctx); err != nil {
		return nil, fmt.Errorf("progress: record attempt: %w", err)
	}
	return attempt, nil
}

func (r *BunProgressRepository) ListReadArticles(ctx context.Context, userID uuid.UUID) ([]*kbarticles.Article, error) {
	records := []*kbarticles.Article{}
	err := r.db.NewSelect().
		Model(&records).
		Join("JOIN reads AS r ON r.article_id = a.id").
		Where("r.user_id = ?", userID).
		OrderExpr("a.modified_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("progress: list read articles: %w", err)
	}
	return records, nil
}

func (r *BunProgressRepository) ListAttempts(ctx context.Context, userID uuid.UUID) ([]*kbprogress.QuizAttempt, error) {
	attempts := []*kbprogress.QuizAttempt{}
	err := r.db.NewSelect().
		Model(&attempts).
		Where("qa.user_id = ?", userID).
		OrderExpr("qa.taken_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("progress: list attempts: %w", err)
	}
	return attempts, nil
}
