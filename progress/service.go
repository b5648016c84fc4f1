package progress

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-kb/articles"
)

// Service tracks per-user reading progress and quiz attempts.
type Service interface {
	// MarkRead records that the user opened the article. Marking the same
	// pair twice is a no-op, never an error.
	MarkRead(ctx context.Context, userID, articleID uuid.UUID) error
	// RecordAttempt appends one scored quiz submission (0-100).
	RecordAttempt(ctx context.Context, userID, articleID uuid.UUID, score int) (*QuizAttempt, error)
	// Profile aggregates the user's read articles (article modified_at
	// descending), quiz attempts (taken_at descending), and the rounded mean
	// attempt score (0 when no attempts exist).
	Profile(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

// Repository abstracts progress persistence. ListReadArticles returns the
// distinct articles the user has a Read record for, ordered by article
// modified timestamp descending; ListAttempts orders by taken_at descending.
type Repository interface {
	MarkRead(ctx context.Context, read *Read) error
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) (*QuizAttempt, error)
	ListReadArticles(ctx context.Context, userID uuid.UUID) ([]*articles.Article, error)
	ListAttempts(ctx context.Context, userID uuid.UUID) ([]*QuizAttempt, error)
}
