package progress

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/goliatone/go-kb/internal/logging"
	"github.com/goliatone/go-kb/pkg/interfaces"
	kbprogress "github.com/goliatone/go-kb/progress"
)

// ServiceConfig configures the progress service.
type ServiceConfig struct {
	Logger interfaces.Logger
}

// ProgressService implements progress.Service over a repository.
type ProgressService struct {
	repo   kbprogress.Repository
	logger interfaces.Logger
}

var _ kbprogress.Service = (*ProgressService)(nil)

// NewService constructs the progress service.
func NewService(repo kbprogress.Repository, cfg ServiceConfig) *ProgressService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &ProgressService{repo: repo, logger: logger}
}

// MarkRead records that the user opened the article. Duplicate marks are
// no-ops by contract, so racing requests are safe.
func (s *ProgressService) MarkRead(ctx context.Context, userID, articleID uuid.UUID) error {
	if userID == uuid.Nil {
		return kbprogress.ErrUserRequired
	}
	if articleID == uuid.Nil {
		return kbprogress.ErrArticleRequired
	}

	return s.repo.MarkRead(ctx, &kbprogress.Read{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: articleID,
	})
}

// RecordAttempt appends one scored submission; every attempt is retained.
func (s *ProgressService) RecordAttempt(ctx context.Context, userID, articleID uuid.UUID, score int) (*kbprogress.QuizAttempt, error) {
	if userID == uuid.Nil {
		return nil, kbprogress.ErrUserRequired
	}
	if articleID == uuid.Nil {
		return nil, kbprogress.ErrArticleRequired
	}
	if score < 0 || score > 100 {
		return nil, kbprogress.ErrScoreOutOfRange
	}

	attempt, err := s.repo.CreateAttempt(ctx, &kbprogress.QuizAttempt{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: articleID,
		Score:     score,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("quiz attempt recorded", "user_id", userID, "article_id", articleID, "score", score)
	return attempt, nil
}

// Profile aggregates the user's reading history and quiz performance. The
// average is the arithmetic mean over all attempts rounded to the nearest
// integer, or 0 when no attempts exist.
func (s *ProgressService) Profile(ctx context.Context, userID uuid.UUID) (*kbprogress.Profile, error) {
	if userID == uuid.Nil {
		return nil, kbprogress.ErrUserRequired
	}

	readArticles, err := s.repo.ListReadArticles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress: profile reads: %w", err)
	}

	attempts, err := s.repo.ListAttempts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress: profile attempts: %w", err)
	}

	average := 0
	if len(attempts) > 0 {
		total := 0
		for _, attempt := range attempts {
			total += attempt.Score
		}
		average = int(math.Round(float64(total) / float64(len(attempts))))
	}

	return &kbprogress.Profile{
		ReadArticles: readArticles,
		QuizAttempts: attempts,
		AverageScore: average,
	}, nil
}
