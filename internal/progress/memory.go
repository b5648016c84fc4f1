package progress

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	kbarticles "github.com/goliatone/go-kb/articles"
	kbprogress "github.com/goliatone/go-kb/progress"
)

type readKey struct {
	user    uuid.UUID
	article uuid.UUID
}

// MemoryProgressRepository is an in-memory progress.Repository for unit
// tests. Read articles are resolved through the supplied article repository.
type MemoryProgressRepository struct {
	mu       sync.RWMutex
	reads    map[readKey]*kbprogress.Read
	attempts []*kbprogress.QuizAttempt
	articles kbarticles.Repository
}

var _ kbprogress.Repository = (*MemoryProgressRepository)(nil)

func NewMemoryProgressRepository(articleRepo kbarticles.Repository) *MemoryProgressRepository {
	return &MemoryProgressRepository{
		reads:    map[readKey]*kbprogress.Read{},
		articles: articleRepo,
	}
}

func (r *MemoryProgressRepository) MarkRead(ctx context.Context, read *kbprogress.Read) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := readKey{user: read.UserID, article: read.ArticleID}
	if _, ok := r.reads[key]; ok {
		return nil
	}
	copied := *read
	r.reads[key] = &copied
	return nil
}

// ReadCount reports the number of stored read markers so tests can assert
// idempotence.
func (r *MemoryProgressRepository) ReadCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reads)
}

func (r *MemoryProgressRepository) CreateAttempt(ctx context.Context, attempt *kbprogress.QuizAttempt) (*kbprogress.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *attempt
	r.attempts = append(r.attempts, &copied)
	out := copied
	return &out, nil
}

func (r *MemoryProgressRepository) ListReadArticles(ctx context.Context, userID uuid.UUID) ([]*kbarticles.Article, error) {
	r.mu.RLock()
	ids := make([]uuid.UUID, 0, len(r.reads))
	for key := range r.reads {
		if key.user == userID {
			ids = append(ids, key.article)
		}
	}
	r.mu.RUnlock()

	records := make([]*kbarticles.Article, 0, len(ids))
	for _, id := range ids {
		record, err := r.articles.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ModifiedAt.After(records[j].ModifiedAt)
	})
	return records, nil
}

func (r *MemoryProgressRepository) ListAttempts(ctx context.Context, userID uuid.UUID) ([]*kbprogress.QuizAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*kbprogress.QuizAttempt{}
	for _, attempt := range r.attempts {
		if attempt.UserID == userID {
			copied := *attempt
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenAt.After(out[j].TakenAt)
	})
	return out, nil
}
