package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	kbarticles "github.com/goliatone/go-kb/articles"
	internalarticles "github.com/goliatone/go-kb/internal/articles"
	kbprogress "github.com/goliatone/go-kb/progress"
)

func seedArticles(t *testing.T) (*internalarticles.MemoryArticleRepository, []*kbarticles.Article) {
	t.Helper()
	repo := internalarticles.NewMemoryArticleRepository()

	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	records := []*kbarticles.Article{
		{ID: uuid.New(), Slug: "older", Title: "Older", FilePath: "older.md", ModifiedAt: base},
		{ID: uuid.New(), Slug: "newer", Title: "Newer", FilePath: "newer.md", ModifiedAt: base.Add(24 * time.Hour)},
	}
	if err := repo.Apply(context.Background(), kbarticles.SyncBatch{Creates: records}); err != nil {
		t.Fatalf("seed Apply returned error: %v", err)
	}
	return repo, records
}

func TestMarkReadIsIdempotent(t *testing.T) {
	articleRepo, records := seedArticles(t)
	repo := NewMemoryProgressRepository(articleRepo)
	svc := NewService(repo, ServiceConfig{})
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		if err := svc.MarkRead(ctx, userID, records[0].ID); err != nil {
			t.Fatalf("MarkRead pass %d returned error: %v", i, err)
		}
	}

	if repo.ReadCount() != 1 {
		t.Fatalf("expected a single read marker, got %d", repo.ReadCount())
	}
}

func TestMarkReadValidatesIdentities(t *testing.T) {
	articleRepo, records := seedArticles(t)
	svc := NewService(NewMemoryProgressRepository(articleRepo), ServiceConfig{})
	ctx := context.Background()

	if err := svc.MarkRead(ctx, uuid.Nil, records[0].ID); !errors.Is(err, kbprogress.ErrUserRequired) {
		t.Fatalf("expected ErrUserRequired, got %v", err)
	}
	if err := svc.MarkRead(ctx, uuid.New(), uuid.Nil); !errors.Is(err, kbprogress.ErrArticleRequired) {
		t.Fatalf("expected ErrArticleRequired, got %v", err)
	}
}

func TestRecordAttemptValidatesScore(t *testing.T) {
	articleRepo, records := seedArticles(t)
	svc := NewService(NewMemoryProgressRepository(articleRepo), ServiceConfig{})
	ctx := context.Background()
	userID := uuid.New()

	for _, score := range []int{-1, 101} {
		if _, err := svc.RecordAttempt(ctx, userID, records[0].ID, score); !errors.Is(err, kbprogress.ErrScoreOutOfRange) {
			t.Fatalf("score %d: expected ErrScoreOutOfRange, got %v", score, err)
		}
	}

	for _, score := range []int{0, 100} {
		if _, err := svc.RecordAttempt(ctx, userID, records[0].ID, score); err != nil {
			t.Fatalf("score %d: unexpected error: %v", score, err)
		}
	}
}

func TestProfileAggregation(t *testing.T) {
	articleRepo, records := seedArticles(t)
	repo := NewMemoryProgressRepository(articleRepo)
	svc := NewService(repo, ServiceConfig{})
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.MarkRead(ctx, userID, records[0].ID); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
	if err := svc.MarkRead(ctx, userID, records[1].ID); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}

	// 50 and 67 average to 58.5, which rounds to 59.
	for _, score := range []int{50, 67} {
		if _, err := svc.RecordAttempt(ctx, userID, records[0].ID, score); err != nil {
			t.Fatalf("RecordAttempt returned error: %v", err)
		}
	}

	profile, err := svc.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}

	if profile.AverageScore != 59 {
		t.Fatalf("expected average 59, got %d", profile.AverageScore)
	}
	if len(profile.ReadArticles) != 2 {
		t.Fatalf("expected 2 read articles, got %d", len(profile.ReadArticles))
	}
	if profile.ReadArticles[0].Slug != "newer" || profile.ReadArticles[1].Slug != "older" {
		t.Fatalf("read articles out of order: %s, %s", profile.ReadArticles[0].Slug, profile.ReadArticles[1].Slug)
	}
	if len(profile.QuizAttempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(profile.QuizAttempts))
	}
}

func TestProfileEmptyUser(t *testing.T) {
	articleRepo, _ := seedArticles(t)
	svc := NewService(NewMemoryProgressRepository(articleRepo), ServiceConfig{})

	profile, err := svc.Profile(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.AverageScore != 0 {
		t.Fatalf("expected zero average with no attempts, got %d", profile.AverageScore)
	}
	if len(profile.ReadArticles) != 0 || len(profile.QuizAttempts) != 0 {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}

func TestAttemptsAreAppendOnly(t *testing.T) {
	articleRepo, records := seedArticles(t)
	repo := NewMemoryProgressRepository(articleRepo)
	svc := NewService(repo, ServiceConfig{})
	ctx := context.Background()
	userID := uuid.New()

	// Same article scored twice keeps both attempts.
	for _, score := range []int{40, 80} {
		if _, err := svc.RecordAttempt(ctx, userID, records[0].ID, score); err != nil {
			t.Fatalf("RecordAttempt returned error: %v", err)
		}
	}

	attempts, err := repo.ListAttempts(ctx, userID)
	if err != nil {
		t.Fatalf("ListAttempts returned error: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
}
