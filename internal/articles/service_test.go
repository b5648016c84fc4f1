package articles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	kbarticles "github.com/goliatone/go-kb/articles"
)

func seedRepo(t *testing.T) *MemoryArticleRepository {
	t.Helper()
	repo := NewMemoryArticleRepository()

	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	batch := kbarticles.SyncBatch{
		Creates: []*kbarticles.Article{
			{
				ID:         uuid.New(),
				FilePath:   "go_basics.md",
				Title:      "Go Basics",
				Slug:       "go-basics",
				ModifiedAt: base,
				Tags:       "go,beginner",
				Body:       "Goroutines and channels.",
			},
			{
				ID:         uuid.New(),
				FilePath:   "sql_joins.md",
				Title:      "Sql Joins",
				Slug:       "sql-joins",
				ModifiedAt: base.Add(48 * time.Hour),
				Tags:       "sql,databases",
				Body:       "INNER JOIN versus LEFT JOIN.",
			},
			{
				ID:         uuid.New(),
				FilePath:   "http_servers.md",
				Title:      "Http Servers",
				Slug:       "http-servers",
				ModifiedAt: base.Add(24 * time.Hour),
				Tags:       "go,web",
				Body:       "Handlers and middleware.",
			},
		},
	}
	if err := repo.Apply(context.Background(), batch); err != nil {
		t.Fatalf("seed Apply returned error: %v", err)
	}
	return repo
}

func TestListOrdersByModifiedDescending(t *testing.T) {
	svc := NewService(seedRepo(t), ServiceConfig{})

	records, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(records))
	}

	want := []string{"sql-joins", "http-servers", "go-basics"}
	for i, slug := range want {
		if records[i].Slug != slug {
			t.Fatalf("position %d: expected %s, got %s", i, slug, records[i].Slug)
		}
	}
}

func TestGetBySlug(t *testing.T) {
	svc := NewService(seedRepo(t), ServiceConfig{})
	ctx := context.Background()

	record, err := svc.GetBySlug(ctx, "go-basics")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if record.Title != "Go Basics" {
		t.Fatalf("unexpected title: %s", record.Title)
	}

	if _, err := svc.GetBySlug(ctx, ""); !errors.Is(err, kbarticles.ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}

	_, err = svc.GetBySlug(ctx, "missing")
	var notFound *kbarticles.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSearchMatchesTitleTagsAndBody(t *testing.T) {
	svc := NewService(seedRepo(t), ServiceConfig{})
	ctx := context.Background()

	cases := []struct {
		query string
		want  []string
	}{
		{"GO", []string{"http-servers", "go-basics"}},
		{"databases", []string{"sql-joins"}},
		{"middleware", []string{"http-servers"}},
		{"nomatch", []string{}},
	}

	for _, tc := range cases {
		records, err := svc.Search(ctx, tc.query)
		if err != nil {
			t.Fatalf("Search(%q) returned error: %v", tc.query, err)
		}
		if len(records) != len(tc.want) {
			t.Fatalf("Search(%q): expected %d results, got %d", tc.query, len(tc.want), len(records))
		}
		for i, slug := range tc.want {
			if records[i].Slug != slug {
				t.Fatalf("Search(%q) position %d: expected %s, got %s", tc.query, i, slug, records[i].Slug)
			}
		}
	}
}

func TestSearchBlankQueryReturnsEmpty(t *testing.T) {
	svc := NewService(seedRepo(t), ServiceConfig{})

	records, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", records)
	}
}

func TestSearchModifiedDateVariant(t *testing.T) {
	svc := NewService(seedRepo(t), ServiceConfig{MatchModifiedDate: true})

	records, err := svc.Search(context.Background(), "2025-04-03")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "sql-joins" {
		t.Fatalf("expected the article modified on that date, got %v", records)
	}

	plain := NewService(seedRepo(t), ServiceConfig{})
	records, err = plain.Search(context.Background(), "2025-04-03")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("date matching should be off by default, got %v", records)
	}
}
