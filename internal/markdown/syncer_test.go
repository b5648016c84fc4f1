package markdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-kb/articles"
	internalarticles "github.com/goliatone/go-kb/internal/articles"
)

func buildDoc(t *testing.T, path, source string, modified time.Time) *Document {
	t.Helper()
	doc, err := BuildDocument(path, []byte(source), modified)
	if err != nil {
		t.Fatalf("BuildDocument(%s) returned error: %v", path, err)
	}
	return doc
}

func TestSyncDocumentsCreatesThenSkips(t *testing.T) {
	repo := internalarticles.NewMemoryArticleRepository()
	syncer := NewSyncer(repo, nil)
	ctx := context.Background()
	mod := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	docs := []*Document{
		buildDoc(t, "go_basics.md", "# Basics\n\nIntro.\n", mod),
		buildDoc(t, "sql_joins.md", "# Joins\n\nInner and outer.\n", mod),
	}

	result, err := syncer.SyncDocuments(ctx, docs)
	if err != nil {
		t.Fatalf("first sync returned error: %v", err)
	}
	if result.Created != 2 || result.Updated != 0 || result.Skipped != 0 {
		t.Fatalf("unexpected first pass counts: %+v", result)
	}
	if repo.AppliedBatches() != 1 {
		t.Fatalf("expected one flushed batch, got %d", repo.AppliedBatches())
	}

	// Re-syncing identical sources must be a no-op.
	result, err = syncer.SyncDocuments(ctx, docs)
	if err != nil {
		t.Fatalf("second sync returned error: %v", err)
	}
	if result.Created != 0 || result.Updated != 0 || result.Skipped != 2 {
		t.Fatalf("unexpected second pass counts: %+v", result)
	}
	if repo.AppliedBatches() != 1 {
		t.Fatalf("no-op pass should not flush, got %d batches", repo.AppliedBatches())
	}
}

func TestSyncDocumentsUpdatesPreservingIdentity(t *testing.T) {
	repo := internalarticles.NewMemoryArticleRepository()
	syncer := NewSyncer(repo, nil)
	ctx := context.Background()
	mod := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if _, err := syncer.SyncDocuments(ctx, []*Document{
		buildDoc(t, "go_basics.md", "# Basics\n\nIntro.\n", mod),
	}); err != nil {
		t.Fatalf("initial sync returned error: %v", err)
	}

	before, err := repo.GetBySlug(ctx, "go-basics")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}

	result, err := syncer.SyncDocuments(ctx, []*Document{
		buildDoc(t, "go_basics.md", "# Basics\n\nRevised intro.\n", mod.Add(time.Hour)),
	})
	if err != nil {
		t.Fatalf("update sync returned error: %v", err)
	}
	if result.Updated != 1 || result.Created != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	after, err := repo.GetBySlug(ctx, "go-basics")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if after.ID != before.ID {
		t.Fatalf("update must preserve article identity: %s vs %s", before.ID, after.ID)
	}
	if after.Checksum == before.Checksum {
		t.Fatal("expected checksum to change after update")
	}
	if !after.ModifiedAt.Equal(mod.Add(time.Hour)) {
		t.Fatalf("unexpected modified time: %v", after.ModifiedAt)
	}
}

func TestSyncDocumentsAbortsOnSlugCollision(t *testing.T) {
	repo := internalarticles.NewMemoryArticleRepository()
	syncer := NewSyncer(repo, nil)
	mod := time.Now()

	docs := []*Document{
		buildDoc(t, "notes/go_basics.md", "# One\n", mod),
		buildDoc(t, "archive/go-basics.md", "# Two\n", mod),
	}

	_, err := syncer.SyncDocuments(context.Background(), docs)
	if err == nil {
		t.Fatal("expected slug collision error")
	}
	if !errors.Is(err, articles.ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}

	var conflict *articles.SlugConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlugConflictError, got %T", err)
	}
	if conflict.Slug != "go-basics" {
		t.Fatalf("unexpected conflicting slug: %s", conflict.Slug)
	}

	// Nothing may be written when the pass aborts.
	if repo.AppliedBatches() != 0 {
		t.Fatalf("aborted pass must not flush, got %d batches", repo.AppliedBatches())
	}
}

func TestSyncDocumentsMetadataOnlyChangeUpdates(t *testing.T) {
	repo := internalarticles.NewMemoryArticleRepository()
	syncer := NewSyncer(repo, nil)
	ctx := context.Background()
	mod := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	source := "# Basics\n\nIntro.\n"
	if _, err := syncer.SyncDocuments(ctx, []*Document{
		buildDoc(t, "go_basics.md", source, mod),
	}); err != nil {
		t.Fatalf("initial sync returned error: %v", err)
	}

	// Same bytes, newer mtime: still an update so the listing order follows
	// the filesystem.
	result, err := syncer.SyncDocuments(ctx, []*Document{
		buildDoc(t, "go_basics.md", source, mod.Add(time.Minute)),
	})
	if err != nil {
		t.Fatalf("metadata sync returned error: %v", err)
	}
	if result.Updated != 1 || result.Skipped != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}
