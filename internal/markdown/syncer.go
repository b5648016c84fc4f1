package markdown

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-kb/articles"
	"github.com/goliatone/go-kb/internal/logging"
	"github.com/goliatone/go-kb/pkg/interfaces"
)

var ErrRepositoryRequired = errors.New("markdown syncer: article repository is required")

// Syncer reconciles parsed documents against the persisted article set. All
// pending writes are buffered and flushed once, so a mid-pass failure leaves
// the store untouched. A slug collision between two distinct source files
// aborts the pass before any write.
type Syncer struct {
	repo   articles.Repository
	logger interfaces.Logger
}

// NewSyncer builds a Syncer over the supplied repository.
func NewSyncer(repo articles.Repository, logger interfaces.Logger) *Syncer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Syncer{repo: repo, logger: logger}
}

// SyncDocuments applies the parsed documents to the store and reports counts.
func (s *Syncer) SyncDocuments(ctx context.Context, docs []*Document) (*interfaces.SyncResult, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}

	if err := detectSlugCollisions(docs); err != nil {
		return nil, err
	}

	result := &interfaces.SyncResult{Errors: []interfaces.SyncError{}}
	var batch articles.SyncBatch

	for _, doc := range docs {
		existing, err := s.repo.GetBySlug(ctx, doc.Slug)
		if err != nil {
			var notFound *articles.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("markdown syncer: lookup %s: %w", doc.Slug, err)
			}
			batch.Creates = append(batch.Creates, newArticle(doc))
			result.Created++
			continue
		}

		if unchanged(existing, doc) {
			result.Skipped++
			continue
		}

		batch.Updates = append(batch.Updates, updatedArticle(existing, doc))
		result.Updated++
	}

	if err := s.repo.Apply(ctx, batch); err != nil {
		return nil, fmt.Errorf("markdown syncer: flush: %w", err)
	}

	s.logger.Info("sync pass complete",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)

	return result, nil
}

// detectSlugCollisions rejects passes where two distinct files resolve to
// the same slug; silently overwriting one with the other would corrupt the
// article set.
func detectSlugCollisions(docs []*Document) error {
	seen := map[string]string{}
	for _, doc := range docs {
		if previous, ok := seen[doc.Slug]; ok && previous != doc.FilePath {
			return &articles.SlugConflictError{
				Slug:  doc.Slug,
				Paths: []string{previous, doc.FilePath},
			}
		}
		seen[doc.Slug] = doc.FilePath
	}
	return nil
}

// unchanged reports whether a re-parsed document matches the persisted
// record, making the pass a no-op for that article.
func unchanged(existing *articles.Article, doc *Document) bool {
	if existing.Checksum != doc.Checksum {
		return false
	}
	if existing.Title != doc.Title {
		return false
	}
	if existing.Tags != articles.JoinTags(doc.Tags) {
		return false
	}
	if !existing.ModifiedAt.Equal(doc.ModifiedAt) {
		return false
	}
	return jsonEqual(existing.Quiz, doc.Quiz)
}

func newArticle(doc *Document) *articles.Article {
	return &articles.Article{
		ID:         uuid.New(),
		FilePath:   doc.FilePath,
		Title:      doc.Title,
		Slug:       doc.Slug,
		ModifiedAt: doc.ModifiedAt,
		Tags:       articles.JoinTags(doc.Tags),
		Body:       doc.Body,
		TOC:        doc.TOC,
		Quiz:       doc.Quiz,
		Checksum:   doc.Checksum,
	}
}

// updatedArticle overwrites the content-bearing fields in place. Identity,
// file path, and creation time are preserved so Read and QuizAttempt
// references survive re-syncs.
func updatedArticle(existing *articles.Article, doc *Document) *articles.Article {
	updated := *existing
	updated.Title = doc.Title
	updated.ModifiedAt = doc.ModifiedAt
	updated.Tags = articles.JoinTags(doc.Tags)
	updated.Body = doc.Body
	updated.TOC = doc.TOC
	updated.Quiz = doc.Quiz
	updated.Checksum = doc.Checksum
	return &updated
}

func jsonEqual(a, b any) bool {
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(left) == string(right)
}
