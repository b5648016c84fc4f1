package articles

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	kbarticles "github.com/goliatone/go-kb/articles"
)

// NewArticleRepository builds the go-repository-bun backed repository used
// for identity and slug lookups.
func NewArticleRepository(db *bun.DB) repository.Repository[*kbarticles.Article] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*kbarticles.Article]{
		NewRecord: func() *kbarticles.Article { return &kbarticles.Article{} },
		GetID: func(a *kbarticles.Article) uuid.UUID {
			return a.ID
		},
		SetID: func(a *kbarticles.Article, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(a *kbarticles.Article) string {
			return a.Slug
		},
	})
}
