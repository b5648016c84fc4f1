package articles

import (
	"context"
	"strings"

	"github.com/google/uuid"

	kbarticles "github.com/goliatone/go-kb/articles"
	"github.com/goliatone/go-kb/internal/logging"
	"github.com/goliatone/go-kb/pkg/interfaces"
)

// ServiceConfig configures the article query layer.
type ServiceConfig struct {
	// MatchModifiedDate extends search matching to the stringified modified
	// timestamp.
	MatchModifiedDate bool
	Logger            interfaces.Logger
}

// ArticleService implements articles.Service over a repository.
type ArticleService struct {
	repo              kbarticles.Repository
	matchModifiedDate bool
	logger            interfaces.Logger
}

var _ kbarticles.Service = (*ArticleService)(nil)

// NewService constructs the query layer service.
func NewService(repo kbarticles.Repository, cfg ServiceConfig) *ArticleService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &ArticleService{
		repo:              repo,
		matchModifiedDate: cfg.MatchModifiedDate,
		logger:            logger,
	}
}

func (s *ArticleService) List(ctx context.Context) ([]*kbarticles.Article, error) {
	return s.repo.List(ctx)
}

func (s *ArticleService) GetByID(ctx context.Context, id uuid.UUID) (*kbarticles.Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*kbarticles.Article, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, kbarticles.ErrSlugRequired
	}
	return s.repo.GetBySlug(ctx, slug)
}

// Search returns an empty slice for blank queries without touching the store.
func (s *ArticleService) Search(ctx context.Context, query string) ([]*kbarticles.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*kbarticles.Article{}, nil
	}

	records, err := s.repo.Search(ctx, query, s.matchModifiedDate)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("article search", "query", query, "results", len(records))
	return records, nil
}
