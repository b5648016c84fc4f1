// Package kb is an embeddable personal knowledge base: markdown articles
// synced into a relational store, with per-user reading progress and quiz
// tracking on top. Host applications construct a Module and either consume
// the services directly or mount the bundled JSON API.
package kb

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pressly/goose/v3"

	"github.com/goliatone/go-kb/articles"
	"github.com/goliatone/go-kb/internal/di"
	kbhttp "github.com/goliatone/go-kb/internal/http"
	"github.com/goliatone/go-kb/internal/logging"
	"github.com/goliatone/go-kb/pkg/interfaces"
	"github.com/goliatone/go-kb/progress"
	"github.com/goliatone/go-kb/users"
)

// ArticleService exports the article query contract for consumers of the kb package.
type ArticleService = articles.Service

// UserService exports the identity service contract.
type UserService = users.Service

// ProgressService exports the progress tracking contract.
type ProgressService = progress.Service

// MarkdownService exports the synchronizer contract.
type MarkdownService = interfaces.MarkdownService

// SyncResult exports the synchronizer pass summary.
type SyncResult = interfaces.SyncResult

// Module represents the top level knowledge base runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a knowledge base module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Articles returns the configured article query service.
func (m *Module) Articles() ArticleService {
	return m.container.Articles()
}

// Users returns the configured identity service.
func (m *Module) Users() UserService {
	return m.container.Users()
}

// Progress returns the configured progress tracking service.
func (m *Module) Progress() ProgressService {
	return m.container.Progress()
}

// Markdown returns the configured synchronizer.
func (m *Module) Markdown() MarkdownService {
	return m.container.Markdown()
}

// Sync runs one synchronizer pass over the configured content directory.
func (m *Module) Sync(ctx context.Context) (*SyncResult, error) {
	return m.container.Markdown().Sync(ctx, "")
}

// Migrate applies the embedded schema migrations to the wired database.
func (m *Module) Migrate(ctx context.Context) error {
	dialect := "sqlite3"
	if m.container.Config.Database.Driver == "postgres" {
		dialect = "pgx"
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("kb: set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, m.container.DB().DB, "data/sql/migrations"); err != nil {
		return fmt.Errorf("kb: apply migrations: %w", err)
	}
	return nil
}

// Handler builds the JSON API handler for the module's services.
func (m *Module) Handler() (http.Handler, error) {
	cfg := m.container.Config
	sessions := kbhttp.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)

	api := kbhttp.NewAPI(
		kbhttp.WithBasePath(cfg.HTTP.BasePath),
		kbhttp.WithArticleService(m.container.Articles()),
		kbhttp.WithUserService(m.container.Users()),
		kbhttp.WithProgressService(m.container.Progress()),
		kbhttp.WithMarkdownService(m.container.Markdown()),
		kbhttp.WithSessionManager(sessions),
		kbhttp.WithLogger(logging.HTTPLogger(m.container.LoggerProvider())),
	)

	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	return m.container.Close()
}
