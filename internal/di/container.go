// Package di wires module dependencies. The container owns nothing the host
// supplies: a database handle, logger provider, or cache passed through an
// Option is never closed or reconfigured here.
package di

import (
	"database/sql"
	"fmt"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	kbarticles "github.com/goliatone/go-kb/articles"
	internalarticles "github.com/goliatone/go-kb/internal/articles"
	"github.com/goliatone/go-kb/internal/logging"
	"github.com/goliatone/go-kb/internal/logging/gologger"
	internalmarkdown "github.com/goliatone/go-kb/internal/markdown"
	internalprogress "github.com/goliatone/go-kb/internal/progress"
	"github.com/goliatone/go-kb/internal/runtimeconfig"
	internalusers "github.com/goliatone/go-kb/internal/users"
	"github.com/goliatone/go-kb/pkg/interfaces"
	kbprogress "github.com/goliatone/go-kb/progress"
	kbusers "github.com/goliatone/go-kb/users"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	bunDB  *bun.DB
	ownsDB bool

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	parser         interfaces.MarkdownParser

	articleRepo  kbarticles.Repository
	userRepo     kbusers.Repository
	progressRepo kbprogress.Repository

	articleSvc  kbarticles.Service
	userSvc     kbusers.Service
	progressSvc kbprogress.Service
	markdownSvc interfaces.MarkdownService
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB reuses an existing database handle instead of opening one from
// the configured DSN.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache overrides the default cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithMarkdownParser overrides the default goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithArticleRepository overrides the default article repository binding.
func WithArticleRepository(repo kbarticles.Repository) Option {
	return func(c *Container) {
		c.articleRepo = repo
	}
}

// WithUserRepository overrides the default user repository binding.
func WithUserRepository(repo kbusers.Repository) Option {
	return func(c *Container) {
		c.userRepo = repo
	}
}

// WithProgressRepository overrides the default progress repository binding.
func WithProgressRepository(repo kbprogress.Repository) Option {
	return func(c *Container) {
		c.progressRepo = repo
	}
}

// WithArticleService overrides the default article service binding.
func WithArticleService(svc kbarticles.Service) Option {
	return func(c *Container) {
		c.articleSvc = svc
	}
}

// WithUserService overrides the default user service binding.
func WithUserService(svc kbusers.Service) Option {
	return func(c *Container) {
		c.userSvc = svc
	}
}

// WithProgressService overrides the default progress service binding.
func WithProgressService(svc kbprogress.Service) Option {
	return func(c *Container) {
		c.progressSvc = svc
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// New builds the container from config and options.
func New(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureDatabase(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	if err := c.configureServices(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the database handle when the container opened it.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}

	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "gologger") {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureDatabase() error {
	if c.bunDB != nil {
		return nil
	}

	driver := strings.ToLower(strings.TrimSpace(c.Config.Database.Driver))
	switch driver {
	case "sqlite3":
		sqldb, err := sql.Open("sqlite3", c.Config.Database.DSN)
		if err != nil {
			return fmt.Errorf("di: open sqlite database: %w", err)
		}
		c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	case "postgres":
		sqldb, err := sql.Open("pgx", c.Config.Database.DSN)
		if err != nil {
			return fmt.Errorf("di: open postgres database: %w", err)
		}
		c.bunDB = bun.NewDB(sqldb, pgdialect.New())
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrDatabaseDriverUnknown, driver)
	}
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.articleRepo == nil {
		c.articleRepo = internalarticles.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	}
	if c.userRepo == nil {
		c.userRepo = internalusers.NewBunUserRepository(c.bunDB)
	}
	if c.progressRepo == nil {
		c.progressRepo = internalprogress.NewBunProgressRepository(c.bunDB)
	}
}

func (c *Container) configureServices() error {
	if c.articleSvc == nil {
		c.articleSvc = internalarticles.NewService(c.articleRepo, internalarticles.ServiceConfig{
			MatchModifiedDate: c.Config.Search.MatchModifiedDate,
			Logger:            logging.ArticlesLogger(c.loggerProvider),
		})
	}

	if c.userSvc == nil {
		c.userSvc = internalusers.NewService(c.userRepo, internalusers.ServiceConfig{
			BcryptCost: c.Config.Auth.BcryptCost,
			Logger:     logging.UsersLogger(c.loggerProvider),
		})
	}

	if c.progressSvc == nil {
		c.progressSvc = internalprogress.NewService(c.progressRepo, internalprogress.ServiceConfig{
			Logger: logging.ProgressLogger(c.loggerProvider),
		})
	}

	if c.markdownSvc == nil {
		svc, err := internalmarkdown.NewService(internalmarkdown.Config{
			BasePath:  c.Config.Content.Dir,
			Pattern:   c.Config.Content.Pattern,
			Recursive: c.Config.Content.Recursive,
			QuizDir:   c.Config.Content.QuizDir,
			Parser: interfaces.ParseOptions{
				Extensions: c.Config.Markdown.Extensions,
				HardWraps:  c.Config.Markdown.HardWraps,
				SafeMode:   c.Config.Markdown.SafeMode,
			},
		}, c.articleRepo, c.parser, logging.MarkdownLogger(c.loggerProvider))
		if err != nil {
			return err
		}
		c.markdownSvc = svc
	}
	return nil
}

// DB exposes the wired database handle.
func (c *Container) DB() *bun.DB { return c.bunDB }

// LoggerProvider exposes the wired provider (nil means console no-op logging).
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Articles exposes the article query service.
func (c *Container) Articles() kbarticles.Service { return c.articleSvc }

// Users exposes the identity service.
func (c *Container) Users() kbusers.Service { return c.userSvc }

// Progress exposes the progress tracking service.
func (c *Container) Progress() kbprogress.Service { return c.progressSvc }

// Markdown exposes the markdown synchronizer.
func (c *Container) Markdown() interfaces.MarkdownService { return c.markdownSvc }
