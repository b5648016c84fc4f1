package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-kb/articles"
	"github.com/goliatone/go-kb/internal/logging"
	"github.com/goliatone/go-kb/pkg/interfaces"
)

// Config controls how the markdown service discovers and parses files.
type Config struct {
	// BasePath is the root directory where article sources live.
	BasePath string
	// Pattern limits discovery to matching files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// QuizDir names the sibling subfolder holding companion quiz files.
	QuizDir string
	// Parser holds the default HTML rendering options.
	Parser interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed
// article sources.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
	syncer *Syncer
	logger interfaces.Logger
}

var _ interfaces.MarkdownService = (*Service)(nil)

// NewService constructs a markdown service. When parser is nil a goldmark
// parser with the configured defaults is created.
func NewService(cfg Config, repo articles.Repository, parser interfaces.MarkdownParser, logger interfaces.Logger) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(cfg, filesystem, repo, parser, logger)
}

// NewServiceWithFS constructs a markdown service over an explicit
// filesystem, letting tests inject fstest trees.
func NewServiceWithFS(cfg Config, filesystem fs.FS, repo articles.Repository, parser interfaces.MarkdownParser, logger interfaces.Logger) (*Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	loader := NewLoader(filesystem, LoaderConfig{
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
		QuizDir:   cfg.QuizDir,
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
		syncer: NewSyncer(repo, logger),
		logger: logger,
	}, nil
}

// Sync walks dir relative to the configured base path and reconciles the
// persisted article set against it. Per-file read failures are reported in
// the result; slug collisions abort the pass.
func (s *Service) Sync(ctx context.Context, dir string) (*interfaces.SyncResult, error) {
	docs, fileErrors, err := s.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("markdown sync %s: %w", dir, err)
	}

	for _, fileErr := range fileErrors {
		s.logger.Warn("skipping source file", "path", fileErr.Path, "reason", fileErr.Reason)
	}

	result, err := s.syncer.SyncDocuments(ctx, docs)
	if err != nil {
		return nil, err
	}

	result.Errors = append(result.Errors, fileErrors...)
	return result, nil
}

// Render parses markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
