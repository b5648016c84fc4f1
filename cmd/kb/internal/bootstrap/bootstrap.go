package bootstrap

import (
	"fmt"
	"strings"

	kb "github.com/goliatone/go-kb"
	"github.com/goliatone/go-kb/internal/di"
	"github.com/goliatone/go-kb/pkg/interfaces"
)

// Options captures configuration shared by the kb CLIs.
type Options struct {
	Driver         string
	DSN            string
	ContentDir     string
	Pattern        string
	Recursive      bool
	QuizDir        string
	SessionSecret  string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// BuildModule constructs a knowledge base module from CLI options.
func BuildModule(opts Options) (*kb.Module, error) {
	cfg := kb.DefaultConfig()

	if driver := strings.TrimSpace(opts.Driver); driver != "" {
		cfg.Database.Driver = driver
	}
	if dsn := strings.TrimSpace(opts.DSN); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Content.Pattern = pattern
	}
	if quizDir := strings.TrimSpace(opts.QuizDir); quizDir != "" {
		cfg.Content.QuizDir = quizDir
	}
	cfg.Content.Recursive = opts.Recursive

	if secret := strings.TrimSpace(opts.SessionSecret); secret != "" {
		cfg.Auth.SessionSecret = secret
	} else {
		cfg.HTTP.Enabled = false
	}

	cfg.Logging.Provider = "gologger"
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := kb.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise kb module: %w", err)
	}
	return module, nil
}
