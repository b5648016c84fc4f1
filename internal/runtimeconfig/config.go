// Package runtimeconfig holds the module configuration surface. Fields
// intentionally use simple types so host applications can populate them from
// whatever config loader they already carry.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDatabaseDriverUnknown = errors.New("kb config: database driver is invalid")
var ErrDatabaseDSNRequired = errors.New("kb config: database dsn is required")
var ErrContentDirRequired = errors.New("kb config: content directory is required")
var ErrSessionSecretRequired = errors.New("kb config: auth session secret is required when the http api is enabled")
var ErrLoggingProviderUnknown = errors.New("kb config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("kb config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("kb config: logging format is invalid")

// Config aggregates adapter bindings and feature toggles for the module.
type Config struct {
	Database Database
	Content  Content
	Markdown Markdown
	Search   Search
	Cache    Cache
	Auth     Auth
	HTTP     HTTP
	Logging  Logging
}

// Database selects the storage backend.
type Database struct {
	// Driver is "sqlite3" or "postgres".
	Driver string
	DSN    string
}

// Content locates the markdown article sources.
type Content struct {
	// Dir is the content root the synchronizer walks.
	Dir string
	// Pattern filters files by glob, matched against the base name.
	Pattern string
	// Recursive walks nested directories when true.
	Recursive bool
	// QuizDir names the sibling subdirectory holding quiz companion files.
	QuizDir string
}

// Markdown captures rendering options.
type Markdown struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// Search captures query layer toggles.
type Search struct {
	// MatchModifiedDate also matches the query against the textual form of
	// the modified timestamp.
	MatchModifiedDate bool
}

// Cache captures repository cache behaviour.
type Cache struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Auth captures identity and session settings.
type Auth struct {
	// BcryptCost overrides the password hashing cost; zero uses the default.
	BcryptCost int
	// SessionSecret signs session tokens.
	SessionSecret string
	// SessionTTL bounds session lifetime; zero means 24h.
	SessionTTL time.Duration
}

// HTTP captures the web edge settings.
type HTTP struct {
	Enabled  bool
	BasePath string
}

// Logging captures provider-specific options for runtime logging.
type Logging struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for an embedded sqlite setup.
func DefaultConfig() Config {
	return Config{
		Database: Database{
			Driver: "sqlite3",
			DSN:    "file:kb.db?_fk=1",
		},
		Content: Content{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
			QuizDir:   "quizzes",
		},
		Markdown: Markdown{},
		Search:   Search{},
		Cache: Cache{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Auth: Auth{
			SessionTTL: 24 * time.Hour,
		},
		HTTP: HTTP{
			Enabled:  true,
			BasePath: "/api",
		},
		Logging: Logging{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(cfg.Database.Driver)) {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("%w: %s", ErrDatabaseDriverUnknown, cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return ErrDatabaseDSNRequired
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.HTTP.Enabled && strings.TrimSpace(cfg.Auth.SessionSecret) == "" {
		return ErrSessionSecretRequired
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
