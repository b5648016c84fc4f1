package kb

import "github.com/goliatone/go-kb/internal/runtimeconfig"

// Config aggregates runtime configuration for the knowledge base module.
type Config = runtimeconfig.Config

// DatabaseConfig selects the storage backend.
type DatabaseConfig = runtimeconfig.Database

// ContentConfig locates the markdown article sources.
type ContentConfig = runtimeconfig.Content

// MarkdownConfig captures rendering options.
type MarkdownConfig = runtimeconfig.Markdown

// SearchConfig captures query layer toggles.
type SearchConfig = runtimeconfig.Search

// CacheConfig captures repository cache behaviour.
type CacheConfig = runtimeconfig.Cache

// AuthConfig captures identity and session settings.
type AuthConfig = runtimeconfig.Auth

// HTTPConfig captures the web edge settings.
type HTTPConfig = runtimeconfig.HTTP

// LoggingConfig captures runtime logging options.
type LoggingConfig = runtimeconfig.Logging

// DefaultConfig returns opinionated defaults for an embedded sqlite setup.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
