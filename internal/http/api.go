// Package http exposes the knowledge base over a JSON API mounted on a
// standard library ServeMux. Authentication uses signed session cookies; the
// host application decides which listener and middleware wrap the mux.
package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-kb/articles"
	"github.com/goliatone/go-kb/internal/logging"
	"github.com/goliatone/go-kb/pkg/interfaces"
	"github.com/goliatone/go-kb/progress"
	"github.com/goliatone/go-kb/users"
)

// API registers the knowledge base endpoints.
type API struct {
	basePath string
	articles articles.Service
	users    users.Service
	progress progress.Service
	markdown interfaces.MarkdownService
	sessions *SessionManager
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithArticleService wires the article query service.
func WithArticleService(service articles.Service) Option {
	return func(api *API) {
		if api != nil {
			api.articles = service
		}
	}
}

// WithUserService wires the identity service.
func WithUserService(service users.Service) Option {
	return func(api *API) {
		if api != nil {
			api.users = service
		}
	}
}

// WithProgressService wires the progress tracking service.
func WithProgressService(service progress.Service) Option {
	return func(api *API) {
		if api != nil {
			api.progress = service
		}
	}
}

// WithMarkdownService wires the markdown synchronizer.
func WithMarkdownService(service interfaces.MarkdownService) Option {
	return func(api *API) {
		if api != nil {
			api.markdown = service
		}
	}
}

// WithSessionManager wires session issuing and verification.
func WithSessionManager(sessions *SessionManager) Option {
	return func(api *API) {
		if api != nil {
			api.sessions = sessions
		}
	}
}

// WithLogger wires the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")

	mux.HandleFunc("GET "+joinPath(base, "articles"), api.handleListArticles)
	mux.HandleFunc("GET "+joinPath(base, "articles/{slug}"), api.handleGetArticle)
	mux.HandleFunc("GET "+joinPath(base, "search"), api.handleSearch)
	mux.HandleFunc("POST "+joinPath(base, "sync"), api.handleSync)

	mux.HandleFunc("POST "+joinPath(base, "register"), api.handleRegister)
	mux.HandleFunc("POST "+joinPath(base, "login"), api.handleLogin)
	mux.HandleFunc("POST "+joinPath(base, "logout"), api.handleLogout)

	mux.HandleFunc("POST "+joinPath(base, "articles/{slug}/read"), api.handleMarkRead)
	mux.HandleFunc("POST "+joinPath(base, "articles/{slug}/quiz"), api.handleSubmitQuiz)
	mux.HandleFunc("GET "+joinPath(base, "profile"), api.handleProfile)

	return nil
}
