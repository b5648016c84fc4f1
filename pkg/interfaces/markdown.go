package interfaces

import "context"

// ParseOptions configure how markdown bodies are rendered into HTML.
type ParseOptions struct {
	// Extensions lists goldmark extensions to enable (e.g. "gfm", "tasklist").
	Extensions []string
	// HardWraps renders single newlines as <br> elements.
	HardWraps bool
	// SafeMode suppresses raw HTML in the rendered output.
	SafeMode bool
}

// MarkdownParser renders markdown bytes into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// SyncError records a per-file failure encountered during a sync pass. The
// file is skipped and the pass continues.
type SyncError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// SyncResult summarises the outcome of a synchronizer pass.
type SyncResult struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Skipped int         `json:"skipped"`
	Errors  []SyncError `json:"errors"`
}

// MarkdownService reconciles a directory of markdown article sources against
// the persisted article set.
type MarkdownService interface {
	// Sync walks dir (relative to the configured content root), parses every
	// matching file, and flushes all resulting creates/updates as one unit.
	Sync(ctx context.Context, dir string) (*SyncResult, error)
	// Render converts markdown bytes into HTML using the configured parser.
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
}
