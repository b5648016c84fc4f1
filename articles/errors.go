package articles

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSlugRequired = errors.New("articles: slug is required")
	ErrSlugInvalid  = errors.New("articles: slug contains invalid characters")
	ErrSlugConflict = errors.New("articles: slug conflict")
)

// NotFoundError represents a missing article lookup. It is a first-class
// result: the web edge maps it to a 404 response.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "articles: not found"
	}
	resource := e.Resource
	if resource == "" {
		resource = "article"
	}
	if strings.TrimSpace(e.Key) == "" {
		return fmt.Sprintf("articles: %s not found", resource)
	}
	return fmt.Sprintf("articles: %s %q not found", resource, e.Key)
}

// SlugConflictError reports two distinct source files resolving to the same
// slug. The synchronizer aborts the pass rather than silently overwriting.
type SlugConflictError struct {
	Slug  string
	Paths []string
}

func (e *SlugConflictError) Error() string {
	if e == nil {
		return ErrSlugConflict.Error()
	}
	if len(e.Paths) == 0 {
		return fmt.Sprintf("%s: slug=%s", ErrSlugConflict.Error(), e.Slug)
	}
	return fmt.Sprintf("%s: slug=%s paths=%s", ErrSlugConflict.Error(), e.Slug, strings.Join(e.Paths, ", "))
}

func (e *SlugConflictError) Unwrap() error {
	return ErrSlugConflict
}
