package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-kb/articles"
	"github.com/goliatone/go-kb/progress"
	"github.com/goliatone/go-kb/users"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var articleNotFound *articles.NotFoundError
	if errors.As(err, &articleNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: articleNotFound.Error(),
		}
	}

	var userNotFound *users.NotFoundError
	if errors.As(err, &userNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: userNotFound.Error(),
		}
	}

	var fieldErr *users.ValidationError
	if errors.As(err, &fieldErr) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: fieldErr.Message,
			Field:   fieldErr.Field,
		}
	}

	if errors.Is(err, users.ErrUsernameTaken) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, users.ErrInvalidCredentials) || errors.Is(err, ErrSessionInvalid) {
		return http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		}
	}

	if errors.Is(err, articles.ErrSlugConflict) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, progress.ErrScoreOutOfRange) ||
		errors.Is(err, users.ErrUsernameRequired) ||
		errors.Is(err, users.ErrPasswordRequired) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}
