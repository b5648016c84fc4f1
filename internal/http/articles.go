package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-kb/articles"
)

type articleSummary struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Tags       []string  `json:"tags"`
	ModifiedAt time.Time `json:"modified_at"`
	HasQuiz    bool      `json:"has_quiz"`
}

type articleDetail struct {
	articleSummary
	Body string                  `json:"body"`
	TOC  []articles.TOCEntry     `json:"toc"`
	Quiz []articles.QuizQuestion `json:"quiz,omitempty"`
}

func summarize(record *articles.Article) articleSummary {
	return articleSummary{
		Slug:       record.Slug,
		Title:      record.Title,
		Tags:       record.TagList(),
		ModifiedAt: record.ModifiedAt,
		HasQuiz:    len(record.Quiz) > 0,
	}
}

func (api *API) handleListArticles(w http.ResponseWriter, r *http.Request) {
	records, err := api.articles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]articleSummary, 0, len(records))
	for _, record := range records {
		payload = append(payload, summarize(record))
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": payload})
}

func (api *API) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	record, err := api.articles.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleDetail{
		articleSummary: summarize(record),
		Body:           record.Body,
		TOC:            record.TOC,
		Quiz:           record.Quiz,
	})
}

func (api *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	records, err := api.articles.Search(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]articleSummary, 0, len(records))
	for _, record := range records {
		payload = append(payload, summarize(record))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":    query,
		"articles": payload,
	})
}

type syncRequest struct {
	Dir string `json:"dir"`
}

func (api *API) handleSync(w http.ResponseWriter, r *http.Request) {
	req := syncRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_payload", Message: err.Error()})
			return
		}
	}

	result, err := api.markdown.Sync(r.Context(), req.Dir)
	if err != nil {
		writeError(w, err)
		return
	}

	api.logger.Info("sync pass finished",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	writeJSON(w, http.StatusOK, result)
}
