package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-kb/quiz"
)

func (api *API) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.requireUser(w, r)
	if !ok {
		return
	}

	record, err := api.articles.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := api.progress.MarkRead(r.Context(), userID, record.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type quizSubmission struct {
	Choices []int `json:"choices"`
}

type quizResultResponse struct {
	Score   int                 `json:"score"`
	Answers []quiz.AnswerResult `json:"answers"`
	HTML    string              `json:"html"`
}

func (api *API) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.requireUser(w, r)
	if !ok {
		return
	}

	record, err := api.articles.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}

	if len(record.Quiz) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: "article has no quiz",
		})
		return
	}

	submission := quizSubmission{}
	if err := decodeJSON(r, &submission); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_payload", Message: err.Error()})
		return
	}

	score, answers := quiz.Grade(record.Quiz, submission.Choices)
	if _, err := api.progress.RecordAttempt(r.Context(), userID, record.ID, score); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quizResultResponse{
		Score:   score,
		Answers: answers,
		HTML:    quiz.RenderResult(score, answers),
	})
}

type attemptResponse struct {
	ArticleID uuid.UUID `json:"article_id"`
	Score     int       `json:"score"`
	TakenAt   time.Time `json:"taken_at"`
}

func (api *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := api.progress.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	read := make([]articleSummary, 0, len(profile.ReadArticles))
	for _, record := range profile.ReadArticles {
		read = append(read, summarize(record))
	}

	attempts := make([]attemptResponse, 0, len(profile.QuizAttempts))
	for _, attempt := range profile.QuizAttempts {
		attempts = append(attempts, attemptResponse{
			ArticleID: attempt.ArticleID,
			Score:     attempt.Score,
			TakenAt:   attempt.TakenAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"read_articles": read,
		"quiz_attempts": attempts,
		"average_score": profile.AverageScore,
	})
}
