package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-kb/users"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func (api *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	req := credentialsRequest{}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_payload", Message: err.Error()})
		return
	}

	user, err := api.users.Register(r.Context(), users.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if err := api.sessions.Issue(w, user.ID, user.Username); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
}

func (api *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := credentialsRequest{}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_payload", Message: err.Error()})
		return
	}

	user, err := api.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := api.sessions.Issue(w, user.ID, user.Username); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Username: user.Username})
}

func (api *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.sessions.Clear(w)
	writeJSON(w, http.StatusNoContent, nil)
}

// requireUser resolves the session cookie into an authenticated user id. It
// writes the 401 response itself so handlers can bail out with a single check.
func (api *API) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := api.sessions.Verify(r)
	if err != nil {
		writeError(w, err)
		return uuid.Nil, false
	}
	return userID, true
}
