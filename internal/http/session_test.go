package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionRoundTrip(t *testing.T) {
	manager := NewSessionManager("secret", time.Hour)
	userID := uuid.New()

	recorder := httptest.NewRecorder()
	if err := manager.Issue(recorder, userID, "alice"); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	got, err := manager.Verify(req)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	manager := NewSessionManager("secret", time.Hour)

	recorder := httptest.NewRecorder()
	if err := manager.Issue(recorder, uuid.New(), "alice"); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	cookie := recorder.Result().Cookies()[0]
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if _, err := manager.Verify(req); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	issuer := NewSessionManager("secret-a", time.Hour)
	verifier := NewSessionManager("secret-b", time.Hour)

	recorder := httptest.NewRecorder()
	if err := issuer.Issue(recorder, uuid.New(), "alice"); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(recorder.Result().Cookies()[0])

	if _, err := verifier.Verify(req); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionMissingCookie(t *testing.T) {
	manager := NewSessionManager("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := manager.Verify(req); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}
