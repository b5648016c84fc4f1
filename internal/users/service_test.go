package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	kbusers "github.com/goliatone/go-kb/users"
)

func newTestService() *UserService {
	return NewService(NewMemoryUserRepository(), ServiceConfig{BcryptCost: bcrypt.MinCost})
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, kbusers.RegisterRequest{Username: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if created.Username != "alice" {
		t.Fatalf("unexpected username: %s", created.Username)
	}
	if created.PasswordHash == "correct horse" || created.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	user, err := svc.Authenticate(ctx, "alice", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("authenticated wrong user: %s vs %s", user.ID, created.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, kbusers.RegisterRequest{Username: "alice", Password: "correct horse"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Register(ctx, kbusers.RegisterRequest{Username: "alice", Password: "another pass"})
	if !errors.Is(err, kbusers.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		req   kbusers.RegisterRequest
		field string
	}{
		{"missing username", kbusers.RegisterRequest{Password: "correct horse"}, "username"},
		{"missing password", kbusers.RegisterRequest{Username: "bob"}, "password"},
		{"short password", kbusers.RegisterRequest{Username: "bob", Password: "short"}, "password"},
	}

	for _, tc := range cases {
		_, err := svc.Register(ctx, tc.req)
		var fieldErr *kbusers.ValidationError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if fieldErr.Field != tc.field {
			t.Fatalf("%s: expected field %s, got %s", tc.name, tc.field, fieldErr.Field)
		}
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, kbusers.RegisterRequest{Username: "alice", Password: "correct horse"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// Unknown username and wrong password must be indistinguishable.
	if _, err := svc.Authenticate(ctx, "mallory", "correct horse"); !errors.Is(err, kbusers.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "wrong pass"); !errors.Is(err, kbusers.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "", ""); !errors.Is(err, kbusers.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for blank input, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, kbusers.RegisterRequest{Username: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.ChangePassword(ctx, created.ID, "new passphrase"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "alice", "correct horse"); !errors.Is(err, kbusers.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "new passphrase"); err != nil {
		t.Fatalf("new password should authenticate, got %v", err)
	}

	if err := svc.ChangePassword(ctx, created.ID, "  "); !errors.Is(err, kbusers.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}
