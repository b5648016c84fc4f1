package users

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes identity and authentication use cases. Session management
// itself belongs to the web edge; the service only hashes and verifies.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, password string) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// RegisterRequest captures the information required to create a user.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
