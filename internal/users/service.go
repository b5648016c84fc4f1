package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-kb/internal/logging"
	"github.com/goliatone/go-kb/pkg/interfaces"
	kbusers "github.com/goliatone/go-kb/users"
)

// ServiceConfig configures user management.
type ServiceConfig struct {
	// BcryptCost overrides the hashing cost; zero uses bcrypt.DefaultCost.
	BcryptCost int
	Logger     interfaces.Logger
}

// UserService implements users.Service with bcrypt-hashed credentials.
type UserService struct {
	repo   kbusers.Repository
	cost   int
	logger interfaces.Logger
}

var _ kbusers.Service = (*UserService)(nil)

// NewService constructs the user service.
func NewService(repo kbusers.Repository, cfg ServiceConfig) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &UserService{repo: repo, cost: cost, logger: logger}
}

// Register validates the request, rejects duplicate usernames, and persists
// the new identity with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, req kbusers.RegisterRequest) (*kbusers.User, error) {
	req.Username = strings.TrimSpace(req.Username)

	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, kbusers.ErrUsernameTaken
	} else {
		var notFound *kbusers.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("users: lookup %s: %w", req.Username, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("users: hash password: %w", err)
	}

	user := &kbusers.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("users: create %s: %w", req.Username, err)
	}

	s.logger.Info("user registered", "username", created.Username)
	return created, nil
}

// Authenticate verifies the credentials. Unknown usernames and wrong
// passwords both surface as ErrInvalidCredentials so callers cannot probe
// for registered names.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*kbusers.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, kbusers.ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		var notFound *kbusers.NotFoundError
		if errors.As(err, &notFound) {
			return nil, kbusers.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("users: lookup %s: %w", username, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, kbusers.ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword replaces the stored hash for the given user.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, password string) error {
	if strings.TrimSpace(password) == "" {
		return kbusers.ErrPasswordRequired
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("users: hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if _, err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("users: update %s: %w", user.Username, err)
	}
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*kbusers.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*kbusers.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func validateRegistration(req kbusers.RegisterRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.Required.Error("is required"), validation.Length(1, 63)),
		validation.Field(&req.Password, validation.Required.Error("is required"), validation.Length(8, 255)),
	)
	if err == nil {
		return nil
	}

	if fieldErrors, ok := err.(validation.Errors); ok {
		// ozzo keys the error map by the json tag name.
		for _, field := range []string{"username", "password"} {
			if fieldErr, ok := fieldErrors[field]; ok {
				return &kbusers.ValidationError{
					Field:   field,
					Message: fieldErr.Error(),
				}
			}
		}
	}
	return err
}
