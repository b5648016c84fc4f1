package users

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	kbusers "github.com/goliatone/go-kb/users"
)

// NewUserRepository builds the go-repository-bun backed repository keyed by
// username.
func NewUserRepository(db *bun.DB) repository.Repository[*kbusers.User] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*kbusers.User]{
		NewRecord: func() *kbusers.User { return &kbusers.User{} },
		GetID: func(u *kbusers.User) uuid.UUID {
			return u.ID
		},
		SetID: func(u *kbusers.User, id uuid.UUID) {
			u.ID = id
		},
		GetIdentifier: func() string {
			return "username"
		},
		GetIdentifierValue: func(u *kbusers.User) string {
			return u.Username
		},
	})
}

// BunUserRepository implements users.Repository on top of bun.
type BunUserRepository struct {
	repo repository.Repository[*kbusers.User]
}

var _ kbusers.Repository = (*BunUserRepository)(nil)

func NewBunUserRepository(db *bun.DB) *BunUserRepository {
	return &BunUserRepository{repo: NewUserRepository(db)}
}

func (r *BunUserRepository) Create(ctx context.Context, user *kbusers.User) (*kbusers.User, error) {
	record, err := r.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user repository error: %w", err)
	}
	return record, nil
}

func (r *BunUserRepository) Update(ctx context.Context, user *kbusers.User) (*kbusers.User, error) {
	record, err := r.repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user repository error: %w", err)
	}
	return record, nil
}

func (r *BunUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*kbusers.User, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunUserRepository) GetByUsername(ctx context.Context, username string) (*kbusers.User, error) {
	record, err := r.repo.GetByIdentifier(ctx, username)
	if err != nil {
		return nil, mapRepositoryError(err, username)
	}
	return record, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &kbusers.NotFoundError{Key: key}
	}
	return fmt.Errorf("user repository error: %w", err)
}
