package users

import (
	"context"
	"sync"

	"github.com/google/uuid"

	kbusers "github.com/goliatone/go-kb/users"
)

// MemoryUserRepository is an in-memory users.Repository for unit tests.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*kbusers.User
	byUsername map[string]uuid.UUID
}

var _ kbusers.Repository = (*MemoryUserRepository)(nil)

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:       map[uuid.UUID]*kbusers.User{},
		byUsername: map[string]uuid.UUID{},
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *kbusers.User) (*kbusers.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	r.byID[copied.ID] = &copied
	r.byUsername[copied.Username] = copied.ID
	out := copied
	return &out, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *kbusers.User) (*kbusers.User, error) {
	return r.Create(ctx, user)
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*kbusers.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &kbusers.NotFoundError{Key: id.String()}
	}
	out := *record
	return &out, nil
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*kbusers.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, &kbusers.NotFoundError{Key: username}
	}
	out := *r.byID[id]
	return &out, nil
}
