package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"signup_portal/internal/common"
	"signup_portal/internal/domain/model"
)

// MemoryUserRepository keeps users in process memory. Used for local
// development and tests.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	users      map[string]*model.User
	emailIndex map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      make(map[string]*model.User),
		emailIndex: make(map[string]string),
	}
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emailIndex[user.Email]; taken {
		return fmt.Errorf("user with email already exists: %w", common.ErrConflict)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	stored := *user
	r.users[user.ID] = &stored
	r.emailIndex[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailIndex[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	user := *r.users[id]
	return &user, nil
}

// Count returns the number of stored users.
func (r *MemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
