package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"signup_portal/internal/common"
	"signup_portal/internal/domain/model"
)

const keyPrefix = "signup"

func userKey(id string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey maps an email to the owning user id. Claiming it with
// SETNX is what makes email uniqueness atomic in Redis.
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

type redisUserRepository struct {
	rdb *redis.Client
}

func NewRedisUserRepository(rdb *redis.Client) UserRepository {
	return &redisUserRepository{rdb: rdb}
}

func (r *redisUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(redisUser{User: *user, HashedPassword: user.HashedPassword})
	if err != nil {
		return fmt.Errorf("redisUserRepository.Create: marshal: %w", err)
	}

	claimed, err := r.rdb.SetNX(ctx, emailIndexKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("redisUserRepository.Create: claim email: %w", err)
	}
	if !claimed {
		return fmt.Errorf("user with email already exists: %w", common.ErrConflict)
	}

	if err := r.rdb.Set(ctx, userKey(user.ID), data, 0).Err(); err != nil {
		// Release the claim so the email is not left pointing at nothing.
		r.rdb.Del(context.WithoutCancel(ctx), emailIndexKey(user.Email))
		return fmt.Errorf("redisUserRepository.Create: save user: %w", err)
	}
	return nil
}

func (r *redisUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	id, err := r.rdb.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redisUserRepository.FindByEmail: %w", err)
	}

	data, err := r.rdb.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redisUserRepository.FindByEmail: %w", err)
	}

	var stored redisUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("redisUserRepository.FindByEmail: decode: %w", err)
	}
	user := stored.User
	user.HashedPassword = stored.HashedPassword
	return &user, nil
}

// redisUser adds the password hash to the stored JSON; model.User hides it.
type redisUser struct {
	model.User
	HashedPassword string `json:"hashed_password"`
}
