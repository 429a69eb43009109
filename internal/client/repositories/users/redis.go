package users

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/usershelf/usershelf/internal/client/models"
)

// DefaultRedisKey is the hash holding every user.
const DefaultRedisKey = "usershelf:users"

// redisUser is the JSON value stored per hash field.
type redisUser struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
	Email       string `json:"email"`
}

// RedisRepository implements Store on one Redis hash keyed by user ID.
// A batch is written with a single HSET, which Redis applies atomically.
type RedisRepository struct {
	client redis.Cmdable
	key    string
}

func NewRedisRepository(client redis.Cmdable, key string) *RedisRepository {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisRepository{client: client, key: key}
}

func (r *RedisRepository) FetchAll(ctx context.Context) ([]models.User, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	out := make([]models.User, 0, len(fields))
	for field, raw := range fields {
		var ru redisUser
		if err := json.Unmarshal([]byte(raw), &ru); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", field, err)
		}
		out = append(out, models.User{ID: ru.ID, DisplayName: ru.DisplayName, Handle: ru.Handle, Email: ru.Email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RedisRepository) UpsertAndCommit(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	values := make(map[string]any, len(users))
	for _, u := range users {
		b, err := json.Marshal(redisUser{ID: u.ID, DisplayName: u.DisplayName, Handle: u.Handle, Email: u.Email})
		if err != nil {
			return fmt.Errorf("failed to encode user %d: %w", u.ID, err)
		}
		values[strconv.FormatInt(u.ID, 10)] = string(b)
	}

	if err := r.client.HSet(ctx, r.key, values).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	return nil
}

func (r *RedisRepository) Count(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis hlen failed: %w", err)
	}
	return int(n), nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
