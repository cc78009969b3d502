package shared

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyFormField carries the per-form submission key.
const IdempotencyFormField = "idempotency_key"

// ErrIdempotencyConflict reports a create form that was already submitted.
var ErrIdempotencyConflict = errors.New("Data sedang atau sudah diproses.")

// IdempotencyStore remembers create-form submissions in Redis so a double
// click reaches the HR API only once.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore constructs the store; ttl defaults to ten minutes.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Claim reserves key for module. The returned release frees the key again and
// is meant for submissions the API rejected, so the user can retry the form.
func (s *IdempotencyStore) Claim(ctx context.Context, module, key string) (release func(context.Context) error, err error) {
	if s == nil {
		return nil, errors.New("idempotency: store not initialised")
	}
	if module == "" || key == "" {
		return nil, errors.New("idempotency: module and key required")
	}
	rk := "hrportal:form:" + module + ":" + key
	ok, err := s.client.SetNX(ctx, rk, time.Now().Unix(), s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIdempotencyConflict
	}
	return func(ctx context.Context) error {
		return s.client.Del(ctx, rk).Err()
	}, nil
}
