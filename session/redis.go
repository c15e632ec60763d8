package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	redisdb "github.com/octabyte/bm-gateway/db/redis"
	"github.com/octabyte/bm-gateway/models"
	"github.com/octabyte/bm-gateway/utils"
)

const DefaultKey = "bm:session"

type redisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore persists the credentials as JSON under key, so a session
// survives process restarts. A zero ttl never expires the key.
func NewRedisStore(client *redis.Client, key string, ttl time.Duration) Store {
	if key == "" {
		key = DefaultKey
	}
	return &redisStore{client: client, key: key, ttl: ttl}
}

func (r *redisStore) Load(ctx context.Context) (*models.Credentials, error) {
	raw, found, err := redisdb.Get(ctx, r.client, r.key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	var creds models.Credentials
	if err := utils.BytesToStruct(raw, &creds); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if creds.AccessToken == "" {
		return nil, nil
	}
	return &creds, nil
}

func (r *redisStore) Save(ctx context.Context, creds models.Credentials) error {
	if creds.AccessToken == "" {
		return ErrEmptyToken
	}
	raw, err := utils.StructToBytes(creds)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := redisdb.Set(ctx, r.client, r.key, raw, r.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *redisStore) Clear(ctx context.Context) error {
	if err := redisdb.Del(ctx, r.client, r.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
