package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"food-delivery/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "chat:session:"

// RedisSessionStore keeps chat sessions as JSON values so that several
// service instances can share them. A zero TTL keeps sessions forever.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) key(userID string) string {
	return sessionKeyPrefix + userID
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (domain.Session, error) {
	raw, err := s.Client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewSession(userID), nil
	}
	if err != nil {
		return domain.Session{}, err
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, err
	}
	session.UserID = userID
	return session, nil
}

func (s *RedisSessionStore) Upsert(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(session.UserID), payload, s.TTL).Err()
}

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) QRCodeKey(orderID int) string {
	return "qr:order:" + strconv.Itoa(orderID)
}

// Get returns ok=false on a cache miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.Client.Set(ctx, key, value, c.TTL).Err()
}
