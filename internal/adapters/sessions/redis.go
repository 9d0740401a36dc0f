package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "cyberdash:session:"

var _ ports.SessionStore = (*Redis)(nil)

// Redis shares sessions between instances. Keys expire with the session.
type Redis struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedis parses a redis:// or rediss:// URL and pings the server.
func NewRedis(ctx context.Context, url string) (*Redis, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisWithClient(client), client, nil
}

func NewRedisWithClient(client redis.Cmdable) *Redis {
	return &Redis{client: client, now: time.Now}
}

func sessionKey(token string) string {
	return sessionPrefix + token
}

// ttlFor returns how long a session has left; zero or less means expired.
func ttlFor(s domain.Session, now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}

func (r *Redis) Put(ctx context.Context, s domain.Session) error {
	ttl := ttlFor(s, r.now())
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, sessionKey(s.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *Redis) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
