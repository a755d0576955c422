// Package session owns who the caller is. Handlers and services receive an
// Identity explicitly; nothing reads authentication state from globals.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Identity is the authenticated caller. NationalID is the customer key
// correlating bookings, payments and support tickets.
type Identity struct {
	NationalID int64  `json:"national_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

type Session struct {
	ID       string   `json:"id"`
	Identity Identity `json:"identity"`
	// BackendToken authenticates this customer against the remote ticketing
	// backend; it is forwarded on every remote call made on their behalf.
	BackendToken string    `json:"backend_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type redisStore struct {
	cli *redis.Client
	ttl time.Duration
}

func NewRedisStore(cli *redis.Client, ttl time.Duration) Store {
	return &redisStore{cli: cli, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *redisStore) Create(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cli.Set(ctx, sessionKey(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.cli.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.cli.Del(ctx, sessionKey(id)).Err()
}
