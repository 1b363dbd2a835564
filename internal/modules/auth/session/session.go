// Package session holds the per-browser login state and its redis store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type LoginType string

const (
	LoginProvider LoginType = "provider"
	LoginWallet   LoginType = "wallet"
)

// Session is everything a browser's login flow persists between requests.
type Session struct {
	ID string `json:"-"`

	LoginType LoginType `json:"loginType,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	Token     string    `json:"token,omitempty"`
	Salt      string    `json:"salt,omitempty"`
	Address   string    `json:"address,omitempty"`

	// pending provider flow
	EphemeralKey       string `json:"ephemeralKey,omitempty"`
	Randomness         string `json:"randomness,omitempty"`
	RedirectAfterLogin string `json:"redirectAfterLogin,omitempty"`
	MaxEpoch           uint64 `json:"maxEpoch,omitempty"`
	State              string `json:"state,omitempty"`
}

// New returns an empty session with a fresh random id.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// IsAuthenticated is derived from the stored fields on every call.
func (s *Session) IsAuthenticated() bool {
	if s == nil {
		return false
	}
	switch s.LoginType {
	case LoginProvider:
		return s.Address != "" && s.Token != ""
	case LoginWallet:
		return s.Address != ""
	}
	return false
}

// Reset drops all state but keeps the id.
func (s *Session) Reset() {
	*s = Session{ID: s.ID}
}

var ErrNotFound = errors.New("session not found")

type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context, id string) error
}

// RedisStore keeps sessions as JSON under session:<id>. Without a redis
// client nothing is persisted and Save reports apperror.ErrUnavailable.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return "session:" + id
}

// Load returns ErrNotFound for unknown or expired ids.
func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	if r.rdb == nil {
		return nil, ErrNotFound
	}
	data, err := r.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s := &Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	s.ID = id
	return s, nil
}

// Save writes the session and refreshes its TTL.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	if r.rdb == nil {
		return fmt.Errorf("session store: %w", apperror.ErrUnavailable)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, id string) error {
	if r.rdb == nil {
		return nil
	}
	if err := r.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
