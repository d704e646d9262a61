// Package redis provides Redis-backed session persistence and distributed
// locking for multi-replica deployments.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "espalier:session:"

// Store implements ports.StateStore on top of a Redis client.
// Each session is a JSON blob under prefix+sessionID. A ZSET at
// prefix+"index" tracks known sessions, scored by expiry time so List can
// lazily evict entries whose keys already expired.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithTTL sets an expiration on saved sessions. Zero means no expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewFromClient creates a Store using an existing Redis client.
func NewFromClient(client *backend.Client, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save serializes the state and updates the session index.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error saving session: %w", err)
	}

	// Index score is the expiry instant, or 0 for sessions that never expire.
	var score float64
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}
	if err := s.client.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID}).Err(); err != nil {
		return fmt.Errorf("redis error indexing session: %w", err)
	}
	return nil
}

// Load retrieves and deserializes a session state.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading session: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("failed to deserialize state: %w", err)
	}
	return &state, nil
}

// Delete removes the session and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis error deleting session: %w", err)
	}
	if err := s.client.ZRem(ctx, s.indexKey(), sessionID).Err(); err != nil {
		return fmt.Errorf("redis error unindexing session: %w", err)
	}
	return nil
}

// List returns known session IDs, lazily pruning index entries whose keys
// have expired. Score 0 marks sessions without expiry, so the prune range
// starts just above it.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "(0", now).Err(); err != nil {
		return nil, fmt.Errorf("redis error pruning session index: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing sessions: %w", err)
	}
	return ids, nil
}
