// Package session provides an optional server-side record of issued tokens,
// keyed by token id. When enabled, logout revokes the record and the auth
// middleware rejects tokens whose record is gone, closing the gap left by
// purely stateless bearer tokens.
package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store keeps session records in Redis with the token TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore builds a store. A nil client disables it; all methods then no-op.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Enabled reports whether a backing client is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Save records an issued session.
func (s *Store) Save(ctx context.Context, sessionID, subjectID string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Set(ctx, keyPrefix+sessionID, subjectID, s.ttl).Err()
}

// Exists reports whether the session is still live. A disabled store reports
// true: token expiry alone governs validity then.
func (s *Store) Exists(ctx context.Context, sessionID string) (bool, error) {
	if !s.Enabled() {
		return true, nil
	}
	n, err := s.client.Exists(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke deletes the session record.
func (s *Store) Revoke(ctx context.Context, sessionID string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}
