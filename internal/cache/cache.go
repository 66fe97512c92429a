// Package cache wraps the Redis-backed session token cache and the
// per-note response cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewClient(addr string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
}

// SessionCache tracks the single currently valid token per account under
// TOKEN_<id>_AUTH, plus single-use password reset tokens.
type SessionCache struct {
	client   *redis.Client
	tokenTTL time.Duration
	resetTTL time.Duration
}

func NewSessionCache(client *redis.Client, tokenTTL, resetTTL time.Duration) *SessionCache {
	return &SessionCache{
		client:   client,
		tokenTTL: tokenTTL,
		resetTTL: resetTTL,
	}
}

func tokenKey(userID int) string {
	return fmt.Sprintf("TOKEN_%d_AUTH", userID)
}

// SetToken overwrites any previous entry for the account, which is what
// invalidates earlier sessions on a fresh login.
func (s *SessionCache) SetToken(ctx context.Context, userID int, token string) error {
	return s.client.Set(ctx, tokenKey(userID), token, s.tokenTTL).Err()
}

// GetToken returns the cached token, or "" when no session exists.
func (s *SessionCache) GetToken(ctx context.Context, userID int) (string, error) {
	val, err := s.client.Get(ctx, tokenKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session token: %w", err)
	}
	return val, nil
}

func (s *SessionCache) DeleteToken(ctx context.Context, userID int) error {
	return s.client.Del(ctx, tokenKey(userID)).Err()
}

// FlushAll clears the entire cache database. Logout historically did
// this instead of deleting the caller's key; kept behind a config flag.
func (s *SessionCache) FlushAll(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}

func resetKey(token string) string {
	return fmt.Sprintf("RESET_%s_PWD", token)
}

func (s *SessionCache) SetResetToken(ctx context.Context, resetToken string, userID int) error {
	return s.client.Set(ctx, resetKey(resetToken), userID, s.resetTTL).Err()
}

// PullResetToken retrieves and consumes the reset token (pull semantics),
// so a reset link can only be used once. Returns 0 when absent.
func (s *SessionCache) PullResetToken(ctx context.Context, resetToken string) (int, error) {
	val, err := s.client.GetDel(ctx, resetKey(resetToken)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get reset token: %w", err)
	}
	return val, nil
}

// NoteCache stores serialized note detail responses under
// USER_<uid>_NOTE_<nid>_DETAIL.
type NoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNoteCache(client *redis.Client, ttl time.Duration) *NoteCache {
	return &NoteCache{client: client, ttl: ttl}
}

func detailKey(userID, noteID int) string {
	return fmt.Sprintf("USER_%d_NOTE_%d_DETAIL", userID, noteID)
}

// Get returns the cached payload, or "" on a miss. A miss is not an
// error, it just sends the caller to the store.
func (n *NoteCache) Get(ctx context.Context, userID, noteID int) (string, error) {
	val, err := n.client.Get(ctx, detailKey(userID, noteID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get note detail: %w", err)
	}
	return val, nil
}

func (n *NoteCache) Set(ctx context.Context, userID, noteID int, payload string) error {
	return n.client.Set(ctx, detailKey(userID, noteID), payload, n.ttl).Err()
}

func (n *NoteCache) Delete(ctx context.Context, userID, noteID int) error {
	return n.client.Del(ctx, detailKey(userID, noteID)).Err()
}
