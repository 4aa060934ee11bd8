// Package auth keeps the bearer and refresh tokens of the current session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lupon/admin-client/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// Storage keys for the session tokens
const (
	AccessTokenKey  = "auth:access_token"
	RefreshTokenKey = "auth:refresh_token"
)

// ErrNoToken is returned by Claims when no access token is stored
var ErrNoToken = errors.New("auth: no access token")

// Claims are the fields of a backend access token the client cares about.
// The backend issues simplejwt tokens carrying user_id.
type Claims struct {
	UserID    int       `json:"user_id"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its expiry at now
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

type accessClaims struct {
	UserID    int    `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenStore holds the session tokens in memory and mirrors them into storage
type TokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string

	store  storage.Storage
	logger *zap.Logger
}

// Option configures a TokenStore
type Option func(*TokenStore)

// WithLogger sets the logger for the token store
func WithLogger(logger *zap.Logger) Option {
	return func(s *TokenStore) {
		s.logger = logger
	}
}

// NewTokenStore creates an empty token store. Call Load to restore a saved session.
func NewTokenStore(store storage.Storage, opts ...Option) *TokenStore {
	s := &TokenStore{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores tokens saved by a previous process
func (s *TokenStore) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	access, _, err := s.store.Get(ctx, AccessTokenKey)
	if err != nil {
		return fmt.Errorf("loading access token: %w", err)
	}
	refresh, _, err := s.store.Get(ctx, RefreshTokenKey)
	if err != nil {
		return fmt.Errorf("loading refresh token: %w", err)
	}

	s.mu.Lock()
	s.access, s.refresh = access, refresh
	s.mu.Unlock()
	return nil
}

// AccessToken returns the current access token, or "" when logged out
func (s *TokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the current refresh token, or "" when none is stored
func (s *TokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// SetTokens stores both tokens after a login
func (s *TokenStore) SetTokens(ctx context.Context, access, refresh string) {
	s.mu.Lock()
	s.access, s.refresh = access, refresh
	s.mu.Unlock()

	s.persist(ctx, AccessTokenKey, access)
	s.persist(ctx, RefreshTokenKey, refresh)
}

// SetAccessToken replaces the access token after a refresh.
// A non-empty rotated refresh token replaces the stored one as well.
func (s *TokenStore) SetAccessToken(ctx context.Context, access, rotatedRefresh string) {
	s.mu.Lock()
	s.access = access
	if rotatedRefresh != "" {
		s.refresh = rotatedRefresh
	}
	s.mu.Unlock()

	s.persist(ctx, AccessTokenKey, access)
	if rotatedRefresh != "" {
		s.persist(ctx, RefreshTokenKey, rotatedRefresh)
	}
}

// Clear forgets both tokens
func (s *TokenStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.access, s.refresh = "", ""
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	for _, key := range []string{AccessTokenKey, RefreshTokenKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete stored token", zap.String("key", key), zap.Error(err))
		}
	}
}

// Claims decodes the access token without verifying its signature.
// The client has no signing key; the server remains the authority.
func (s *TokenStore) Claims() (Claims, error) {
	token := s.AccessToken()
	if token == "" {
		return Claims{}, ErrNoToken
	}

	var parsed accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &parsed); err != nil {
		return Claims{}, fmt.Errorf("decoding access token: %w", err)
	}

	out := Claims{UserID: parsed.UserID, TokenType: parsed.TokenType}
	if parsed.ExpiresAt != nil {
		out.ExpiresAt = parsed.ExpiresAt.Time
	}
	return out, nil
}

func (s *TokenStore) persist(ctx context.Context, key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		s.logger.Warn("failed to persist token", zap.String("key", key), zap.Error(err))
	}
}
