package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lupon/admin-client/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LoginRequest is the body of the token endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the answer of the token endpoints.
// Refresh is empty when the backend does not rotate refresh tokens.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RefreshRequest is the body of the refresh endpoint
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair and stores it
func (c *Client) Login(ctx context.Context, username, password string) error {
	var pair TokenPair
	raw, err := c.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      c.authCfg.TokenEndpoint,
		Body:      LoginRequest{Username: username, Password: password},
		anonymous: true,
	})
	if err != nil {
		return err
	}
	if err := Decode(raw, &pair); err != nil {
		return fmt.Errorf("parsing login response: %w", err)
	}
	if pair.Access == "" {
		return fmt.Errorf("login response carries no access token")
	}

	c.tokens.SetTokens(ctx, pair.Access, pair.Refresh)
	c.logger.Info("logged in", zap.String("username", username))
	return nil
}

// Logout forgets the stored session
func (c *Client) Logout(ctx context.Context) {
	c.tokens.Clear(ctx)
	c.logger.Info("logged out")
}

// RequireSession returns ErrNotAuthenticated when neither token is stored
func (c *Client) RequireSession() error {
	if c.tokens.AccessToken() == "" && c.tokens.RefreshToken() == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new access token.
// The stored session is cleared only when the backend rejects the refresh
// token; transport failures and cancellations leave it in place.
func (c *Client) Refresh(ctx context.Context) error {
	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		return ErrNotAuthenticated
	}

	raw, err := c.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      c.authCfg.RefreshEndpoint,
		Body:      RefreshRequest{Refresh: refresh},
		anonymous: true,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return c.rejectRefresh(ctx, err)
		}
		c.metrics.IncRefresh(telemetry.RefreshFailure)
		return fmt.Errorf("refreshing access token: %w", err)
	}

	var pair TokenPair
	if err := Decode(raw, &pair); err != nil {
		return c.rejectRefresh(ctx, err)
	}
	if pair.Access == "" {
		return c.rejectRefresh(ctx, errors.New("refresh response carries no access token"))
	}

	c.metrics.IncRefresh(telemetry.RefreshSuccess)
	c.tokens.SetAccessToken(ctx, pair.Access, pair.Refresh)
	return nil
}

func (c *Client) rejectRefresh(ctx context.Context, cause error) error {
	c.metrics.IncRefresh(telemetry.RefreshFailure)
	c.tokens.Clear(ctx)
	return fmt.Errorf("refreshing access token: %w: %w", ErrRefreshRejected, cause)
}

// refreshAccess returns an access token newer than stale.
// Concurrent callers share one refresh call; a caller whose token was
// already replaced gets the current one without refreshing again.
// The shared call is detached from ctx so that one caller giving up does not
// fail it for the others; that caller gets ctx.Err() instead.
func (c *Client) refreshAccess(ctx context.Context, stale string) (string, error) {
	ch := c.refreshGroup.DoChan("refresh", func() (any, error) {
		if current := c.tokens.AccessToken(); current != stale {
			if current == "" {
				return "", ErrNotAuthenticated
			}
			return current, nil
		}
		if err := c.Refresh(context.WithoutCancel(ctx)); err != nil {
			return "", err
		}
		return c.tokens.AccessToken(), nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}
