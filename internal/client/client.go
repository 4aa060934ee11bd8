// Package client provides the HTTP client for the lupon REST API.
// It attaches the bearer token, parses error bodies uniformly and refreshes
// the access token once when a request is rejected with 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lupon/admin-client/internal/infrastructure/auth"
	"github.com/lupon/admin-client/internal/infrastructure/config"
	"github.com/lupon/admin-client/internal/infrastructure/logger"
	"github.com/lupon/admin-client/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-call request ID
const RequestIDHeader = "X-Request-ID"

// Client is the HTTP client for the backend API.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	apiRoot    string
	siteRoot   string
	authCfg    config.AuthConfig
	headers    map[string]string
	tokens     *auth.TokenStore
	limiter    *rate.Limiter
	logger     *zap.Logger
	metrics    *telemetry.ClientMetrics

	refreshGroup singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger for the client
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records request and refresh metrics
func WithMetrics(m *telemetry.ClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for cfg.BaseURL + cfg.BasePath.
// tokens may be nil for unauthenticated use.
func New(cfg config.APIConfig, authCfg config.AuthConfig, tokens *auth.TokenStore, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if authCfg.TokenEndpoint == "" {
		authCfg.TokenEndpoint = "/token/"
	}
	if authCfg.RefreshEndpoint == "" {
		authCfg.RefreshEndpoint = "/token/refresh/"
	}
	if tokens == nil {
		tokens = auth.NewTokenStore(nil)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	c := &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		apiRoot:    strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.BasePath, "/"),
		siteRoot:   strings.TrimRight(cfg.BaseURL, "/"),
		authCfg:    authCfg,
		headers:    make(map[string]string),
		tokens:     tokens,
		logger:     zap.NewNop(),
	}
	c.apiRoot = strings.TrimRight(c.apiRoot, "/")

	c.headers["Content-Type"] = "application/json"
	c.headers["Accept"] = "application/json"
	if cfg.UserAgent != "" {
		c.headers["User-Agent"] = cfg.UserAgent
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request describes one API call. Path is relative to the API root.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any

	// anonymous requests never carry the bearer token nor trigger a refresh
	anonymous bool
	// siteRelative paths resolve against the base URL instead of the API root
	siteRelative bool
}

// Do performs req and returns the raw JSON body, or nil for 204 and empty bodies.
// A 401 is answered with a single token refresh and one retry when a refresh token is stored.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	root := c.apiRoot
	if req.siteRelative {
		root = c.siteRoot
	}
	u, err := buildURL(root, req.Path, req.Query)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	var body []byte
	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	requestID := uuid.NewString()
	ctx, log := logger.WithRequestID(ctx, c.logger, requestID)

	ctx, span := telemetry.StartClientSpan(ctx, req.Method+" "+req.Path,
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", u),
		attribute.String("request.id", requestID),
	)
	defer span.End()

	token := ""
	if !req.anonymous {
		token = c.tokens.AccessToken()
	}

	status, respBody, err := c.send(ctx, req.Method, u, body, token, requestID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if status == http.StatusUnauthorized && !req.anonymous && c.tokens.RefreshToken() != "" {
		log.Debug("access token rejected, refreshing", zap.String("path", req.Path))

		fresh, refreshErr := c.refreshAccess(ctx, token)
		switch {
		case refreshErr == nil:
		case ctx.Err() != nil:
			telemetry.RecordError(span, ctx.Err())
			return nil, ctx.Err()
		case errors.Is(refreshErr, ErrRefreshRejected), errors.Is(refreshErr, ErrNotAuthenticated):
			log.Info("token refresh rejected, session cleared", zap.Error(refreshErr))
			apiErr := newAPIError(status, respBody)
			telemetry.RecordError(span, apiErr)
			return nil, apiErr
		default:
			log.Warn("token refresh failed, session kept", zap.Error(refreshErr))
			telemetry.RecordError(span, refreshErr)
			return nil, refreshErr
		}

		status, respBody, err = c.send(ctx, req.Method, u, body, fresh, requestID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if status < 200 || status > 299 {
		apiErr := newAPIError(status, respBody)
		log.Debug("api request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Int("status", status),
			zap.String("message", apiErr.Message))
		telemetry.RecordError(span, apiErr)
		return nil, apiErr
	}

	if status == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}
	return json.RawMessage(respBody), nil
}

// send performs a single HTTP exchange
func (c *Client) send(ctx context.Context, method, u string, body []byte, token, requestID string) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	c.setHeaders(httpReq)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveRequest(method, 0, time.Since(start))
		return 0, nil, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	c.metrics.ObserveRequest(method, httpResp.StatusCode, time.Since(start))
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}

	logger.FromContext(ctx, c.logger).Debug("api request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return httpResp.StatusCode, respBody, nil
}

// Get performs a GET and decodes the body into out (which may be nil)
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	raw, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	return decode(raw, err, out)
}

// Post performs a POST and decodes the body into out (which may be nil)
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	raw, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
	return decode(raw, err, out)
}

// Patch performs a PATCH and decodes the body into out (which may be nil)
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	raw, err := c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
	return decode(raw, err, out)
}

// Put performs a PUT and decodes the body into out (which may be nil)
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	raw, err := c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
	return decode(raw, err, out)
}

// Delete performs a DELETE and decodes the body, if any, into out (which may be nil)
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	raw, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
	return decode(raw, err, out)
}

// Document fetches a rendered document served outside the API root,
// e.g. "/documentos/ventas/4/pdf/". The session token is sent as for API calls.
func (c *Client) Document(ctx context.Context, path string) ([]byte, error) {
	raw, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, siteRelative: true})
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

// Decode unmarshals raw into out; a nil body leaves out untouched
func Decode(raw json.RawMessage, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decode(raw json.RawMessage, err error, out any) error {
	if err != nil {
		return err
	}
	return Decode(raw, out)
}

// buildURL joins root, path and query
func buildURL(root, path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(root + path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) setHeaders(req *http.Request) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

// APIRoot returns the base URL joined with the base path
func (c *Client) APIRoot() string {
	return c.apiRoot
}

// Tokens returns the session token store
func (c *Client) Tokens() *auth.TokenStore {
	return c.tokens
}

// Close releases idle connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
