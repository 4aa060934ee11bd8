// Package proxy is a development reverse proxy in front of the backend API.
// It mirrors the frontend dev server: /api/* goes to the backend, and the
// proxy adds request IDs, access logs, tracing and metrics on the way.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lupon/admin-client/internal/infrastructure/config"
	"github.com/lupon/admin-client/internal/infrastructure/logger"
	"github.com/lupon/admin-client/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server forwards API traffic to the backend
type Server struct {
	cfg      config.ProxyConfig
	target   *url.URL
	engine   *gin.Engine
	log      *zap.Logger
	forwards *prometheus.CounterVec
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New builds the proxy. Metrics are registered on reg and served from
// /metrics; a nil reg disables both.
func New(cfg config.ProxyConfig, reg *prometheus.Registry, opts ...Option) (*Server, error) {
	target, err := url.Parse(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid proxy target %q: scheme and host are required", cfg.Target)
	}

	s := &Server{cfg: cfg, target: target, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	s.forwards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: telemetry.Namespace,
			Subsystem: "proxy",
			Name:      "forwarded_requests_total",
			Help:      "Requests forwarded to the backend by method and status code.",
		},
		[]string{"method", "status"},
	)

	engine := gin.New()
	engine.Use(logger.GinRequestID(s.log))
	engine.Use(logger.GinMiddleware(s.log))
	engine.Use(logger.GinRecovery(s.log))
	engine.Use(otelgin.Middleware(telemetry.TracerName + "-proxy"))

	engine.GET("/healthz", s.health)
	if reg != nil {
		reg.MustRegister(s.forwards)
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}
	engine.Any("/api/*path", s.forward(s.reverseProxy()))

	s.engine = engine
	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Proxy listening",
			zap.String("listen", s.cfg.Listen),
			zap.String("target", s.target.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("proxy shutdown: %w", err)
	}
	s.log.Info("Proxy stopped")
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "target": s.target.String()})
}

func (s *Server) reverseProxy() *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(s.target)
			r.SetXForwarded()
			r.Out.Host = s.target.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.FromContext(r.Context(), s.log).Warn("Backend unreachable", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"backend unavailable"}`))
		},
	}
}

func (s *Server) forward(rp *httputil.ReverseProxy) gin.HandlerFunc {
	return func(c *gin.Context) {
		rp.ServeHTTP(c.Writer, c.Request)
		s.forwards.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
