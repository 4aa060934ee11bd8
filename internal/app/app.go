// Package app assembles the client runtime: storage, session tokens, cache,
// HTTP client and one service per backend resource.
package app

import (
	"context"
	"errors"
	"fmt"

	catalogapp "github.com/lupon/admin-client/internal/application/catalog"
	financeapp "github.com/lupon/admin-client/internal/application/finance"
	partnerapp "github.com/lupon/admin-client/internal/application/partner"
	reportapp "github.com/lupon/admin-client/internal/application/report"
	tradeapp "github.com/lupon/admin-client/internal/application/trade"
	"github.com/lupon/admin-client/internal/client"
	"github.com/lupon/admin-client/internal/infrastructure/auth"
	"github.com/lupon/admin-client/internal/infrastructure/cache"
	"github.com/lupon/admin-client/internal/infrastructure/config"
	"github.com/lupon/admin-client/internal/infrastructure/storage"
	"github.com/lupon/admin-client/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// App owns every long-lived component. Build it with New and release it with Close.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Storage  storage.Storage
	Tokens   *auth.TokenStore
	Cache    *cache.Cache
	Client   *client.Client

	Contactos      *partnerapp.ContactoService
	Usuarios       *partnerapp.UsuarioService
	Productos      *catalogapp.ProductoService
	PedidosVentas  *tradeapp.PedidoVentaService
	Ventas         *tradeapp.VentaService
	PedidosCompras *tradeapp.PedidoCompraService
	Compras        *tradeapp.CompraService
	Cobros         *financeapp.CobroService
	Pagos          *financeapp.PagoService
	NotasCredito   *financeapp.NotaCreditoService
	Dashboard      *reportapp.DashboardService
}

// New builds the runtime from cfg. The stored session, if any, is restored.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	store, err := storage.Open(cfg.Storage, log.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	tokens := auth.NewTokenStore(store, auth.WithLogger(log.Named("auth")))
	if err := tokens.Load(ctx); err != nil {
		log.Warn("stored session could not be restored", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewClientMetrics(registry)

	c := cache.New(store,
		cache.WithLogger(log.Named("cache")),
		cache.WithMetrics(metrics),
	)

	api, err := client.New(cfg.API, cfg.Auth, tokens,
		client.WithLogger(log.Named("client")),
		client.WithMetrics(metrics),
	)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	ttl := cfg.Cache.ReferenceTTL
	return &App{
		Config:   cfg,
		Logger:   log,
		Registry: registry,
		Storage:  store,
		Tokens:   tokens,
		Cache:    c,
		Client:   api,

		Contactos:      partnerapp.NewContactoService(api, c, ttl),
		Usuarios:       partnerapp.NewUsuarioService(api),
		Productos:      catalogapp.NewProductoService(api, c, ttl),
		PedidosVentas:  tradeapp.NewPedidoVentaService(api),
		Ventas:         tradeapp.NewVentaService(api),
		PedidosCompras: tradeapp.NewPedidoCompraService(api),
		Compras:        tradeapp.NewCompraService(api),
		Cobros:         financeapp.NewCobroService(api),
		Pagos:          financeapp.NewPagoService(api),
		NotasCredito:   financeapp.NewNotaCreditoService(api),
		Dashboard:      reportapp.NewDashboardService(api),
	}, nil
}

// Close releases the client, the cache and the storage, in that order
func (a *App) Close() error {
	var errs []error
	if err := a.Client.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing client: %w", err))
	}
	if err := a.Cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing cache: %w", err))
	}
	if err := a.Storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	return errors.Join(errs...)
}
