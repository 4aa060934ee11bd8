package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/lupon/admin-client/internal/domain/trade"
	"github.com/lupon/admin-client/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.API.BaseURL = serverURL
	cfg.Storage.Driver = config.StorageSQLite
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "state.db")
	return cfg
}

func TestNew_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	var contactGets atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/token/":
			_, _ = w.Write([]byte(`{"access": "acc-1", "refresh": "ref-1"}`))
		case "/api/contactos/":
			contactGets.Add(1)
			if r.Header.Get("Authorization") != "Bearer acc-1" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail": "Las credenciales de autenticación no se proveyeron."}`))
				return
			}
			_, _ = w.Write([]byte(`[{"id": 1, "tipo": "cliente", "nombre": "Almacén Don José"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)

	first, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, first.Client.Login(ctx, "ana", "secreta"))

	clientes, err := first.Contactos.ListClientes(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, clientes, 1)
	require.NoError(t, first.Close())

	second, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, "acc-1", second.Tokens.AccessToken())
	assert.Equal(t, "ref-1", second.Tokens.RefreshToken())

	again, err := second.Contactos.ListClientes(ctx, "", true)
	require.NoError(t, err)
	assert.Equal(t, clientes, again)
	assert.EqualValues(t, 1, contactGets.Load(), "customer listing is served from the persisted cache")

	families, err := second.Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "lupon_cache_lookups_total")
}

func TestNew_InvalidBaseURL(t *testing.T) {
	cfg := config.Default()
	cfg.API.BaseURL = ""
	cfg.Storage.Driver = config.StorageMemory

	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestNew_StoredTokensAreUsed(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stored", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	a.Tokens.SetTokens(ctx, "stored", "ref")
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	defer b.Close()

	ventas, err := b.Ventas.List(ctx, trade.VentaFilter{})
	require.NoError(t, err)
	assert.Empty(t, ventas)
}
