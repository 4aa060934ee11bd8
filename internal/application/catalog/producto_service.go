// Package catalog provides the product service.
package catalog

import (
	"context"
	"net/url"
	"time"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/catalog"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/lupon/admin-client/internal/infrastructure/cache"
)

// ProductosPrefix is the cache key prefix of product listings
const ProductosPrefix = "productos:"

const productosPath = "productos"

// ProductoService handles the product catalog
type ProductoService struct {
	api          resource.API
	cache        *cache.Cache
	referenceTTL time.Duration
}

// NewProductoService creates a new ProductoService.
// Listings are persisted for referenceTTL.
func NewProductoService(api resource.API, c *cache.Cache, referenceTTL time.Duration) *ProductoService {
	return &ProductoService{
		api:          api,
		cache:        c,
		referenceTTL: referenceTTL,
	}
}

// List returns products whose name contains nombre
func (s *ProductoService) List(ctx context.Context, nombre string, useCache bool) ([]catalog.Producto, error) {
	q := url.Values{}
	if nombre != "" {
		q.Set("nombre", nombre)
	}
	return resource.ListCached[catalog.Producto](ctx, s.api, s.cache,
		resource.CacheKey(ProductosPrefix, q), resource.Path(productosPath), q, useCache,
		cache.Persisted(), cache.WithTTL(s.referenceTTL))
}

// Get returns a product by ID
func (s *ProductoService) Get(ctx context.Context, id int) (*catalog.Producto, error) {
	var out catalog.Producto
	if err := s.api.Get(ctx, resource.Path(productosPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a product. Sale prices are derived by the backend.
func (s *ProductoService) Create(ctx context.Context, in catalog.ProductoInput) (*catalog.Producto, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out catalog.Producto
	if err := s.api.Post(ctx, resource.Path(productosPath), in, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &out, nil
}

// Update applies a partial update to a product
func (s *ProductoService) Update(ctx context.Context, id int, patch catalog.ProductoPatch) (*catalog.Producto, error) {
	if err := shared.Validate(patch); err != nil {
		return nil, err
	}
	var out catalog.Producto
	if err := s.api.Patch(ctx, resource.Path(productosPath, id), patch, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &out, nil
}

// Delete deletes a product
func (s *ProductoService) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, resource.Path(productosPath, id), nil); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Search filters products by name, description and family, ignoring case and accents
func (s *ProductoService) Search(items []catalog.Producto, query string) []catalog.Producto {
	return shared.Search(items, query, catalog.Producto.SearchText)
}

func (s *ProductoService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Clear(ctx, ProductosPrefix)
	}
}
