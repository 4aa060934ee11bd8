// Package partner provides the contact and user services.
package partner

import (
	"context"
	"net/url"
	"time"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/partner"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/lupon/admin-client/internal/infrastructure/cache"
)

// Cache key prefixes for contact listings
const (
	ContactosPrefix   = "contactos:"
	ClientesPrefix    = "clientes:"
	ProveedoresPrefix = "proveedores:"
)

const contactosPath = "contactos"

// ContactoService handles customers and suppliers
type ContactoService struct {
	api          resource.API
	cache        *cache.Cache
	referenceTTL time.Duration
}

// NewContactoService creates a new ContactoService.
// Customer and supplier listings are persisted for referenceTTL.
func NewContactoService(api resource.API, c *cache.Cache, referenceTTL time.Duration) *ContactoService {
	return &ContactoService{
		api:          api,
		cache:        c,
		referenceTTL: referenceTTL,
	}
}

// List returns the contacts matching filter. Listings are cached in memory
// only and the cached copy is used when useCache is set.
func (s *ContactoService) List(ctx context.Context, filter partner.ContactoFilter, useCache bool) ([]partner.Contacto, error) {
	q := filter.Query()
	return resource.ListCached[partner.Contacto](ctx, s.api, s.cache,
		resource.CacheKey(ContactosPrefix, q), resource.Path(contactosPath), q, useCache)
}

// ListClientes returns customers whose name contains nombre, persisted for the reference TTL
func (s *ContactoService) ListClientes(ctx context.Context, nombre string, useCache bool) ([]partner.Contacto, error) {
	return s.listTipo(ctx, partner.TipoCliente, ClientesPrefix, nombre, useCache)
}

// ListProveedores returns suppliers whose name contains nombre, persisted for the reference TTL
func (s *ContactoService) ListProveedores(ctx context.Context, nombre string, useCache bool) ([]partner.Contacto, error) {
	return s.listTipo(ctx, partner.TipoProveedor, ProveedoresPrefix, nombre, useCache)
}

func (s *ContactoService) listTipo(ctx context.Context, tipo partner.TipoContacto, prefix, nombre string, useCache bool) ([]partner.Contacto, error) {
	q := url.Values{"tipo": {string(tipo)}}
	if nombre != "" {
		q.Set("nombre", nombre)
	}
	return resource.ListCached[partner.Contacto](ctx, s.api, s.cache,
		resource.CacheKey(prefix, q), resource.Path(contactosPath), q, useCache,
		cache.Persisted(), cache.WithTTL(s.referenceTTL))
}

// Get returns a contact by ID
func (s *ContactoService) Get(ctx context.Context, id int) (*partner.Contacto, error) {
	var out partner.Contacto
	if err := s.api.Get(ctx, resource.Path(contactosPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a contact and drops every cached contact listing
func (s *ContactoService) Create(ctx context.Context, in partner.ContactoInput) (*partner.Contacto, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out partner.Contacto
	if err := s.api.Post(ctx, resource.Path(contactosPath), in, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &out, nil
}

// Update applies a partial update to a contact
func (s *ContactoService) Update(ctx context.Context, id int, patch partner.ContactoPatch) (*partner.Contacto, error) {
	if err := shared.Validate(patch); err != nil {
		return nil, err
	}
	var out partner.Contacto
	if err := s.api.Patch(ctx, resource.Path(contactosPath, id), patch, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &out, nil
}

// Delete deletes a contact
func (s *ContactoService) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, resource.Path(contactosPath, id), nil); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Search filters contacts by name, trade name, email, phone and address,
// ignoring case and accents
func (s *ContactoService) Search(items []partner.Contacto, query string) []partner.Contacto {
	return shared.Search(items, query, partner.Contacto.SearchText)
}

func (s *ContactoService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Clear(ctx, ContactosPrefix)
	s.cache.Clear(ctx, ClientesPrefix)
	s.cache.Clear(ctx, ProveedoresPrefix)
}
