// Package finance provides the collection, payment and credit note services.
package finance

import (
	"context"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/finance"
	"github.com/lupon/admin-client/internal/domain/shared"
)

const cobrosPath = "cobros"

// CobroService handles collections from customers
type CobroService struct {
	api resource.API
}

// NewCobroService creates a new CobroService
func NewCobroService(api resource.API) *CobroService {
	return &CobroService{api: api}
}

// List returns all collections
func (s *CobroService) List(ctx context.Context) ([]finance.Cobro, error) {
	var out []finance.Cobro
	if err := s.api.Get(ctx, resource.Path(cobrosPath), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a collection by ID
func (s *CobroService) Get(ctx context.Context, id int) (*finance.Cobro, error) {
	var out finance.Cobro
	if err := s.api.Get(ctx, resource.Path(cobrosPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a collection and its applications to sales
func (s *CobroService) Create(ctx context.Context, in finance.CobroInput) (*finance.Cobro, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out finance.Cobro
	if err := s.api.Post(ctx, resource.Path(cobrosPath), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddDetalles applies more of an existing collection to sales
func (s *CobroService) AddDetalles(ctx context.Context, id int, detalles []finance.AplicacionCobro) (*finance.Cobro, error) {
	in := finance.AplicacionesCobroInput{Detalles: detalles}
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out finance.Cobro
	if err := s.api.Patch(ctx, resource.Path(cobrosPath, id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
