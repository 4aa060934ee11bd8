package trade

import (
	"context"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/lupon/admin-client/internal/domain/trade"
)

const comprasPath = "compras"

// CompraService handles purchases
type CompraService struct {
	api resource.API
}

// NewCompraService creates a new CompraService
func NewCompraService(api resource.API) *CompraService {
	return &CompraService{api: api}
}

// List returns purchases matching filter
func (s *CompraService) List(ctx context.Context, filter trade.CompraFilter) ([]trade.Compra, error) {
	var out []trade.Compra
	if err := s.api.Get(ctx, resource.Path(comprasPath), filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a purchase by ID
func (s *CompraService) Get(ctx context.Context, id int) (*trade.Compra, error) {
	var out trade.Compra
	if err := s.api.Get(ctx, resource.Path(comprasPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a purchase
func (s *CompraService) Create(ctx context.Context, in trade.CompraInput) (*trade.Compra, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out trade.Compra
	if err := s.api.Post(ctx, resource.Path(comprasPath), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CambiarEstado moves a purchase to another reception state.
// Cancelling requires MotivoCancelacion.
func (s *CompraService) CambiarEstado(ctx context.Context, id int, in trade.CambiarEstadoCompraInput) (*resource.Status, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out resource.Status
	if err := s.api.Post(ctx, resource.Path(comprasPath, id, "cambiar_estado_compra"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
