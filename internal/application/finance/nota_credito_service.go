package finance

import (
	"context"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/finance"
	"github.com/lupon/admin-client/internal/domain/shared"
)

const notasCreditoPath = "notas-credito"

// NotaCreditoService handles credit notes
type NotaCreditoService struct {
	api resource.API
}

// NewNotaCreditoService creates a new NotaCreditoService
func NewNotaCreditoService(api resource.API) *NotaCreditoService {
	return &NotaCreditoService{api: api}
}

// List returns credit notes matching filter
func (s *NotaCreditoService) List(ctx context.Context, filter finance.NotaCreditoFilter) ([]finance.NotaCredito, error) {
	var out []finance.NotaCredito
	if err := s.api.Get(ctx, resource.Path(notasCreditoPath), filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a credit note by ID
func (s *NotaCreditoService) Get(ctx context.Context, id int) (*finance.NotaCredito, error) {
	var out finance.NotaCredito
	if err := s.api.Get(ctx, resource.Path(notasCreditoPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a credit note
func (s *NotaCreditoService) Create(ctx context.Context, in finance.NotaCreditoInput) (*finance.NotaCredito, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out finance.NotaCredito
	if err := s.api.Post(ctx, resource.Path(notasCreditoPath), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
