package finance

import (
	"context"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/finance"
	"github.com/lupon/admin-client/internal/domain/shared"
)

const pagosPath = "pagos"

// PagoService handles payments to suppliers
type PagoService struct {
	api resource.API
}

// NewPagoService creates a new PagoService
func NewPagoService(api resource.API) *PagoService {
	return &PagoService{api: api}
}

// List returns all payments
func (s *PagoService) List(ctx context.Context) ([]finance.Pago, error) {
	var out []finance.Pago
	if err := s.api.Get(ctx, resource.Path(pagosPath), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a payment by ID
func (s *PagoService) Get(ctx context.Context, id int) (*finance.Pago, error) {
	var out finance.Pago
	if err := s.api.Get(ctx, resource.Path(pagosPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a payment and its applications to purchases
func (s *PagoService) Create(ctx context.Context, in finance.PagoInput) (*finance.Pago, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out finance.Pago
	if err := s.api.Post(ctx, resource.Path(pagosPath), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddDetalles applies more of an existing payment to purchases
func (s *PagoService) AddDetalles(ctx context.Context, id int, detalles []finance.AplicacionPago) (*finance.Pago, error) {
	in := finance.AplicacionesPagoInput{Detalles: detalles}
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out finance.Pago
	if err := s.api.Patch(ctx, resource.Path(pagosPath, id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
