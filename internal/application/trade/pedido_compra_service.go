package trade

import (
	"context"
	"net/url"
	"strconv"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/lupon/admin-client/internal/domain/trade"
)

const (
	pedidosComprasPath        = "pedidos-compras"
	pedidosComprasDetallePath = "pedidos-compras-detalle"
)

// PedidoCompraService handles purchase orders and their lines
type PedidoCompraService struct {
	api resource.API
}

// NewPedidoCompraService creates a new PedidoCompraService
func NewPedidoCompraService(api resource.API) *PedidoCompraService {
	return &PedidoCompraService{api: api}
}

// List returns purchase orders matching filter
func (s *PedidoCompraService) List(ctx context.Context, filter trade.PedidoCompraFilter) ([]trade.PedidoCompra, error) {
	var out []trade.PedidoCompra
	if err := s.api.Get(ctx, resource.Path(pedidosComprasPath), filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a purchase order by ID
func (s *PedidoCompraService) Get(ctx context.Context, id int) (*trade.PedidoCompra, error) {
	var out trade.PedidoCompra
	if err := s.api.Get(ctx, resource.Path(pedidosComprasPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a purchase order with its lines
func (s *PedidoCompraService) Create(ctx context.Context, in trade.PedidoCompraInput) (*trade.PedidoCompra, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out trade.PedidoCompra
	if err := s.api.Post(ctx, resource.Path(pedidosComprasPath), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to a purchase order
func (s *PedidoCompraService) Update(ctx context.Context, id int, patch trade.PedidoCompraPatch) (*trade.PedidoCompra, error) {
	if err := shared.Validate(patch); err != nil {
		return nil, err
	}
	var out trade.PedidoCompra
	if err := s.api.Patch(ctx, resource.Path(pedidosComprasPath, id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AgregarDetalle adds a line to a pending purchase order
func (s *PedidoCompraService) AgregarDetalle(ctx context.Context, pedidoID int, in trade.DetallePedidoInput) (*trade.DetalleResult[trade.DetallePedidoCompra], error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out trade.DetalleResult[trade.DetallePedidoCompra]
	if err := s.api.Post(ctx, resource.Path(pedidosComprasPath, pedidoID, "detalles"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModificarDetalle changes a line of a pending purchase order
func (s *PedidoCompraService) ModificarDetalle(ctx context.Context, pedidoID, detalleID int, patch trade.DetallePedidoPatch) (*trade.DetalleResult[trade.DetallePedidoCompra], error) {
	if err := shared.Validate(patch); err != nil {
		return nil, err
	}
	var out trade.DetalleResult[trade.DetallePedidoCompra]
	if err := s.api.Patch(ctx, resource.Path(pedidosComprasPath, pedidoID, "detalles", detalleID), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EliminarDetalle removes a line from a pending purchase order.
// The backend reads the line ID from the detalle_id query parameter as well as the path.
func (s *PedidoCompraService) EliminarDetalle(ctx context.Context, pedidoID, detalleID int) (*trade.DetalleResult[trade.DetallePedidoCompra], error) {
	var out trade.DetalleResult[trade.DetallePedidoCompra]
	path := resource.Path(pedidosComprasPath, pedidoID, "detalles", detalleID) +
		"?" + url.Values{"detalle_id": {strconv.Itoa(detalleID)}}.Encode()
	if err := s.api.Delete(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDetalles returns the lines of a purchase order
func (s *PedidoCompraService) ListDetalles(ctx context.Context, pedidoID int) ([]trade.DetallePedidoCompra, error) {
	var out []trade.DetallePedidoCompra
	q := url.Values{"pedido_id": {strconv.Itoa(pedidoID)}}
	if err := s.api.Get(ctx, resource.Path(pedidosComprasDetallePath), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
