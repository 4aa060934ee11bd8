// Package trade provides the sales and purchase services.
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
	pedidosVentasPath        = "pedidos-ventas"
	pedidosVentasDetallePath = "pedidos-ventas-detalle"
)

// PedidoVentaService handles sales orders and their lines
type PedidoVentaService struct {
	api resource.API
}

// NewPedidoVentaService creates a new PedidoVentaService
func NewPedidoVentaService(api resource.API) *PedidoVentaService {
	return &PedidoVentaService{api: api}
}

// List returns sales orders matching filter
func (s *PedidoVentaService) List(ctx context.Context, filter trade.PedidoVentaFilter) ([]trade.PedidoVenta, error) {
	var out []trade.PedidoVenta
	if err := s.api.Get(ctx, resource.Path(pedidosVentasPath), filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a sales order by ID
func (s *PedidoVentaService) Get(ctx context.Context, id int) (*trade.PedidoVenta, error) {
	var out trade.PedidoVenta
	if err := s.api.Get(ctx, resource.Path(pedidosVentasPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a sales order with its lines
func (s *PedidoVentaService) Create(ctx context.Context, in trade.PedidoVentaInput) (*trade.PedidoVenta, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out trade.PedidoVenta
	if err := s.api.Post(ctx, resource.Path(pedidosVentasPath), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to a sales order
func (s *PedidoVentaService) Update(ctx context.Context, id int, patch trade.PedidoVentaPatch) (*trade.PedidoVenta, error) {
	if err := shared.Validate(patch); err != nil {
		return nil, err
	}
	var out trade.PedidoVenta
	if err := s.api.Patch(ctx, resource.Path(pedidosVentasPath, id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes a sales order
func (s *PedidoVentaService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, resource.Path(pedidosVentasPath, id), nil)
}

// CambiarEstado sets the order state. Whether the transition is allowed is decided by the backend.
func (s *PedidoVentaService) CambiarEstado(ctx context.Context, id int, estado trade.EstadoPedidoVenta) (*trade.PedidoVenta, error) {
	return s.Update(ctx, id, trade.PedidoVentaPatch{Estado: &estado})
}

// Cancelar cancels an order, recording the reason
func (s *PedidoVentaService) Cancelar(ctx context.Context, id int, in trade.CancelarPedidoInput) (*resource.Status, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out resource.Status
	if err := s.api.Post(ctx, resource.Path(pedidosVentasPath, id, "cancelar_pedido"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AgregarDetalle adds a line to a pending order
func (s *PedidoVentaService) AgregarDetalle(ctx context.Context, pedidoID int, in trade.DetallePedidoInput) (*trade.DetalleResult[trade.DetallePedidoVenta], error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out trade.DetalleResult[trade.DetallePedidoVenta]
	if err := s.api.Post(ctx, resource.Path(pedidosVentasPath, pedidoID, "detalles"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModificarDetalle changes a line of a pending order
func (s *PedidoVentaService) ModificarDetalle(ctx context.Context, pedidoID, detalleID int, patch trade.DetallePedidoPatch) (*trade.DetalleResult[trade.DetallePedidoVenta], error) {
	if err := shared.Validate(patch); err != nil {
		return nil, err
	}
	var out trade.DetalleResult[trade.DetallePedidoVenta]
	if err := s.api.Patch(ctx, resource.Path(pedidosVentasPath, pedidoID, "detalles", detalleID), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EliminarDetalle removes a line from a pending order
func (s *PedidoVentaService) EliminarDetalle(ctx context.Context, pedidoID, detalleID int) (*trade.DetalleResult[trade.DetallePedidoVenta], error) {
	var out trade.DetalleResult[trade.DetallePedidoVenta]
	if err := s.api.Delete(ctx, resource.Path(pedidosVentasPath, pedidoID, "detalles", detalleID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDetalles returns the lines of an order.
// The detail endpoint may ignore the pedido filter, so lines are also matched here.
func (s *PedidoVentaService) ListDetalles(ctx context.Context, pedidoID int) ([]trade.DetallePedidoVenta, error) {
	var all []trade.DetallePedidoVenta
	q := url.Values{"pedido": {strconv.Itoa(pedidoID)}}
	if err := s.api.Get(ctx, resource.Path(pedidosVentasDetallePath), q, &all); err != nil {
		return nil, err
	}
	out := make([]trade.DetallePedidoVenta, 0, len(all))
	for _, d := range all {
		if d.PedidoVenta == pedidoID {
			out = append(out, d)
		}
	}
	return out, nil
}

// GenerarVenta creates the sale for an accepted order
func (s *PedidoVentaService) GenerarVenta(ctx context.Context, id int, in trade.GenerarVentaInput) (*trade.Venta, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out trade.Venta
	if err := s.api.Post(ctx, resource.Path(pedidosVentasPath, id, "generar_venta"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
