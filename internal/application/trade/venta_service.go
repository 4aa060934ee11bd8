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
	ventasPath        = "ventas"
	ventasDetallePath = "ventas-detalle"
	documentosPath    = "documentos"
)

// VentaService handles sales. Sales are created from orders, see PedidoVentaService.GenerarVenta.
type VentaService struct {
	api resource.API
}

// NewVentaService creates a new VentaService
func NewVentaService(api resource.API) *VentaService {
	return &VentaService{api: api}
}

// List returns sales matching filter
func (s *VentaService) List(ctx context.Context, filter trade.VentaFilter) ([]trade.Venta, error) {
	var out []trade.Venta
	if err := s.api.Get(ctx, resource.Path(ventasPath), filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a sale by ID
func (s *VentaService) Get(ctx context.Context, id int) (*trade.Venta, error) {
	var out trade.Venta
	if err := s.api.Get(ctx, resource.Path(ventasPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes a sale
func (s *VentaService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, resource.Path(ventasPath, id), nil)
}

// CambiarEstadoEntrega moves the sale to another delivery state.
// Cancelling requires MotivoCancelacion.
func (s *VentaService) CambiarEstadoEntrega(ctx context.Context, id int, in trade.CambiarEstadoEntregaInput) (*resource.Status, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out resource.Status
	if err := s.api.Post(ctx, resource.Path(ventasPath, id, "cambiar_estado_entrega"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReprogramarEntrega moves the delivery to a new date
func (s *VentaService) ReprogramarEntrega(ctx context.Context, id int, nuevaFecha shared.Date) (*resource.Status, error) {
	in := trade.ReprogramarEntregaInput{NuevaFecha: nuevaFecha}
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out resource.Status
	if err := s.api.Post(ctx, resource.Path(ventasPath, id, "reprogramar_entrega"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDetalles returns the lines of a sale
func (s *VentaService) ListDetalles(ctx context.Context, ventaID int) ([]trade.DetalleVenta, error) {
	var out []trade.DetalleVenta
	q := url.Values{"venta_id": {strconv.Itoa(ventaID)}}
	if err := s.api.Get(ctx, resource.Path(ventasDetallePath), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Factura returns the rendered invoice of a sale, as HTML or, with pdf, as a PDF file
func (s *VentaService) Factura(ctx context.Context, id int, pdf bool) ([]byte, error) {
	segments := []any{documentosPath, ventasPath, id}
	if pdf {
		segments = append(segments, "pdf")
	}
	return s.api.Document(ctx, resource.Path(segments...))
}
