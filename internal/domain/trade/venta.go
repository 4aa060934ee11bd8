package trade

import (
	"net/url"

	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EstadoEntrega is the delivery state of a sale
type EstadoEntrega string

const (
	EntregaPendiente    EstadoEntrega = "pendiente"
	EntregaEntregada    EstadoEntrega = "entregada"
	EntregaCancelada    EstadoEntrega = "cancelada"
	EntregaReprogramada EstadoEntrega = "reprogramada"
)

// EstadoVenta is the overall state of a sale
type EstadoVenta string

const (
	VentaEnProceso  EstadoVenta = "en proceso"
	VentaCompletada EstadoVenta = "completada"
	VentaCancelada  EstadoVenta = "cancelada"
)

// EstadoCobro is the collection state of a sale
type EstadoCobro string

const (
	CobroPendiente EstadoCobro = "pendiente"
	CobroCobrado   EstadoCobro = "cobrado"
	CobroParcial   EstadoCobro = "parcial"
	CobroCancelado EstadoCobro = "cancelado"
)

// Venta is a sale generated from a sales order
type Venta struct {
	ID               int              `json:"id"`
	PedidoVenta      int              `json:"pedido_venta"`
	PedidoCompra     *int             `json:"pedido_compra"`
	FechaVenta       shared.Date      `json:"fecha_venta"`
	Cliente          int              `json:"cliente"`
	DireccionEntrega string           `json:"direccion_entrega"`
	FechaEntrega     shared.Date      `json:"fecha_entrega"`
	FormaPago        shared.FormaPago `json:"forma_pago"`
	Detalles         []DetalleVenta   `json:"detalles"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	CostoEntrega     decimal.Decimal  `json:"costo_entrega"`
	Descuento        decimal.Decimal  `json:"descuento"`
	Total            decimal.Decimal  `json:"total"`
	SaldoPendiente   decimal.Decimal  `json:"saldo_pendiente"`
	EstadoVenta      EstadoVenta      `json:"estado_venta"`
	EstadoCobro      EstadoCobro      `json:"estado_cobro"`
	EstadoEntrega    EstadoEntrega    `json:"estado_entrega"`
	Vencimiento      shared.Date      `json:"vencimiento"`
}

// DetalleVenta is one line of a sale
type DetalleVenta struct {
	ID             int             `json:"id"`
	Venta          int             `json:"venta"`
	Producto       int             `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CambiarEstadoEntregaInput moves a sale to another delivery state.
// The backend requires a reason when cancelling.
type CambiarEstadoEntregaInput struct {
	EstadoEntrega     EstadoEntrega `json:"estado_entrega" validate:"required,oneof=pendiente entregada cancelada reprogramada"`
	MotivoCancelacion string        `json:"motivo_cancelacion,omitempty" validate:"required_if=EstadoEntrega cancelada"`
}

// ReprogramarEntregaInput moves a delivery to a new date
type ReprogramarEntregaInput struct {
	NuevaFecha shared.Date `json:"nueva_fecha" validate:"required"`
}

// VentaFilter narrows a sale listing. Cliente matches part of the customer name.
type VentaFilter struct {
	EstadoEntrega EstadoEntrega
	Cliente       string
}

// Query encodes the filter; empty fields are omitted
func (f VentaFilter) Query() url.Values {
	q := url.Values{}
	if f.EstadoEntrega != "" {
		q.Set("estado_entrega", string(f.EstadoEntrega))
	}
	if f.Cliente != "" {
		q.Set("cliente", f.Cliente)
	}
	return q
}
