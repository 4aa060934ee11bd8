package trade

import (
	"net/url"

	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EstadoCompra is the reception state of a purchase
type EstadoCompra string

const (
	CompraPendiente EstadoCompra = "pendiente"
	CompraRecibida  EstadoCompra = "recibida"
	CompraCancelada EstadoCompra = "cancelada"
)

// EstadoPago is the payment state of a purchase
type EstadoPago string

const (
	PagoPendiente EstadoPago = "pendiente"
	PagoPagado    EstadoPago = "pagado"
	PagoParcial   EstadoPago = "parcial"
	PagoCancelado EstadoPago = "cancelado"
)

// Compra is a purchase received from a supplier
type Compra struct {
	ID              int              `json:"id"`
	Proveedor       int              `json:"proveedor"`
	PedidoCompra    *int             `json:"pedido_compra"`
	FechaCompra     shared.Date      `json:"fecha_compra"`
	Extra           decimal.Decimal  `json:"extra"`
	EstadoCompra    EstadoCompra     `json:"estado_compra"`
	Descuento       decimal.Decimal  `json:"descuento"`
	Observaciones   string           `json:"observaciones"`
	Detalles        []DetalleCompra  `json:"detalles"`
	NumeroDocumento string           `json:"numero_documento"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	Total           decimal.Decimal  `json:"total"`
	SaldoPendiente  decimal.Decimal  `json:"saldo_pendiente"`
	EstadoPago      EstadoPago       `json:"estado_pago"`
	FormaPago       shared.FormaPago `json:"forma_pago"`
}

// DetalleCompra is one line of a purchase
type DetalleCompra struct {
	ID             int             `json:"id"`
	Producto       int             `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// DetalleCompraInput is a purchase line; quantities may be fractional (kg)
type DetalleCompraInput struct {
	Producto       int             `json:"producto" validate:"required,gt=0"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
}

// CompraInput registers a purchase
type CompraInput struct {
	Proveedor       int                  `json:"proveedor" validate:"required,gt=0"`
	PedidoCompra    *int                 `json:"pedido_compra,omitempty" validate:"omitempty,gt=0"`
	FechaCompra     shared.Date          `json:"fecha_compra,omitzero"`
	Extra           decimal.Decimal      `json:"extra" validate:"gte=0"`
	Descuento       decimal.Decimal      `json:"descuento" validate:"gte=0"`
	Observaciones   string               `json:"observaciones,omitempty"`
	NumeroDocumento string               `json:"numero_documento,omitempty" validate:"max=50"`
	FormaPago       shared.FormaPago     `json:"forma_pago,omitempty" validate:"omitempty,oneof=contado 'cuenta corriente' 'contado pendiente'"`
	Detalles        []DetalleCompraInput `json:"detalles" validate:"min=1,dive"`
}

// CambiarEstadoCompraInput moves a purchase to another reception state
type CambiarEstadoCompraInput struct {
	EstadoCompra      EstadoCompra `json:"estado_compra" validate:"required,oneof=pendiente recibida cancelada"`
	MotivoCancelacion string       `json:"motivo_cancelacion,omitempty" validate:"required_if=EstadoCompra cancelada"`
}

// CompraFilter narrows a purchase listing
type CompraFilter struct {
	Proveedor    string
	EstadoCompra EstadoCompra
	FechaCompra  shared.Date
	EstadoPago   EstadoPago
}

// Query encodes the filter; empty fields are omitted
func (f CompraFilter) Query() url.Values {
	q := url.Values{}
	if f.Proveedor != "" {
		q.Set("proveedor", f.Proveedor)
	}
	if f.EstadoCompra != "" {
		q.Set("estado_compra", string(f.EstadoCompra))
	}
	if !f.FechaCompra.IsNull() {
		q.Set("fecha_compra", f.FechaCompra.String())
	}
	if f.EstadoPago != "" {
		q.Set("estado_pago", string(f.EstadoPago))
	}
	return q
}
