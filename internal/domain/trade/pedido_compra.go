package trade

import (
	"net/url"

	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EstadoPedidoCompra is the lifecycle state of a purchase order
type EstadoPedidoCompra string

const (
	PedidoCompraPendiente EstadoPedidoCompra = "pendiente"
	PedidoCompraValidado  EstadoPedidoCompra = "validado"
	PedidoCompraCancelado EstadoPedidoCompra = "cancelado"
	PedidoCompraRecibido  EstadoPedidoCompra = "recibido"
)

// PedidoCompra is an order placed with a supplier.
// VentasIDs lists the sales the order was raised for.
type PedidoCompra struct {
	ID            int                   `json:"id"`
	Proveedor     int                   `json:"proveedor"`
	FechaPedido   shared.Date           `json:"fecha_pedido"`
	Estado        EstadoPedidoCompra    `json:"estado"`
	Observaciones string                `json:"observaciones"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Detalles      []DetallePedidoCompra `json:"detalles"`
	VentasIDs     []int                 `json:"ventas_ids"`
}

// DetallePedidoCompra is one line of a purchase order
type DetallePedidoCompra struct {
	ID             int             `json:"id"`
	PedidoCompra   int             `json:"pedido_compra"`
	Producto       int             `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// PedidoCompraInput creates a purchase order
type PedidoCompraInput struct {
	Proveedor     int                  `json:"proveedor" validate:"required,gt=0"`
	FechaPedido   shared.Date          `json:"fecha_pedido,omitzero"`
	Observaciones string               `json:"observaciones,omitempty"`
	Detalles      []DetallePedidoInput `json:"detalles" validate:"min=1,dive"`
	VentasIDs     []int                `json:"ventas_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// PedidoCompraPatch updates a purchase order
type PedidoCompraPatch struct {
	FechaPedido   *shared.Date         `json:"fecha_pedido,omitempty"`
	Estado        *EstadoPedidoCompra  `json:"estado,omitempty" validate:"omitempty,oneof=pendiente validado cancelado recibido"`
	Observaciones *string              `json:"observaciones,omitempty"`
	Detalles      []DetallePedidoInput `json:"detalles,omitempty" validate:"omitempty,dive"`
}

// PedidoCompraFilter narrows a purchase order listing
type PedidoCompraFilter struct {
	Estado    EstadoPedidoCompra
	Proveedor string // part of the supplier name
}

// Query encodes the filter; empty fields are omitted
func (f PedidoCompraFilter) Query() url.Values {
	q := url.Values{}
	if f.Estado != "" {
		q.Set("estado", string(f.Estado))
	}
	if f.Proveedor != "" {
		q.Set("proveedor", f.Proveedor)
	}
	return q
}
