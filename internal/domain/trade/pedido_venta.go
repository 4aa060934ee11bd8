// Package trade holds sales and purchase orders and their resulting documents.
package trade

import (
	"net/url"

	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EstadoPedidoVenta is the lifecycle state of a sales order.
// Transitions are enforced by the backend only.
type EstadoPedidoVenta string

const (
	PedidoVentaPendiente  EstadoPedidoVenta = "pendiente"
	PedidoVentaAceptado   EstadoPedidoVenta = "aceptado"
	PedidoVentaCancelado  EstadoPedidoVenta = "cancelado"
	PedidoVentaCompletado EstadoPedidoVenta = "completado"
)

// PedidoVenta is a customer order
type PedidoVenta struct {
	ID                int                  `json:"id"`
	Cliente           int                  `json:"cliente"`
	FechaPedido       shared.Date          `json:"fecha_pedido"`
	DireccionEntrega  string               `json:"direccion_entrega"`
	Estado            EstadoPedidoVenta    `json:"estado"`
	Subtotal          decimal.Decimal      `json:"subtotal"`
	Aclaraciones      string               `json:"aclaraciones"`
	MotivoCancelacion string               `json:"motivo_cancelacion"`
	FechaCancelacion  shared.Date          `json:"fecha_cancelacion"`
	Detalles          []DetallePedidoVenta `json:"detalles"`
}

// DetallePedidoVenta is one line of a sales order
type DetallePedidoVenta struct {
	ID             int             `json:"id"`
	PedidoVenta    int             `json:"pedido_venta"`
	Producto       int             `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// DetallePedidoInput is a sales or purchase order line to create
type DetallePedidoInput struct {
	Producto       int             `json:"producto" validate:"required,gt=0"`
	Cantidad       int             `json:"cantidad" validate:"gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
}

// DetallePedidoPatch modifies an order line
type DetallePedidoPatch struct {
	Producto       *int             `json:"producto,omitempty" validate:"omitempty,gt=0"`
	Cantidad       *int             `json:"cantidad,omitempty" validate:"omitempty,gt=0"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty" validate:"omitempty,gte=0"`
}

// PedidoVentaInput creates a sales order with its lines
type PedidoVentaInput struct {
	Cliente          int                  `json:"cliente" validate:"required,gt=0"`
	FechaPedido      shared.Date          `json:"fecha_pedido,omitzero"`
	DireccionEntrega string               `json:"direccion_entrega,omitempty" validate:"max=200"`
	Aclaraciones     string               `json:"aclaraciones,omitempty"`
	Detalles         []DetallePedidoInput `json:"detalles" validate:"min=1,dive"`
}

// PedidoVentaPatch updates a sales order. Detalles, when set, replaces all lines.
type PedidoVentaPatch struct {
	FechaPedido      *shared.Date         `json:"fecha_pedido,omitempty"`
	DireccionEntrega *string              `json:"direccion_entrega,omitempty" validate:"omitempty,max=200"`
	Estado           *EstadoPedidoVenta   `json:"estado,omitempty" validate:"omitempty,oneof=pendiente aceptado cancelado completado"`
	Aclaraciones     *string              `json:"aclaraciones,omitempty"`
	Detalles         []DetallePedidoInput `json:"detalles,omitempty" validate:"omitempty,dive"`
}

// CancelarPedidoInput cancels a sales order
type CancelarPedidoInput struct {
	MotivoCancelacion string      `json:"motivo_cancelacion" validate:"required"`
	FechaCancelacion  shared.Date `json:"fecha_cancelacion,omitzero"`
}

// GenerarVentaInput turns an accepted order into a sale
type GenerarVentaInput struct {
	FormaPago shared.FormaPago `json:"forma_pago" validate:"required,oneof=contado 'cuenta corriente' 'contado pendiente'"`
	MedioPago shared.MedioPago `json:"medio_pago,omitempty" validate:"omitempty,oneof=efectivo transferencia"`
}

// PedidoVentaFilter narrows a sales order listing.
// Cliente matches part of the customer name.
type PedidoVentaFilter struct {
	Estado  EstadoPedidoVenta
	Cliente string
}

// Query encodes the filter; empty fields are omitted
func (f PedidoVentaFilter) Query() url.Values {
	q := url.Values{}
	if f.Estado != "" {
		q.Set("estado", string(f.Estado))
	}
	if f.Cliente != "" {
		q.Set("cliente", f.Cliente)
	}
	return q
}

// DetalleResult is the backend answer to adding, changing or removing an order line.
// Detalle is set for additions and changes, DetallesRestantes for removals.
type DetalleResult[D any] struct {
	Status            string          `json:"status"`
	NuevoSubtotal     decimal.Decimal `json:"nuevo_subtotal"`
	Detalle           *D              `json:"detalle,omitempty"`
	DetallesRestantes []D             `json:"detalles_restantes,omitempty"`
}
