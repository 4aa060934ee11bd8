package finance

import (
	"net/url"
	"strconv"

	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TipoNota tells whether a credit note reduces a sale or a purchase
type TipoNota string

const (
	NotaVenta  TipoNota = "venta"
	NotaCompra TipoNota = "compra"
)

// NotaCredito is a credit note. Subtotal, Total and Estado are computed server-side.
type NotaCredito struct {
	ID              int                     `json:"id"`
	Contacto        int                     `json:"contacto"`
	Tipo            TipoNota                `json:"tipo"`
	FechaNota       shared.Date             `json:"fecha_nota"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	NumeroDocumento string                  `json:"numero_documento"`
	Estado          string                  `json:"estado"`
	Motivo          string                  `json:"motivo"`
	Total           decimal.Decimal         `json:"total"`
	Detalles        []DetalleNotaCredito    `json:"detalles"`
	Aplicaciones    []AplicacionNotaCredito `json:"aplicaciones"`
}

// DetalleNotaCredito is a returned or credited product line
type DetalleNotaCredito struct {
	Producto       int             `json:"producto" validate:"required,gt=0"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
}

// AplicacionNotaCredito applies a note to a sale or to a purchase, never both
type AplicacionNotaCredito struct {
	Venta         *int            `json:"venta,omitempty" validate:"required_without=Compra,excluded_with=Compra"`
	Compra        *int            `json:"compra,omitempty" validate:"required_without=Venta"`
	MontoAplicado decimal.Decimal `json:"monto_aplicado" validate:"gt=0"`
}

// NotaCreditoInput creates a credit note
type NotaCreditoInput struct {
	Contacto        int                     `json:"contacto" validate:"required,gt=0"`
	Tipo            TipoNota                `json:"tipo" validate:"required,oneof=venta compra"`
	FechaNota       shared.Date             `json:"fecha_nota,omitzero"`
	NumeroDocumento string                  `json:"numero_documento,omitempty" validate:"max=50"`
	Motivo          string                  `json:"motivo,omitempty"`
	Detalles        []DetalleNotaCredito    `json:"detalles" validate:"min=1,dive"`
	Aplicaciones    []AplicacionNotaCredito `json:"aplicaciones,omitempty" validate:"omitempty,dive"`
}

// NotaCreditoFilter narrows a credit note listing
type NotaCreditoFilter struct {
	Contacto int
	Tipo     TipoNota
}

// Query encodes the filter; empty fields are omitted
func (f NotaCreditoFilter) Query() url.Values {
	q := url.Values{}
	if f.Contacto > 0 {
		q.Set("contacto", strconv.Itoa(f.Contacto))
	}
	if f.Tipo != "" {
		q.Set("tipo", string(f.Tipo))
	}
	return q
}
