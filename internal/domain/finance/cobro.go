// Package finance holds collections from customers, payments to suppliers
// and credit notes.
package finance

import (
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Cobro is money received from a customer, applied to one or more sales.
// SaldoDisponible is the amount not yet applied.
type Cobro struct {
	ID              int               `json:"id"`
	Cliente         int               `json:"cliente"`
	FechaCobro      shared.Date       `json:"fecha_cobro"`
	MedioPago       shared.MedioPago  `json:"medio_pago"`
	Monto           decimal.Decimal   `json:"monto"`
	Observaciones   string            `json:"observaciones"`
	SaldoDisponible decimal.Decimal   `json:"saldo_disponible"`
	Detalles        []AplicacionCobro `json:"detalles"`
}

// AplicacionCobro applies part of a collection to a sale
type AplicacionCobro struct {
	Venta         int             `json:"venta" validate:"required,gt=0"`
	MontoAplicado decimal.Decimal `json:"monto_aplicado" validate:"gt=0"`
}

// CobroInput registers a collection
type CobroInput struct {
	Cliente       int               `json:"cliente" validate:"required,gt=0"`
	FechaCobro    shared.Date       `json:"fecha_cobro,omitzero"`
	MedioPago     shared.MedioPago  `json:"medio_pago" validate:"required,oneof=efectivo transferencia tarjeta"`
	Monto         decimal.Decimal   `json:"monto" validate:"gt=0"`
	Observaciones string            `json:"observaciones,omitempty"`
	Detalles      []AplicacionCobro `json:"detalles" validate:"dive"`
}

// AplicacionesCobroInput adds applications to an existing collection
type AplicacionesCobroInput struct {
	Detalles []AplicacionCobro `json:"detalles" validate:"min=1,dive"`
}
