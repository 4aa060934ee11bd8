package finance

import (
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Pago is money paid to a supplier, applied to one or more purchases
type Pago struct {
	ID              int              `json:"id"`
	Proveedor       int              `json:"proveedor"`
	FechaPago       shared.Date      `json:"fecha_pago"`
	MedioPago       shared.MedioPago `json:"medio_pago"`
	Monto           decimal.Decimal  `json:"monto"`
	Observaciones   string           `json:"observaciones"`
	SaldoDisponible decimal.Decimal  `json:"saldo_disponible"`
	Detalles        []AplicacionPago `json:"detalles"`
}

// AplicacionPago applies part of a payment to a purchase
type AplicacionPago struct {
	Compra        int             `json:"compra" validate:"required,gt=0"`
	MontoAplicado decimal.Decimal `json:"monto_aplicado" validate:"gt=0"`
}

// PagoInput registers a payment
type PagoInput struct {
	Proveedor     int              `json:"proveedor" validate:"required,gt=0"`
	FechaPago     shared.Date      `json:"fecha_pago,omitzero"`
	MedioPago     shared.MedioPago `json:"medio_pago" validate:"required,oneof=efectivo transferencia tarjeta"`
	Monto         decimal.Decimal  `json:"monto" validate:"gt=0"`
	Observaciones string           `json:"observaciones,omitempty"`
	Detalles      []AplicacionPago `json:"detalles" validate:"dive"`
}

// AplicacionesPagoInput adds applications to an existing payment
type AplicacionesPagoInput struct {
	Detalles []AplicacionPago `json:"detalles" validate:"min=1,dive"`
}
