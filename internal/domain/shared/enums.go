// Package shared holds types used across the lupon domain packages.
package shared

// FormaPago is how a contact settles its operations
type FormaPago string

const (
	FormaPagoContado          FormaPago = "contado"
	FormaPagoCuentaCorriente  FormaPago = "cuenta corriente"
	FormaPagoContadoPendiente FormaPago = "contado pendiente"
)

// MedioPago is the instrument a payment is made with
type MedioPago string

const (
	MedioPagoEfectivo      MedioPago = "efectivo"
	MedioPagoTransferencia MedioPago = "transferencia"
	MedioPagoTarjeta       MedioPago = "tarjeta"
)
