// Package report holds the read-only aggregates served by /dashboard/.
package report

import (
	"net/url"
	"strconv"

	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/lupon/admin-client/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Dashboard is the summary of sales, purchases, debts and cash flow for a period
type Dashboard struct {
	Cards               Cards               `json:"cards"`
	ClientesConDeuda    []ClienteConDeuda   `json:"clientes_con_deuda"`
	ComprasPendientes   []CompraPendiente   `json:"compras_pendientes"`
	DocumentosPorVencer DocumentosPorVencer `json:"documentos_por_vencer"`
	DocumentosVencidos  ResumenDocumentos   `json:"documentos_vencidos"`
}

// Cards are the headline figures
type Cards struct {
	VentasTotales    TotalesVentas   `json:"ventas_totales"`
	ComprasTotales   TotalesCompras  `json:"compras_totales"`
	DeudaClientes    decimal.Decimal `json:"deuda_clientes"`
	DeudaProveedores decimal.Decimal `json:"deuda_proveedores"`
	IngresosCaja     MovimientoCaja  `json:"ingresos_caja"`
	EgresosCaja      MovimientoCaja  `json:"egresos_caja"`
	FlujoNeto        decimal.Decimal `json:"flujo_neto"`
	GananciaBruta    decimal.Decimal `json:"ganancia_bruta"`
	MargenBruto      decimal.Decimal `json:"margen_bruto"`
}

// TotalesVentas splits the sales total by collection state
type TotalesVentas struct {
	Total      decimal.Decimal `json:"total"`
	Cobradas   decimal.Decimal `json:"cobradas"`
	Parciales  decimal.Decimal `json:"parciales"`
	Pendientes decimal.Decimal `json:"pendientes"`
}

// TotalesCompras splits the purchases total by payment state
type TotalesCompras struct {
	Total      decimal.Decimal `json:"total"`
	Pagadas    decimal.Decimal `json:"pagadas"`
	Parciales  decimal.Decimal `json:"parciales"`
	Pendientes decimal.Decimal `json:"pendientes"`
}

// MovimientoCaja is cash in or out, keyed by medio_pago
type MovimientoCaja struct {
	Total        decimal.Decimal                      `json:"total"`
	PorMedioPago map[shared.MedioPago]decimal.Decimal `json:"por_medio_pago"`
}

// ClienteConDeuda is a customer with outstanding sales
type ClienteConDeuda struct {
	ID               int             `json:"id"`
	Nombre           string          `json:"nombre"`
	Deuda            decimal.Decimal `json:"deuda"`
	VentasPendientes int             `json:"ventas_pendientes"`
	UltimoCobro      shared.Date     `json:"ultimo_cobro"`
}

// CompraPendiente is an unpaid purchase
type CompraPendiente struct {
	ID              int              `json:"id"`
	Proveedor       string           `json:"proveedor"`
	FechaCompra     shared.Date      `json:"fecha_compra"`
	NumeroDocumento string           `json:"numero_documento"`
	EstadoPago      trade.EstadoPago `json:"estado_pago"`
	SaldoPendiente  decimal.Decimal  `json:"saldo_pendiente"`
}

// ResumenDocumentos counts documents and their outstanding balance
type ResumenDocumentos struct {
	Cantidad int             `json:"cantidad"`
	Saldo    decimal.Decimal `json:"saldo"`
}

// DocumentosPorVencer groups documents by how soon they fall due
type DocumentosPorVencer struct {
	Hoy            ResumenDocumentos `json:"hoy"`
	Proximos7Dias  ResumenDocumentos `json:"proximos_7_dias"`
	Proximos30Dias ResumenDocumentos `json:"proximos_30_dias"`
}

// DashboardFilter narrows the dashboard period and population
type DashboardFilter struct {
	FechaDesde  shared.Date
	FechaHasta  shared.Date
	Cliente     int
	Proveedor   int
	FormaPago   shared.FormaPago
	EstadoCobro trade.EstadoCobro
	EstadoPago  trade.EstadoPago
	MedioPago   shared.MedioPago
}

// Query encodes the filter; empty fields are omitted
func (f DashboardFilter) Query() url.Values {
	q := url.Values{}
	if !f.FechaDesde.IsNull() {
		q.Set("fecha_desde", f.FechaDesde.String())
	}
	if !f.FechaHasta.IsNull() {
		q.Set("fecha_hasta", f.FechaHasta.String())
	}
	if f.Cliente > 0 {
		q.Set("cliente", strconv.Itoa(f.Cliente))
	}
	if f.Proveedor > 0 {
		q.Set("proveedor", strconv.Itoa(f.Proveedor))
	}
	setString(q, "forma_pago", string(f.FormaPago))
	setString(q, "estado_cobro", string(f.EstadoCobro))
	setString(q, "estado_pago", string(f.EstadoPago))
	setString(q, "medio_pago", string(f.MedioPago))
	return q
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
