package finance

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/lupon/admin-client/internal/application/resource/resourcetest"
	"github.com/lupon/admin-client/internal/domain/finance"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCobroService(t *testing.T) {
	ctx := context.Background()
	api := new(resourcetest.MockAPI)
	svc := NewCobroService(api)

	in := finance.CobroInput{
		Cliente:   4,
		MedioPago: shared.MedioPagoTransferencia,
		Monto:     decimal.RequireFromString("2000.00"),
		Detalles: []finance.AplicacionCobro{
			{Venta: 9, MontoAplicado: decimal.RequireFromString("1500.00")},
		},
	}
	api.On("Post", ctx, "/cobros/", in).Return(`{"id": 2, "cliente": 4, "monto": "2000.00",
		"saldo_disponible": "500.00", "detalles": [{"venta": 9, "monto_aplicado": "1500.00"}]}`, nil)

	cobro, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("500").Equal(cobro.SaldoDisponible))

	mas := []finance.AplicacionCobro{{Venta: 10, MontoAplicado: decimal.RequireFromString("500.00")}}
	api.On("Patch", ctx, "/cobros/2/", finance.AplicacionesCobroInput{Detalles: mas}).
		Return(`{"id": 2, "saldo_disponible": "0.00"}`, nil)

	cobro, err = svc.AddDetalles(ctx, 2, mas)
	require.NoError(t, err)
	assert.True(t, cobro.SaldoDisponible.IsZero())

	_, err = svc.AddDetalles(ctx, 2, nil)
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Field("detalles"))

	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "Patch", 1)
}

func TestCobroService_RejectsNonPositiveAmounts(t *testing.T) {
	api := new(resourcetest.MockAPI)

	_, err := NewCobroService(api).Create(context.Background(), finance.CobroInput{
		Cliente:   4,
		MedioPago: shared.MedioPagoEfectivo,
		Monto:     decimal.Zero,
	})
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Field("monto"))
	api.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}

func TestPagoService(t *testing.T) {
	ctx := context.Background()
	api := new(resourcetest.MockAPI)
	svc := NewPagoService(api)

	api.On("Get", ctx, "/pagos/", url.Values(nil)).Return(`[
		{"id": 1, "proveedor": 8, "fecha_pago": "2024-05-21", "medio_pago": "efectivo", "monto": "50000.00",
		 "saldo_disponible": "0.00", "detalles": [{"compra": 4, "monto_aplicado": "50000.00"}]}
	]`, nil)

	pagos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, pagos, 1)
	assert.Equal(t, 4, pagos[0].Detalles[0].Compra)

	api.On("Get", ctx, "/pagos/1/", url.Values(nil)).Return(`{"id": 1, "proveedor": 8}`, nil)
	pago, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, pago.Proveedor)

	_, err = svc.Create(ctx, finance.PagoInput{Proveedor: 8, MedioPago: "cheque", Monto: decimal.NewFromInt(10)})
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Field("medio_pago"))

	api.AssertExpectations(t)
}

func TestNotaCreditoService(t *testing.T) {
	ctx := context.Background()
	api := new(resourcetest.MockAPI)
	svc := NewNotaCreditoService(api)

	api.On("Get", ctx, "/notas-credito/", url.Values{"contacto": {"4"}, "tipo": {"venta"}}).Return(`[
		{"id": 1, "contacto": 4, "tipo": "venta", "estado": "emitida", "total": "800.00",
		 "detalles": [{"producto": 2, "cantidad": "1", "precio_unitario": "800.00"}],
		 "aplicaciones": [{"venta": 9, "compra": null, "monto_aplicado": "800.00"}]}
	]`, nil)

	notas, err := svc.List(ctx, finance.NotaCreditoFilter{Contacto: 4, Tipo: finance.NotaVenta})
	require.NoError(t, err)
	require.Len(t, notas, 1)
	require.NotNil(t, notas[0].Aplicaciones[0].Venta)
	assert.Equal(t, 9, *notas[0].Aplicaciones[0].Venta)
	assert.Nil(t, notas[0].Aplicaciones[0].Compra)

	in := finance.NotaCreditoInput{
		Contacto: 4,
		Tipo:     finance.NotaVenta,
		Motivo:   "Mercadería en mal estado",
		Detalles: []finance.DetalleNotaCredito{
			{Producto: 2, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(800)},
		},
		Aplicaciones: []finance.AplicacionNotaCredito{
			{Venta: intPtr(9), MontoAplicado: decimal.NewFromInt(800)},
		},
	}
	api.On("Post", ctx, "/notas-credito/", in).Return(`{"id": 2, "contacto": 4, "tipo": "venta"}`, nil)

	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
	api.AssertExpectations(t)
}

func TestNotaCreditoService_AplicacionTarget(t *testing.T) {
	api := new(resourcetest.MockAPI)
	svc := NewNotaCreditoService(api)
	base := finance.NotaCreditoInput{
		Contacto: 4,
		Tipo:     finance.NotaCompra,
		Detalles: []finance.DetalleNotaCredito{
			{Producto: 2, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(800)},
		},
	}

	tests := []struct {
		name       string
		aplicacion finance.AplicacionNotaCredito
	}{
		{"neither sale nor purchase", finance.AplicacionNotaCredito{MontoAplicado: decimal.NewFromInt(1)}},
		{"both sale and purchase", finance.AplicacionNotaCredito{Venta: intPtr(1), Compra: intPtr(2), MontoAplicado: decimal.NewFromInt(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.Aplicaciones = []finance.AplicacionNotaCredito{tt.aplicacion}
			_, err := svc.Create(context.Background(), in)
			var verr *shared.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
	api.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}
