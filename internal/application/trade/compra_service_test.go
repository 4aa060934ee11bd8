package trade

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/lupon/admin-client/internal/application/resource/resourcetest"
	"github.com/lupon/admin-client/internal/client"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/lupon/admin-client/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPedidoCompraService(t *testing.T) {
	ctx := context.Background()
	api := new(resourcetest.MockAPI)
	svc := NewPedidoCompraService(api)

	in := trade.PedidoCompraInput{
		Proveedor: 8,
		Detalles: []trade.DetallePedidoInput{
			{Producto: 1, Cantidad: 20, PrecioUnitario: decimal.NewFromInt(3900)},
		},
		VentasIDs: []int{9},
	}
	api.On("Post", ctx, "/pedidos-compras/", in).
		Return(`{"id": 3, "proveedor": 8, "estado": "pendiente", "subtotal": "78000.00", "ventas_ids": [9]}`, nil)

	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, created.VentasIDs)

	estado := trade.PedidoCompraValidado
	api.On("Patch", ctx, "/pedidos-compras/3/", trade.PedidoCompraPatch{Estado: &estado}).
		Return(`{"id": 3, "estado": "validado"}`, nil)
	updated, err := svc.Update(ctx, 3, trade.PedidoCompraPatch{Estado: &estado})
	require.NoError(t, err)
	assert.Equal(t, trade.PedidoCompraValidado, updated.Estado)

	api.On("Delete", ctx, "/pedidos-compras/3/detalles/12/?detalle_id=12").
		Return(`{"status": "Detalle eliminado correctamente.", "nuevo_subtotal": "0", "detalles_restantes": []}`, nil)
	removed, err := svc.EliminarDetalle(ctx, 3, 12)
	require.NoError(t, err)
	assert.Empty(t, removed.DetallesRestantes)

	api.On("Get", ctx, "/pedidos-compras-detalle/", url.Values{"pedido_id": {"3"}}).
		Return(`[{"id": 11, "pedido_compra": 3, "producto": 1, "cantidad": 20, "precio_unitario": "3900.00"}]`, nil)
	detalles, err := svc.ListDetalles(ctx, 3)
	require.NoError(t, err)
	require.Len(t, detalles, 1)
	assert.Equal(t, 20, detalles[0].Cantidad)

	api.On("Get", ctx, "/pedidos-compras/", url.Values{"proveedor": {"granja"}}).Return(`[]`, nil)
	pedidos, err := svc.List(ctx, trade.PedidoCompraFilter{Proveedor: "granja"})
	require.NoError(t, err)
	assert.Empty(t, pedidos)

	api.AssertExpectations(t)
}

func TestCompraService_List(t *testing.T) {
	ctx := context.Background()
	api := new(resourcetest.MockAPI)

	q := url.Values{
		"proveedor":     {"granja"},
		"estado_compra": {"recibida"},
		"fecha_compra":  {"2024-05-20"},
		"estado_pago":   {"parcial"},
	}
	api.On("Get", ctx, "/compras/", q).Return(`[
		{"id": 4, "proveedor": 8, "fecha_compra": "2024-05-20", "estado_compra": "recibida",
		 "estado_pago": "parcial", "total": "78000.00", "saldo_pendiente": "28000.00",
		 "detalles": [{"producto": 1, "cantidad": "19.5", "precio_unitario": "4000.00", "subtotal": "78000.00"}]}
	]`, nil)

	out, err := NewCompraService(api).List(ctx, trade.CompraFilter{
		Proveedor:    "granja",
		EstadoCompra: trade.CompraRecibida,
		FechaCompra:  shared.NewDate(2024, time.May, 20),
		EstadoPago:   trade.PagoParcial,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, trade.PagoParcial, out[0].EstadoPago)
	assert.True(t, decimal.RequireFromString("19.5").Equal(out[0].Detalles[0].Cantidad))
}

func TestCompraService_CambiarEstado(t *testing.T) {
	ctx := context.Background()
	api := new(resourcetest.MockAPI)
	svc := NewCompraService(api)

	_, err := svc.CambiarEstado(ctx, 4, trade.CambiarEstadoCompraInput{EstadoCompra: trade.CompraCancelada})
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Field("motivo_cancelacion"))

	in := trade.CambiarEstadoCompraInput{EstadoCompra: trade.CompraRecibida}
	api.On("Post", ctx, "/compras/4/cambiar_estado_compra/", in).Return("", &client.APIError{
		StatusCode: 400,
		Message:    "La compra ya fue recibida.",
	})

	_, err = svc.CambiarEstado(ctx, 4, in)
	require.Error(t, err)
	assert.True(t, client.IsValidation(err))
	assert.Contains(t, err.Error(), "La compra ya fue recibida.")
	api.AssertNumberOfCalls(t, "Post", 1)
}

func TestCompraService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	api := new(resourcetest.MockAPI)

	_, err := NewCompraService(api).Create(ctx, trade.CompraInput{
		Proveedor: 8,
		Descuento: decimal.NewFromInt(-5),
		Detalles: []trade.DetalleCompraInput{
			{Producto: 1, Cantidad: decimal.Zero, PrecioUnitario: decimal.NewFromInt(4000)},
		},
	})
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Field("descuento"))
	assert.NotEmpty(t, verr.Field("detalles[0].cantidad"))
	api.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}
