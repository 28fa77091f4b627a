package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

func TestCobrarHabitacionLiquidaElPedido(t *testing.T) {
	recargos := newStubRecargoRepo()
	pedidos := newStubPedidoRepo()
	svc := NewRecepcionService(recargos, pedidos, nil)
	ctx := context.Background()

	metodo := model.MetodoRecargado
	pedido := &model.Pedido{Tipo: model.TipoMesa, Numero: "101", Mesero: "Ana",
		Terminado: true, MetodoPago: &metodo, Total: decimal.NewFromInt(10)}
	require.NoError(t, pedidos.Create(ctx, nil, pedido))

	rec := &model.PedidoRecargado{
		PedidoID: pedido.ID, Habitacion: "101", Mesero: "Ana",
		DetallePedido: model.Detalle{{Nombre: "Sopa", Cantidad: 1, Precio: decimal.NewFromInt(10)}},
		Total:         decimal.NewFromInt(10), Fecha: "2026-03-10",
	}
	require.NoError(t, recargos.CreateHabitacion(ctx, nil, rec))

	require.NoError(t, svc.CobrarHabitacion(ctx, rec.ID, "Luis", dto.CobrarCargoRequest{Metodo: model.MetodoEfectivo}))

	assert.Empty(t, recargos.habitaciones)
	assert.Empty(t, recargos.facturas)

	liquidado, err := pedidos.FindByID(ctx, pedido.ID)
	require.NoError(t, err)
	require.NotNil(t, liquidado.MetodoPago)
	assert.Equal(t, model.MetodoEfectivo, *liquidado.MetodoPago)
	assert.Equal(t, "101", liquidado.Numero)
	assert.Equal(t, "Ana/Luis", liquidado.Mesero)
}

func TestCobrarHabitacionConFactura(t *testing.T) {
	recargos := newStubRecargoRepo()
	svc := NewRecepcionService(recargos, newStubPedidoRepo(), nil)
	ctx := context.Background()

	rec := &model.PedidoRecargado{
		PedidoID: 7, Habitacion: "101", Mesero: "Ana",
		Total: decimal.NewFromInt(55), Fecha: "2026-03-10",
	}
	require.NoError(t, recargos.CreateHabitacion(ctx, nil, rec))

	// Facturar sin NIT se rechaza y el cargo sobrevive.
	err := svc.CobrarHabitacion(ctx, rec.ID, "Luis", dto.CobrarCargoRequest{Metodo: model.MetodoTarjeta, Facturar: true})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
	assert.Len(t, recargos.habitaciones, 1)

	nit := "1234567-8"
	require.NoError(t, svc.CobrarHabitacion(ctx, rec.ID, "Luis", dto.CobrarCargoRequest{
		Metodo: model.MetodoTarjeta, Facturar: true, NIT: &nit,
	}))

	assert.Empty(t, recargos.habitaciones)
	require.Len(t, recargos.facturas, 1)
	for _, f := range recargos.facturas {
		assert.Equal(t, int64(7), f.PedidoID)
		assert.Equal(t, nit, f.NIT)
	}
}

func TestMarcarFacturada(t *testing.T) {
	recargos := newStubRecargoRepo()
	svc := NewRecepcionService(recargos, newStubPedidoRepo(), nil)
	ctx := context.Background()

	f := &model.Factura{PedidoID: 1, NIT: "CF", Total: decimal.NewFromInt(10), Fecha: "2026-03-10"}
	require.NoError(t, recargos.CreateFactura(ctx, nil, f))

	require.NoError(t, svc.MarcarFacturada(ctx, f.ID, true))
	assert.True(t, recargos.facturas[f.ID].Facturado)

	// Las pendientes ya no la incluyen.
	pendientes, err := svc.ListarFacturasPendientes(ctx)
	require.NoError(t, err)
	assert.Empty(t, pendientes)

	assert.ErrorIs(t, svc.MarcarFacturada(ctx, 999, true), apierror.ErrNoEncontrado)
}

func TestCobrarCargoInexistente(t *testing.T) {
	svc := NewRecepcionService(newStubRecargoRepo(), newStubPedidoRepo(), nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.CobrarHabitacion(ctx, 1, "Luis", dto.CobrarCargoRequest{Metodo: model.MetodoEfectivo}), apierror.ErrNoEncontrado)
	assert.ErrorIs(t, svc.CobrarEmpleado(ctx, 1), apierror.ErrNoEncontrado)
	assert.ErrorIs(t, svc.CobrarEvento(ctx, 1), apierror.ErrNoEncontrado)
	assert.ErrorIs(t, svc.EliminarFactura(ctx, 1), apierror.ErrNoEncontrado)
}
