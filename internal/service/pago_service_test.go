package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

func sembrarPedidoActivo(t *testing.T, pedidos *stubPedidoRepo, mesas *stubMesaRepo, numero int) *model.Pedido {
	t.Helper()
	ctx := context.Background()
	p := &model.Pedido{
		Mesero:  "Ana",
		Destino: model.Destino(model.TipoMesa, numero),
		Tipo:    model.TipoMesa,
		Numero:  "5",
		Items: model.Items{
			{PlatilloID: 1, Nombre: "Hamburguesa", Precio: decimal.NewFromInt(35), Cantidad: 2},
		},
		Total: decimal.NewFromInt(70),
	}
	require.NoError(t, pedidos.Create(ctx, nil, p))
	require.NoError(t, mesas.Create(ctx, nil, &model.MesaOcupada{
		Numero: numero, Tipo: model.TipoMesa, PedidoID: p.ID, Total: p.Total, Items: p.Items,
	}))
	return p
}

func nuevoPago(pedidos *stubPedidoRepo, mesas *stubMesaRepo, recargos *stubRecargoRepo) *pagoService {
	svc := NewPagoService(pedidos, mesas, recargos, nil).(*pagoService)
	svc.ahora = func() (string, string) { return "2026-03-10", "18:30:00" }
	return svc
}

func TestCobrarEfectivoCierraYLiberaMesa(t *testing.T) {
	pedidos := newStubPedidoRepo()
	mesas := newStubMesaRepo()
	recargos := newStubRecargoRepo()
	svc := nuevoPago(pedidos, mesas, recargos)
	ctx := context.Background()

	p := sembrarPedidoActivo(t, pedidos, mesas, 5)

	resp, err := svc.Cobrar(ctx, "Ana", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoEfectivo})
	require.NoError(t, err)

	assert.Equal(t, p.ID, resp.PedidoID)
	assert.Equal(t, "2026-03-10", resp.Fecha)
	assert.Equal(t, "18:30:00", resp.Hora)
	assert.False(t, resp.Diferido)
	assert.Nil(t, resp.FacturaID)

	cerrado, err := pedidos.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, cerrado.MetodoPago)
	assert.Equal(t, model.MetodoEfectivo, *cerrado.MetodoPago)
	assert.True(t, cerrado.Terminado)

	_, err = mesas.FindByDestino(ctx, model.TipoMesa, 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCobrarDestinoLiberadoFalla(t *testing.T) {
	pedidos := newStubPedidoRepo()
	mesas := newStubMesaRepo()
	svc := nuevoPago(pedidos, mesas, newStubRecargoRepo())
	ctx := context.Background()

	sembrarPedidoActivo(t, pedidos, mesas, 5)

	_, err := svc.Cobrar(ctx, "Ana", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoEfectivo})
	require.NoError(t, err)

	// El primer cobro libero el destino; el segundo ya no encuentra nada.
	_, err = svc.Cobrar(ctx, "Ana", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoTarjeta})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestCobrarPedidoYaCobradoFalla(t *testing.T) {
	pedidos := newStubPedidoRepo()
	mesas := newStubMesaRepo()
	svc := nuevoPago(pedidos, mesas, newStubRecargoRepo())
	ctx := context.Background()

	// Fila de ocupacion rezagada que apunta a un pedido ya liquidado.
	metodo := model.MetodoEfectivo
	p := &model.Pedido{Mesero: "Ana", Tipo: model.TipoMesa, Numero: "5",
		Terminado: true, MetodoPago: &metodo, Total: decimal.NewFromInt(70)}
	require.NoError(t, pedidos.Create(ctx, nil, p))
	require.NoError(t, mesas.Create(ctx, nil, &model.MesaOcupada{
		Numero: 5, Tipo: model.TipoMesa, PedidoID: p.ID, Total: p.Total,
	}))

	_, err := svc.Cobrar(ctx, "Ana", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoTarjeta})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCobrarRecargadoExigeHabitacionYReapunta(t *testing.T) {
	pedidos := newStubPedidoRepo()
	mesas := newStubMesaRepo()
	recargos := newStubRecargoRepo()
	svc := nuevoPago(pedidos, mesas, recargos)
	ctx := context.Background()

	p := sembrarPedidoActivo(t, pedidos, mesas, 5)

	// Sin habitacion: rechazado antes de tocar nada.
	_, err := svc.Cobrar(ctx, "Ana", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoRecargado})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	hab := 101
	resp, err := svc.Cobrar(ctx, "Ana", dto.CobrarRequest{
		Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoRecargado, Habitacion: &hab,
	})
	require.NoError(t, err)
	assert.True(t, resp.Diferido)

	require.Len(t, recargos.habitaciones, 1)
	for _, rec := range recargos.habitaciones {
		assert.Equal(t, "101", rec.Habitacion)
		assert.True(t, rec.Total.Equal(decimal.NewFromInt(70)))
		// El detalle va simplificado: nombre, cantidad y precio unitario.
		require.Len(t, rec.DetallePedido, 1)
		assert.Equal(t, "Hamburguesa", rec.DetallePedido[0].Nombre)
		assert.Equal(t, 2, rec.DetallePedido[0].Cantidad)
	}

	// El pedido queda apuntando a la habitacion que absorbio el cargo.
	cerrado, err := pedidos.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "101", cerrado.Numero)
}

func TestCobrarAtribuyeAlQueCobra(t *testing.T) {
	pedidos := newStubPedidoRepo()
	mesas := newStubMesaRepo()
	recargos := newStubRecargoRepo()
	svc := nuevoPago(pedidos, mesas, recargos)
	ctx := context.Background()

	// Ana abrio el pedido; Luis lo cobra.
	p := sembrarPedidoActivo(t, pedidos, mesas, 5)

	hab := 101
	_, err := svc.Cobrar(ctx, "Luis", dto.CobrarRequest{
		Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoRecargado, Habitacion: &hab,
	})
	require.NoError(t, err)

	// El cargo diferido registra a quien cobro, no a quien sirvio.
	require.Len(t, recargos.habitaciones, 1)
	for _, rec := range recargos.habitaciones {
		assert.Equal(t, "Luis", rec.Mesero)
	}

	// El pedido conserva a su mesero original.
	cerrado, err := pedidos.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", cerrado.Mesero)
}

func TestCobrarEmpleadosYEventos(t *testing.T) {
	pedidos := newStubPedidoRepo()
	mesas := newStubMesaRepo()
	recargos := newStubRecargoRepo()
	svc := nuevoPago(pedidos, mesas, recargos)
	ctx := context.Background()

	sembrarPedidoActivo(t, pedidos, mesas, 1)
	sembrarPedidoActivo(t, pedidos, mesas, 2)

	emp := "Carlos"
	_, err := svc.Cobrar(ctx, "Luis", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 1, Metodo: model.MetodoEmpleados, Empleado: &emp})
	require.NoError(t, err)
	require.Len(t, recargos.empleados, 1)
	for _, rec := range recargos.empleados {
		assert.Equal(t, "Luis", rec.Mesero)
	}

	ev := "Boda García"
	_, err = svc.Cobrar(ctx, "Luis", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 2, Metodo: model.MetodoEventos, Evento: &ev})
	require.NoError(t, err)
	assert.Len(t, recargos.eventos, 1)
}

func TestCobrarConFactura(t *testing.T) {
	pedidos := newStubPedidoRepo()
	mesas := newStubMesaRepo()
	recargos := newStubRecargoRepo()
	svc := nuevoPago(pedidos, mesas, recargos)
	ctx := context.Background()

	sembrarPedidoActivo(t, pedidos, mesas, 5)

	// Facturar sin NIT: rechazado.
	_, err := svc.Cobrar(ctx, "Ana", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoTarjeta, Facturar: true})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	nit := "1234567-8"
	resp, err := svc.Cobrar(ctx, "Ana", dto.CobrarRequest{
		Tipo: model.TipoMesa, Numero: 5, Metodo: model.MetodoTarjeta, Facturar: true, NIT: &nit,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FacturaID)

	f := recargos.facturas[*resp.FacturaID]
	require.NotNil(t, f)
	assert.Equal(t, nit, f.NIT)
	assert.Equal(t, "consumo", f.Descripcion)
	assert.False(t, f.Facturado)
}

func TestCobrarDestinoLibre(t *testing.T) {
	svc := nuevoPago(newStubPedidoRepo(), newStubMesaRepo(), newStubRecargoRepo())

	_, err := svc.Cobrar(context.Background(), "Ana", dto.CobrarRequest{Tipo: model.TipoMesa, Numero: 99, Metodo: model.MetodoEfectivo})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}
