package venta_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicoil/backoffice/internal/application/capital"
	"github.com/sicoil/backoffice/internal/application/cartera"
	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/application/inventario"
	"github.com/sicoil/backoffice/internal/application/venta"
	"github.com/sicoil/backoffice/internal/apptest"
	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testClienteID = "00000000-0000-0000-0000-000000000002"
)

// reciboFake captura los datos que llegan al renderer.
type reciboFake struct {
	ultimo *venta.ReciboData
}

func (r *reciboFake) RenderComprobante(data venta.ReciboData) ([]byte, error) {
	r.ultimo = &data
	return []byte("%PDF-fake"), nil
}

func newUseCase(t *testing.T) (*venta.UseCase, *apptest.Repos, *reciboFake) {
	t.Helper()
	repos := apptest.NewRepos()
	tx := &apptest.TxRunner{R: repos}
	log := logger.Nop()

	capitalUC := capital.NewUseCase(tx, repos.Capital, repos.Carteras, repos.CarteraMovs, &apptest.ReporteRepo{}, log)
	inventarioUC := inventario.NewUseCase(tx, repos.Lotes, capitalUC, log)
	carteraUC := cartera.NewUseCase(tx, repos.Carteras, repos.CarteraMovs, repos.Clientes, capitalUC, log)
	recibo := &reciboFake{}

	uc := venta.NewUseCase(tx, repos.Ventas, repos.Lotes, repos.Clientes, repos.Usuarios,
		inventarioUC, capitalUC, carteraUC, recibo, log)

	repos.Clientes.Items = append(repos.Clientes.Items, &entity.Cliente{ID: testClienteID, Nombre: "Taller El Motor"})
	repos.Usuarios.Items = append(repos.Usuarios.Items, &entity.Usuario{ID: testUserID, Usuario: "maria", Rol: entity.RolVendedor})
	return uc, repos, recibo
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// sembrarLote crea un lote con la antigüedad dada en horas.
func sembrarLote(repos *apptest.Repos, id, nombre, precio string, stock int, horasAtras int) {
	registro := time.Now().Add(-time.Duration(horasAtras) * time.Hour)
	repos.Lotes.Items = append(repos.Lotes.Items, &entity.Lote{
		ID:            id,
		Nombre:        nombre,
		PrecioCompra:  dec(precio),
		Stock:         stock,
		FechaRegistro: registro,
		ActualizadoEn: registro,
	})
}

func ventaDeUnaLinea(tipo string, cantidad int, subtotal string) dto.CrearVentaRequest {
	return dto.CrearVentaRequest{
		ClienteID: testClienteID,
		TipoVenta: tipo,
		Detalles: []dto.DetalleVentaRequest{
			{NombreProducto: "Aceite 20W50", Cantidad: cantidad, Subtotal: dec(subtotal)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CrearVenta
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearVenta_ContadoCruzaLotesFIFO(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-viejo", "Aceite 20W50", "15000", 3, 48)
	sembrarLote(repos, "lote-nuevo", "Aceite 20W50", "17500", 5, 1)

	resp, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 6, "120000"), testUserID)
	require.NoError(t, err)

	// FIFO: 3 del lote viejo, 3 del nuevo
	require.Len(t, resp.Detalles, 2)
	assert.Equal(t, "lote-viejo", resp.Detalles[0].LoteID)
	assert.Equal(t, 3, resp.Detalles[0].Cantidad)
	assert.Equal(t, "lote-nuevo", resp.Detalles[1].LoteID)
	assert.Equal(t, 3, resp.Detalles[1].Cantidad)

	assert.Equal(t, 0, repos.Lotes.StockDe("lote-viejo"))
	assert.Equal(t, 2, repos.Lotes.StockDe("lote-nuevo"))

	ventasKardex := repos.Kardex.PorTipo(entity.MovimientoVenta)
	assert.Len(t, ventasKardex, 2, "una fila de kardex por lote consumido")

	movs := repos.Capital.PorOrigen(entity.CapitalOrigenVenta)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Monto.Equal(dec("120000")))
	assert.False(t, movs[0].EsCredito)

	assert.Empty(t, repos.Carteras.Items, "una venta de contado no abre cartera")
}

func TestCrearVenta_SubtotalProrrateadoCierraExacto(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-viejo", "Aceite 20W50", "15000", 1, 48)
	sembrarLote(repos, "lote-nuevo", "Aceite 20W50", "17500", 5, 1)

	// 3 unidades a 100000: 1 del lote viejo (33333.33) y 2 del nuevo (el resto)
	resp, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 3, "100000"), testUserID)
	require.NoError(t, err)

	require.Len(t, resp.Detalles, 2)
	suma := decimal.Zero
	for _, d := range resp.Detalles {
		suma = suma.Add(d.Subtotal)
	}
	assert.True(t, suma.Equal(dec("100000")), "los subtotales desdoblados deben sumar el original, fue %s", suma)
	assert.True(t, resp.Detalles[0].Subtotal.Equal(dec("33333.33")))
	assert.True(t, resp.Detalles[1].Subtotal.Equal(dec("66666.67")))
}

func TestCrearVenta_CreditoAbreCartera(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 10, 1)

	resp, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaCredito, 2, "50000"), testUserID)
	require.NoError(t, err)

	movs := repos.Capital.PorOrigen(entity.CapitalOrigenVenta)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].EsCredito, "venta a crédito entra como ingreso diferido")

	require.Len(t, repos.Carteras.Items, 1)
	assert.Equal(t, resp.ID, repos.Carteras.Items[0].VentaID)
	assert.True(t, repos.Carteras.Items[0].Saldo.Equal(dec("50000")))
	assert.Len(t, repos.CarteraMovs.PorTipo(entity.CarteraMovCredito), 1)
}

func TestCrearVenta_StockInsuficienteAborta(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 3, 1)

	_, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 5, "100000"), testUserID)
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Contains(t, err.Error(), "(3)")
	assert.Contains(t, err.Error(), "(5)")

	assert.Empty(t, repos.Capital.Items, "la venta abortada no registra capital")
}

func TestCrearVenta_ProductoSinLotes(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 1, "10000"), testUserID)
	require.ErrorIs(t, err, domain.ErrSinLoteParaVenta)
	assert.Contains(t, err.Error(), "Aceite 20W50")
}

func TestCrearVenta_ProductoAgotadoReportaFaltante(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 0, 48)
	sembrarLote(repos, "lote-2", "Aceite 20W50", "15000", 0, 1)

	_, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 2, "30000"), testUserID)
	require.ErrorIs(t, err, domain.ErrStockInsuficiente, "producto conocido sin stock no es producto inexistente")
	assert.Contains(t, err.Error(), "(0)")
	assert.Contains(t, err.Error(), "(2)")
}

func TestCrearVenta_ClienteInexistente(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 10, 1)

	in := ventaDeUnaLinea(entity.VentaContado, 1, "10000")
	in.ClienteID = "99999999-9999-9999-9999-999999999999"
	_, err := uc.CrearVenta(context.Background(), in, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearVenta_SinDetalles(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.CrearVenta(context.Background(), dto.CrearVentaRequest{
		ClienteID: testClienteID,
		TipoVenta: entity.VentaContado,
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearVenta_RequiereUsuario(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 1, "10000"), "")
	assert.ErrorIs(t, err, domain.ErrUsuarioRequerido)
}

// ──────────────────────────────────────────────────────────────────────────────
// AnularVenta
// ──────────────────────────────────────────────────────────────────────────────

func TestAnularVenta_DevuelveStockYRevierteCapital(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 10, 1)

	resp, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 4, "90000"), testUserID)
	require.NoError(t, err)
	require.Equal(t, 6, repos.Lotes.StockDe("lote-1"))

	err = uc.AnularVenta(context.Background(), resp.ID, "cliente devolvió el producto", testUserID)
	require.NoError(t, err)

	assert.Equal(t, 10, repos.Lotes.StockDe("lote-1"), "el stock vuelve al lote de origen")

	devoluciones := repos.Kardex.PorTipo(entity.MovimientoDevolucion)
	require.Len(t, devoluciones, 1)
	assert.Equal(t, 4, devoluciones[0].Cantidad)

	saldo, _ := repos.Capital.SumSaldoReal(nil, nil)
	assert.True(t, saldo.IsZero(), "el reverso neutraliza el ingreso")

	anulada, err := repos.Ventas.GetByID(resp.ID)
	require.NoError(t, err)
	assert.False(t, anulada.Activa)
	require.NotNil(t, anulada.MotivoAnulacion)
	assert.Contains(t, *anulada.MotivoAnulacion, "La venta fue anulada el ")
	assert.Contains(t, *anulada.MotivoAnulacion, "por el usuario maria")
	assert.Contains(t, *anulada.MotivoAnulacion, "cliente devolvió el producto")
}

func TestAnularVenta_CreditoAjustaCartera(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 10, 1)

	resp, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaCredito, 2, "50000"), testUserID)
	require.NoError(t, err)

	err = uc.AnularVenta(context.Background(), resp.ID, "error de digitación", testUserID)
	require.NoError(t, err)

	pendiente, _ := repos.Carteras.SumSaldosPendientes()
	assert.True(t, pendiente.IsZero(), "la cartera queda en cero")
	assert.Len(t, repos.CarteraMovs.PorTipo(entity.CarteraMovAjuste), 1)

	movs := repos.Capital.PorOrigen(entity.CapitalOrigenVenta)
	require.Len(t, movs, 2)
	assert.True(t, movs[1].Monto.Equal(dec("-50000")))
	assert.True(t, movs[1].EsCredito, "el reverso conserva la marca de crédito")
}

func TestAnularVenta_YaAnulada(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 10, 1)

	resp, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 1, "20000"), testUserID)
	require.NoError(t, err)
	require.NoError(t, uc.AnularVenta(context.Background(), resp.ID, "primera anulación", testUserID))

	err = uc.AnularVenta(context.Background(), resp.ID, "segunda anulación", testUserID)
	assert.ErrorIs(t, err, domain.ErrVentaAnulada)
}

func TestAnularVenta_RazonVacia(t *testing.T) {
	uc, _, _ := newUseCase(t)

	err := uc.AnularVenta(context.Background(), "venta-1", "   ", testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestListarVentas_ExcluyeAnuladasPorDefecto(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 10, 1)

	activa, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 1, "20000"), testUserID)
	require.NoError(t, err)
	anulada, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 1, "20000"), testUserID)
	require.NoError(t, err)
	require.NoError(t, uc.AnularVenta(context.Background(), anulada.ID, "prueba", testUserID))

	ventas, total, err := uc.ListarVentas(context.Background(), dto.ListarVentasRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, ventas, 1)
	assert.Equal(t, activa.ID, ventas[0].ID)

	todas, total, err := uc.ListarVentas(context.Background(), dto.ListarVentasRequest{IncluirAnuladas: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, todas, 2)
}

func TestGenerarComprobante_IncluyeLineasYVendedor(t *testing.T) {
	uc, repos, recibo := newUseCase(t)
	sembrarLote(repos, "lote-1", "Aceite 20W50", "15000", 10, 1)

	resp, err := uc.CrearVenta(context.Background(), ventaDeUnaLinea(entity.VentaContado, 2, "40000"), testUserID)
	require.NoError(t, err)

	pdf, err := uc.GenerarComprobante(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.NotNil(t, recibo.ultimo)
	assert.Equal(t, resp.ID, recibo.ultimo.VentaID)
	assert.Equal(t, "Taller El Motor", recibo.ultimo.Cliente)
	assert.Equal(t, "maria", recibo.ultimo.Vendedor)
	require.Len(t, recibo.ultimo.Lineas, 1)
	assert.Equal(t, "Aceite 20W50", recibo.ultimo.Lineas[0].Producto)
	assert.Equal(t, "40000.00", recibo.ultimo.Total)
}
