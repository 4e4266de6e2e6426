package capital_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicoil/backoffice/internal/application/capital"
	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/apptest"
	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
	"github.com/sicoil/backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

func newUseCase(t *testing.T) (*capital.UseCase, *apptest.Repos, *apptest.ReporteRepo) {
	t.Helper()
	repos := apptest.NewRepos()
	tx := &apptest.TxRunner{R: repos}
	reporte := &apptest.ReporteRepo{}
	uc := capital.NewUseCase(tx, repos.Capital, repos.Carteras, repos.CarteraMovs, reporte, logger.Nop())
	return uc, repos, reporte
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ventaDePrueba(tipo string, total string) *entity.Venta {
	return &entity.Venta{
		ID:            "11111111-1111-1111-1111-111111111111",
		ClienteID:     "22222222-2222-2222-2222-222222222222",
		UsuarioID:     testUserID,
		TipoVenta:     tipo,
		Activa:        true,
		Total:         dec(total),
		FechaRegistro: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inyecciones y retiros
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarInyeccion_RequiereUsuario(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.RegistrarInyeccion(context.Background(), dto.InyeccionCapitalRequest{Monto: dec("100000")}, "")
	assert.ErrorIs(t, err, domain.ErrUsuarioRequerido)
}

func TestRegistrarInyeccion_SumaAlSaldo(t *testing.T) {
	uc, repos, _ := newUseCase(t)

	mov, err := uc.RegistrarInyeccion(context.Background(), dto.InyeccionCapitalRequest{
		Monto:       dec("100000"),
		Descripcion: "aporte del socio",
	}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.CapitalOrigenInyeccion, mov.Origen)

	saldo, err := repos.Capital.SumSaldoReal(nil, nil)
	require.NoError(t, err)
	assert.True(t, saldo.Equal(dec("100000")))
}

func TestRegistrarRetiro_ExcedeSaldo(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.RegistrarInyeccion(context.Background(), dto.InyeccionCapitalRequest{Monto: dec("50000")}, testUserID)
	require.NoError(t, err)

	_, err = uc.RegistrarRetiro(context.Background(), dto.RetiroGananciaRequest{Monto: dec("80000")}, testUserID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "80000")
	assert.Contains(t, err.Error(), "50000")
}

func TestRegistrarRetiro_DescuentaSaldo(t *testing.T) {
	uc, repos, _ := newUseCase(t)

	_, err := uc.RegistrarInyeccion(context.Background(), dto.InyeccionCapitalRequest{Monto: dec("50000")}, testUserID)
	require.NoError(t, err)
	_, err = uc.RegistrarRetiro(context.Background(), dto.RetiroGananciaRequest{Monto: dec("20000")}, testUserID)
	require.NoError(t, err)

	saldo, err := repos.Capital.SumSaldoReal(nil, nil)
	require.NoError(t, err)
	assert.True(t, saldo.Equal(dec("30000")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y reverso de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarVentaInTx_ContadoEsEfectivo(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	venta := ventaDePrueba(entity.VentaContado, "45000")

	err := uc.RegistrarVentaInTx(repos.Capital, venta, time.Now())
	require.NoError(t, err)

	movs := repos.Capital.PorOrigen(entity.CapitalOrigenVenta)
	require.Len(t, movs, 1)
	assert.False(t, movs[0].EsCredito)
	assert.True(t, movs[0].Monto.Equal(dec("45000")))

	saldo, _ := repos.Capital.SumSaldoReal(nil, nil)
	assert.True(t, saldo.Equal(dec("45000")))
}

func TestRegistrarVentaInTx_CreditoNoTocaSaldoReal(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	venta := ventaDePrueba(entity.VentaCredito, "45000")

	err := uc.RegistrarVentaInTx(repos.Capital, venta, time.Now())
	require.NoError(t, err)

	saldo, _ := repos.Capital.SumSaldoReal(nil, nil)
	assert.True(t, saldo.IsZero(), "una venta a crédito no entra a caja")

	pendiente, _ := repos.Capital.SumCreditoPendiente(nil, nil)
	assert.True(t, pendiente.Equal(dec("45000")))
}

func TestRevertirVentaInTx_ConservaMarcaCredito(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	venta := ventaDePrueba(entity.VentaCredito, "45000")
	now := time.Now()
	usuario := testUserID

	require.NoError(t, uc.RegistrarVentaInTx(repos.Capital, venta, now))
	require.NoError(t, uc.RevertirVentaInTx(repos.Capital, venta, &usuario, now))

	movs := repos.Capital.PorOrigen(entity.CapitalOrigenVenta)
	require.Len(t, movs, 2)
	assert.True(t, movs[1].Monto.Equal(dec("-45000")))
	assert.True(t, movs[1].EsCredito, "el reverso conserva la marca de crédito")

	pendiente, _ := repos.Capital.SumCreditoPendiente(nil, nil)
	assert.True(t, pendiente.IsZero())
}

func TestRevertirVentaInTx_NoDuplicaReversos(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	venta := ventaDePrueba(entity.VentaContado, "45000")
	now := time.Now()
	usuario := testUserID

	require.NoError(t, uc.RegistrarVentaInTx(repos.Capital, venta, now))
	require.NoError(t, uc.RevertirVentaInTx(repos.Capital, venta, &usuario, now))
	require.NoError(t, uc.RevertirVentaInTx(repos.Capital, venta, &usuario, now))

	assert.Len(t, repos.Capital.PorOrigen(entity.CapitalOrigenVenta), 2, "el segundo reverso no escribe")
}

func TestRevertirVentaInTx_SinOriginalNoEscribe(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	venta := ventaDePrueba(entity.VentaContado, "45000")
	usuario := testUserID

	require.NoError(t, uc.RevertirVentaInTx(repos.Capital, venta, &usuario, time.Now()))
	assert.Empty(t, repos.Capital.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Abonos de cartera
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarAbonoCarteraInTx_RegistraUnaSolaEntradaReal(t *testing.T) {
	uc, repos, _ := newUseCase(t)
	venta := ventaDePrueba(entity.VentaCredito, "45000")
	now := time.Now()
	usuario := testUserID

	require.NoError(t, uc.RegistrarVentaInTx(repos.Capital, venta, now))
	require.NoError(t, uc.RegistrarAbonoCarteraInTx(repos.Capital, venta.ID, dec("20000"), &usuario, now))

	saldo, _ := repos.Capital.SumSaldoReal(nil, nil)
	assert.True(t, saldo.Equal(dec("20000")), "el abono entra a caja")

	abonos := repos.Capital.PorOrigen(entity.CapitalOrigenAbono)
	require.Len(t, abonos, 1, "un abono es un único movimiento de caja")
	assert.False(t, abonos[0].EsCredito)
	require.NotNil(t, abonos[0].ReferenciaID)
	assert.Equal(t, venta.ID, *abonos[0].ReferenciaID, "la referencia es la venta que originó la deuda")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestObtenerResumen_ArmaElTablero(t *testing.T) {
	uc, repos, reporte := newUseCase(t)

	_, err := uc.RegistrarInyeccion(context.Background(), dto.InyeccionCapitalRequest{Monto: dec("100000")}, testUserID)
	require.NoError(t, err)

	venta := ventaDePrueba(entity.VentaCredito, "45000")
	require.NoError(t, uc.RegistrarVentaInTx(repos.Capital, venta, time.Now()))
	repos.Carteras.Items = append(repos.Carteras.Items, &entity.Cartera{
		ID:        "cartera-1",
		ClienteID: venta.ClienteID,
		VentaID:   venta.ID,
		Saldo:     dec("45000"),
	})

	reporte.TotalVentas = dec("45000")
	reporte.Unidades = 6
	reporte.ValorInventario = dec("300000")
	reporte.TopProductosR = []repository.TopProductoResult{
		{Nombre: "Aceite 20W50", CantidadVendida: 6, TotalVendido: dec("45000")},
	}
	reporte.Mensuales = []repository.VentaMensualResult{{Anio: 2026, Mes: 8, Total: dec("45000")}}

	resumen, err := uc.ObtenerResumen(context.Background(), dto.ResumenCapitalRequest{})
	require.NoError(t, err)

	assert.True(t, resumen.SaldoReal.Equal(dec("100000")))
	assert.True(t, resumen.CreditoPendiente.Equal(dec("45000")))
	assert.True(t, resumen.SaldoCartera.Equal(dec("45000")))
	assert.True(t, resumen.ValorInventario.Equal(dec("300000")))
	assert.Equal(t, 6, resumen.UnidadesVendidas)
	require.Len(t, resumen.TopProductos, 1)
	assert.Equal(t, "Aceite 20W50", resumen.TopProductos[0].Nombre)
	require.Len(t, resumen.VentasMensuales, 1)
	assert.Equal(t, "2026-08", resumen.VentasMensuales[0].Mes)
}

func TestObtenerResumen_FechaInvalida(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.ObtenerResumen(context.Background(), dto.ResumenCapitalRequest{Desde: "no-es-fecha"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
