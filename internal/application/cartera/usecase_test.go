package cartera_test

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

func newUseCase(t *testing.T) (*cartera.UseCase, *apptest.Repos) {
	t.Helper()
	repos := apptest.NewRepos()
	tx := &apptest.TxRunner{R: repos}
	log := logger.Nop()
	capitalUC := capital.NewUseCase(tx, repos.Capital, repos.Carteras, repos.CarteraMovs, &apptest.ReporteRepo{}, log)
	uc := cartera.NewUseCase(tx, repos.Carteras, repos.CarteraMovs, repos.Clientes, capitalUC, log)
	return uc, repos
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// sembrarDeuda crea una cartera abierta con la última actualización dada.
func sembrarDeuda(repos *apptest.Repos, id, ventaID, saldo string, actualizada time.Time) {
	repos.Carteras.Items = append(repos.Carteras.Items, &entity.Cartera{
		ID:                  id,
		ClienteID:           testClienteID,
		VentaID:             ventaID,
		Saldo:               dec(saldo),
		UltimaActualizacion: actualizada,
	})
}

func ventaCredito(id, total string) *entity.Venta {
	return &entity.Venta{
		ID:            id,
		ClienteID:     testClienteID,
		UsuarioID:     testUserID,
		TipoVenta:     entity.VentaCredito,
		Activa:        true,
		Total:         dec(total),
		FechaRegistro: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura de cartera
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarVentaEnCarteraInTx_AbreSaldo(t *testing.T) {
	uc, repos := newUseCase(t)
	venta := ventaCredito("venta-1", "80000")

	err := uc.RegistrarVentaEnCarteraInTx(repos.Carteras, repos.CarteraMovs, venta, time.Now())
	require.NoError(t, err)

	require.Len(t, repos.Carteras.Items, 1)
	assert.True(t, repos.Carteras.Items[0].Saldo.Equal(dec("80000")))

	creditos := repos.CarteraMovs.PorTipo(entity.CarteraMovCredito)
	require.Len(t, creditos, 1)
	assert.True(t, creditos[0].Monto.Equal(dec("80000")))
}

func TestRegistrarVentaEnCarteraInTx_Idempotente(t *testing.T) {
	uc, repos := newUseCase(t)
	venta := ventaCredito("venta-1", "80000")
	now := time.Now()

	require.NoError(t, uc.RegistrarVentaEnCarteraInTx(repos.Carteras, repos.CarteraMovs, venta, now))
	require.NoError(t, uc.RegistrarVentaEnCarteraInTx(repos.Carteras, repos.CarteraMovs, venta, now))

	assert.Len(t, repos.Carteras.Items, 1, "la segunda apertura no duplica")
	assert.Len(t, repos.CarteraMovs.PorTipo(entity.CarteraMovCredito), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Abonos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarAbono_MasAntiguaPrimero(t *testing.T) {
	uc, repos := newUseCase(t)
	base := time.Now()
	sembrarDeuda(repos, "cartera-vieja", "venta-1", "30000", base.Add(-48*time.Hour))
	sembrarDeuda(repos, "cartera-nueva", "venta-2", "50000", base.Add(-1*time.Hour))

	resultado, err := uc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		ClienteID: testClienteID,
		Monto:     dec("45000"),
	}, testUserID)
	require.NoError(t, err)

	// 30000 saldan la deuda vieja; 15000 van a la nueva
	assert.True(t, repos.Carteras.SaldoDe("cartera-vieja").IsZero())
	assert.True(t, repos.Carteras.SaldoDe("cartera-nueva").Equal(dec("35000")))

	require.Len(t, resultado.Afectadas, 2)
	assert.Equal(t, "cartera-vieja", resultado.Afectadas[0].ID)

	abonos := repos.CarteraMovs.PorTipo(entity.CarteraMovAbono)
	require.Len(t, abonos, 2, "un rastro ABONO por saldo afectado")
	assert.True(t, abonos[0].Monto.Equal(dec("30000")))
	assert.True(t, abonos[1].Monto.Equal(dec("15000")))

	// El recaudo entra a caja
	saldoReal, _ := repos.Capital.SumSaldoReal(nil, nil)
	assert.True(t, saldoReal.Equal(dec("45000")))
}

func TestRegistrarAbono_ExactoSaldaTodo(t *testing.T) {
	uc, repos := newUseCase(t)
	base := time.Now()
	sembrarDeuda(repos, "cartera-1", "venta-1", "30000", base.Add(-2*time.Hour))
	sembrarDeuda(repos, "cartera-2", "venta-2", "20000", base.Add(-1*time.Hour))

	_, err := uc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		ClienteID: testClienteID,
		Monto:     dec("50000"),
	}, testUserID)
	require.NoError(t, err)

	pendiente, _ := repos.Carteras.SumSaldosPendientes()
	assert.True(t, pendiente.IsZero())
}

func TestRegistrarAbono_SinDeudas(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		ClienteID: testClienteID,
		Monto:     dec("10000"),
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrSinDeudasPendientes)
}

func TestRegistrarAbono_ExcedeDeuda(t *testing.T) {
	uc, repos := newUseCase(t)
	sembrarDeuda(repos, "cartera-1", "venta-1", "30000", time.Now())

	_, err := uc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		ClienteID: testClienteID,
		Monto:     dec("30001"),
	}, testUserID)
	require.ErrorIs(t, err, domain.ErrAbonoExcedeSaldo)
	assert.Contains(t, err.Error(), "30001")
	assert.Contains(t, err.Error(), "30000")

	assert.True(t, repos.Carteras.SaldoDe("cartera-1").Equal(dec("30000")), "el saldo no cambia tras el rechazo")
}

func TestRegistrarAbono_RequiereUsuario(t *testing.T) {
	uc, repos := newUseCase(t)
	sembrarDeuda(repos, "cartera-1", "venta-1", "30000", time.Now())

	_, err := uc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		ClienteID: testClienteID,
		Monto:     dec("10000"),
	}, "")
	assert.ErrorIs(t, err, domain.ErrUsuarioRequerido)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste por anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestAjustarPorAnulacionInTx_SaldoACero(t *testing.T) {
	uc, repos := newUseCase(t)
	sembrarDeuda(repos, "cartera-1", "venta-1", "30000", time.Now())
	usuario := testUserID

	err := uc.AjustarPorAnulacionInTx(repos.Carteras, repos.CarteraMovs, "venta-1", &usuario, "anulación", time.Now())
	require.NoError(t, err)

	assert.True(t, repos.Carteras.SaldoDe("cartera-1").IsZero())

	ajustes := repos.CarteraMovs.PorTipo(entity.CarteraMovAjuste)
	require.Len(t, ajustes, 1)
	assert.True(t, ajustes[0].Monto.Equal(dec("30000")), "el ajuste registra el saldo que se llevó a cero")

	assert.Empty(t, repos.Capital.Items, "el ajuste de cartera no toca capital")
}

func TestAjustarPorAnulacionInTx_SinCarteraNoFalla(t *testing.T) {
	uc, repos := newUseCase(t)
	usuario := testUserID

	err := uc.AjustarPorAnulacionInTx(repos.Carteras, repos.CarteraMovs, "venta-contado", &usuario, "anulación", time.Now())
	assert.NoError(t, err)
	assert.Empty(t, repos.CarteraMovs.Items)
}

func TestAjustarPorAnulacionInTx_SaldoYaCeroNoEscribe(t *testing.T) {
	uc, repos := newUseCase(t)
	sembrarDeuda(repos, "cartera-1", "venta-1", "0", time.Now())
	usuario := testUserID

	err := uc.AjustarPorAnulacionInTx(repos.Carteras, repos.CarteraMovs, "venta-1", &usuario, "anulación", time.Now())
	require.NoError(t, err)
	assert.Empty(t, repos.CarteraMovs.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListarPendientes_ResuelveNombreCliente(t *testing.T) {
	uc, repos := newUseCase(t)
	repos.Clientes.Items = append(repos.Clientes.Items, &entity.Cliente{ID: testClienteID, Nombre: "Taller El Motor"})
	sembrarDeuda(repos, "cartera-1", "venta-1", "30000", time.Now())

	pendientes, err := uc.ListarPendientes(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, "Taller El Motor", pendientes[0].Cliente)
}

func TestListarPendientes_IncluyeRastroDeMovimientos(t *testing.T) {
	uc, repos := newUseCase(t)
	base := time.Now()
	sembrarDeuda(repos, "cartera-1", "venta-1", "15000", base)
	sembrarDeuda(repos, "cartera-2", "venta-2", "50000", base)
	repos.CarteraMovs.Items = append(repos.CarteraMovs.Items,
		&entity.CarteraMovimiento{ID: "m1", CarteraID: "cartera-1", Tipo: entity.CarteraMovCredito, Monto: dec("30000"), Fecha: base.Add(-2 * time.Hour)},
		&entity.CarteraMovimiento{ID: "m2", CarteraID: "cartera-1", Tipo: entity.CarteraMovAbono, Monto: dec("15000"), Fecha: base.Add(-1 * time.Hour)},
		&entity.CarteraMovimiento{ID: "m3", CarteraID: "cartera-2", Tipo: entity.CarteraMovCredito, Monto: dec("50000"), Fecha: base},
	)

	pendientes, err := uc.ListarPendientes(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, pendientes, 2)

	porID := map[string]int{pendientes[0].ID: 0, pendientes[1].ID: 1}
	c1 := pendientes[porID["cartera-1"]]
	require.Len(t, c1.Movimientos, 2, "cada saldo trae su propio rastro")
	assert.Equal(t, "m2", c1.Movimientos[0].ID, "movimiento más reciente primero")
	assert.Equal(t, "m1", c1.Movimientos[1].ID)

	c2 := pendientes[porID["cartera-2"]]
	require.Len(t, c2.Movimientos, 1)
	assert.Equal(t, "m3", c2.Movimientos[0].ID)
}
