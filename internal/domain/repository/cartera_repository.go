package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain/entity"
)

// CarteraRepository define el puerto de persistencia de los saldos de cartera.
type CarteraRepository interface {
	Create(cartera *entity.Cartera) error
	GetByID(id string) (*entity.Cartera, error)
	GetByVentaID(ventaID string) (*entity.Cartera, error)
	ExistsByVentaID(ventaID string) (bool, error)
	// ListPendientesByClienteForUpdate devuelve las carteras con saldo > 0 del
	// cliente ordenadas por última actualización ascendente (la deuda activa más
	// antigua primero), bloqueando las filas para serializar abonos concurrentes.
	ListPendientesByClienteForUpdate(clienteID string) ([]*entity.Cartera, error)
	// ListPendientes devuelve todas las carteras con saldo > 0, con filtro
	// opcional por nombre de cliente.
	ListPendientes(nombreCliente string) ([]*entity.Cartera, error)
	UpdateSaldo(id string, saldo decimal.Decimal) error
	// SumSaldosPendientes suma los saldos de todas las carteras abiertas
	// (crédito pendiente de recaudo del resumen de capital).
	SumSaldosPendientes() (decimal.Decimal, error)
}

// CarteraMovimientoFiltro filtros del historial de cartera.
type CarteraMovimientoFiltro struct {
	ClienteID string
	Tipo      string
	Desde     *time.Time
	Hasta     *time.Time
}

// CarteraMovimientoRepository define el puerto del historial de cartera
// (append-only).
type CarteraMovimientoRepository interface {
	Create(mov *entity.CarteraMovimiento) error
	// List devuelve los movimientos que cumplen el filtro, ordenados por fecha
	// descendente.
	List(filtro CarteraMovimientoFiltro) ([]*entity.CarteraMovimiento, error)
	ListByCarteraIDs(carteraIDs []string, desde, hasta *time.Time) ([]*entity.CarteraMovimiento, error)
	// SumByTipo suma los montos de un tipo de movimiento en el rango dado.
	SumByTipo(tipo string, desde, hasta *time.Time) (decimal.Decimal, error)
}
