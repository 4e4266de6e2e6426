package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain/entity"
)

// CapitalFiltro agrupa los filtros de consulta del libro de capital.
type CapitalFiltro struct {
	Origen       string
	EsCredito    *bool
	ReferenciaID string
	Descripcion  string
	Desde        *time.Time
	Hasta        *time.Time
}

// CapitalMovimientoRepository define el puerto del libro de capital.
// El libro es append-only: no hay Update ni Delete; las sumas son proyecciones
// de solo lectura y la única fuente de verdad del saldo.
type CapitalMovimientoRepository interface {
	Create(mov *entity.CapitalMovimiento) error
	List(filtro CapitalFiltro, limit, offset int) ([]*entity.CapitalMovimiento, int, error)
	ListByReferencia(referenciaID string) ([]*entity.CapitalMovimiento, error)
	// SumSaldoReal suma los montos no crédito (caja líquida) en el rango; los
	// límites en nil no acotan.
	SumSaldoReal(desde, hasta *time.Time) (decimal.Decimal, error)
	// SumEntradas suma los montos positivos no crédito en el rango.
	SumEntradas(desde, hasta *time.Time) (decimal.Decimal, error)
	// SumCompras suma los montos de origen COMPRA en el rango (negativos).
	SumCompras(desde, hasta *time.Time) (decimal.Decimal, error)
	// SumCreditoPendiente suma los montos con EsCredito=true (ingresos diferidos
	// netos de reversos).
	SumCreditoPendiente(desde, hasta *time.Time) (decimal.Decimal, error)
}
