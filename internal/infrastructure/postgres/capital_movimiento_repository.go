package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

var _ repository.CapitalMovimientoRepository = (*CapitalMovimientoRepo)(nil)

// CapitalMovimientoRepo implementación del libro de capital sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro no se corrige en sitio.
type CapitalMovimientoRepo struct {
	q Querier
}

// NewCapitalMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCapitalMovimientoRepository(q Querier) *CapitalMovimientoRepo {
	return &CapitalMovimientoRepo{q: q}
}

// Create inserta un movimiento.
func (r *CapitalMovimientoRepo) Create(mov *entity.CapitalMovimiento) error {
	query := `
		INSERT INTO capital_movimientos (id, origen, referencia_id, monto, es_credito, descripcion, usuario_id, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.Origen, mov.ReferenciaID, mov.Monto, mov.EsCredito, mov.Descripcion, mov.UsuarioID, mov.CreadoEn)
	if err != nil {
		return fmt.Errorf("create movimiento de capital: %w", err)
	}
	return nil
}

// List aplica filtros y pagina, más reciente primero.
func (r *CapitalMovimientoRepo) List(filtro repository.CapitalFiltro, limit, offset int) ([]*entity.CapitalMovimiento, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	add := func(cond string, val any) {
		n++
		where += fmt.Sprintf(cond, n)
		args = append(args, val)
	}
	if filtro.Origen != "" {
		add(` AND origen = $%d`, filtro.Origen)
	}
	if filtro.EsCredito != nil {
		add(` AND es_credito = $%d`, *filtro.EsCredito)
	}
	if filtro.ReferenciaID != "" {
		add(` AND referencia_id = $%d`, filtro.ReferenciaID)
	}
	if filtro.Descripcion != "" {
		add(` AND descripcion ILIKE '%%' || $%d || '%%'`, filtro.Descripcion)
	}
	if filtro.Desde != nil {
		add(` AND creado_en >= $%d`, *filtro.Desde)
	}
	if filtro.Hasta != nil {
		add(` AND creado_en <= $%d`, *filtro.Hasta)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM capital_movimientos`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movimientos de capital: %w", err)
	}

	query := `
		SELECT id, origen, referencia_id, monto, es_credito, descripcion, usuario_id, creado_en
		FROM capital_movimientos` + where + fmt.Sprintf(`
		ORDER BY creado_en DESC
		LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movimientos de capital: %w", err)
	}
	defer rows.Close()

	var out []*entity.CapitalMovimiento
	for rows.Next() {
		var m entity.CapitalMovimiento
		if err := rows.Scan(&m.ID, &m.Origen, &m.ReferenciaID, &m.Monto, &m.EsCredito, &m.Descripcion, &m.UsuarioID, &m.CreadoEn); err != nil {
			return nil, 0, fmt.Errorf("scan movimiento de capital: %w", err)
		}
		out = append(out, &m)
	}
	return out, total, rows.Err()
}

// ListByReferencia devuelve los movimientos atados a una referencia (venta o
// lote), más antiguo primero.
func (r *CapitalMovimientoRepo) ListByReferencia(referenciaID string) ([]*entity.CapitalMovimiento, error) {
	query := `
		SELECT id, origen, referencia_id, monto, es_credito, descripcion, usuario_id, creado_en
		FROM capital_movimientos WHERE referencia_id = $1
		ORDER BY creado_en ASC`
	rows, err := r.q.Query(context.Background(), query, referenciaID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por referencia: %w", err)
	}
	defer rows.Close()

	var out []*entity.CapitalMovimiento
	for rows.Next() {
		var m entity.CapitalMovimiento
		if err := rows.Scan(&m.ID, &m.Origen, &m.ReferenciaID, &m.Monto, &m.EsCredito, &m.Descripcion, &m.UsuarioID, &m.CreadoEn); err != nil {
			return nil, fmt.Errorf("scan movimiento de capital: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *CapitalMovimientoRepo) sumWhere(cond string, desde, hasta *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(monto), 0) FROM capital_movimientos WHERE ` + cond
	args := []any{}
	n := 0
	if desde != nil {
		n++
		query += fmt.Sprintf(` AND creado_en >= $%d`, n)
		args = append(args, *desde)
	}
	if hasta != nil {
		n++
		query += fmt.Sprintf(` AND creado_en <= $%d`, n)
		args = append(args, *hasta)
	}
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum capital: %w", err)
	}
	return sum, nil
}

// SumSaldoReal suma los montos no crédito (caja líquida).
func (r *CapitalMovimientoRepo) SumSaldoReal(desde, hasta *time.Time) (decimal.Decimal, error) {
	return r.sumWhere(`es_credito = false`, desde, hasta)
}

// SumEntradas suma los montos positivos no crédito.
func (r *CapitalMovimientoRepo) SumEntradas(desde, hasta *time.Time) (decimal.Decimal, error) {
	return r.sumWhere(`es_credito = false AND monto > 0`, desde, hasta)
}

// SumCompras suma los montos de origen COMPRA (negativos).
func (r *CapitalMovimientoRepo) SumCompras(desde, hasta *time.Time) (decimal.Decimal, error) {
	return r.sumWhere(`origen = 'COMPRA'`, desde, hasta)
}

// SumCreditoPendiente suma los montos con marca de crédito (ingresos
// diferidos netos de abonos y reversos).
func (r *CapitalMovimientoRepo) SumCreditoPendiente(desde, hasta *time.Time) (decimal.Decimal, error) {
	return r.sumWhere(`es_credito = true`, desde, hasta)
}
