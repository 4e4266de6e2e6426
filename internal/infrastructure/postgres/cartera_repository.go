package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

var _ repository.CarteraRepository = (*CarteraRepo)(nil)
var _ repository.CarteraMovimientoRepository = (*CarteraMovimientoRepo)(nil)

// CarteraRepo implementación de CarteraRepository sobre PostgreSQL (usable con pool o tx).
type CarteraRepo struct {
	q Querier
}

// NewCarteraRepository construye el adaptador de cartera. Pasar pool o tx (Querier).
func NewCarteraRepository(q Querier) *CarteraRepo {
	return &CarteraRepo{q: q}
}

const carteraColumns = `id, cliente_id, venta_id, saldo, ultima_actualizacion`

func scanCartera(row pgx.Row) (*entity.Cartera, error) {
	var c entity.Cartera
	if err := row.Scan(&c.ID, &c.ClienteID, &c.VentaID, &c.Saldo, &c.UltimaActualizacion); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create abre un saldo de cartera. La columna venta_id es única: una venta a
// crédito tiene exactamente una cartera.
func (r *CarteraRepo) Create(cartera *entity.Cartera) error {
	query := `
		INSERT INTO carteras (id, cliente_id, venta_id, saldo, ultima_actualizacion)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		cartera.ID, cartera.ClienteID, cartera.VentaID, cartera.Saldo, cartera.UltimaActualizacion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create cartera: %w", err)
	}
	return nil
}

// GetByID obtiene una cartera por id.
func (r *CarteraRepo) GetByID(id string) (*entity.Cartera, error) {
	c, err := scanCartera(r.q.QueryRow(context.Background(),
		`SELECT `+carteraColumns+` FROM carteras WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cartera: %w", err)
	}
	return c, nil
}

// GetByVentaID obtiene la cartera de una venta.
func (r *CarteraRepo) GetByVentaID(ventaID string) (*entity.Cartera, error) {
	c, err := scanCartera(r.q.QueryRow(context.Background(),
		`SELECT `+carteraColumns+` FROM carteras WHERE venta_id = $1`, ventaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cartera por venta: %w", err)
	}
	return c, nil
}

// ExistsByVentaID indica si la venta ya tiene cartera.
func (r *CarteraRepo) ExistsByVentaID(ventaID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM carteras WHERE venta_id = $1)`, ventaID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists cartera: %w", err)
	}
	return exists, nil
}

// ListPendientesByClienteForUpdate devuelve las deudas abiertas del cliente,
// la de última actualización más antigua primero, bloqueando las filas para
// serializar abonos concurrentes.
func (r *CarteraRepo) ListPendientesByClienteForUpdate(clienteID string) ([]*entity.Cartera, error) {
	query := `
		SELECT ` + carteraColumns + `
		FROM carteras
		WHERE cliente_id = $1 AND saldo > 0
		ORDER BY ultima_actualizacion ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("list carteras pendientes for update: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cartera
	for rows.Next() {
		c, err := scanCartera(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cartera: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListPendientes devuelve todas las deudas abiertas, con filtro opcional por
// nombre de cliente.
func (r *CarteraRepo) ListPendientes(nombreCliente string) ([]*entity.Cartera, error) {
	query := `
		SELECT c.id, c.cliente_id, c.venta_id, c.saldo, c.ultima_actualizacion
		FROM carteras c
		WHERE c.saldo > 0`
	args := []any{}
	if nombreCliente != "" {
		query += ` AND c.cliente_id IN (SELECT id FROM clientes WHERE nombre ILIKE '%' || $1 || '%')`
		args = append(args, nombreCliente)
	}
	query += ` ORDER BY c.ultima_actualizacion ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list carteras pendientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cartera
	for rows.Next() {
		c, err := scanCartera(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cartera: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateSaldo fija el saldo y refresca la última actualización. El caller
// debe tener la fila bloqueada.
func (r *CarteraRepo) UpdateSaldo(id string, saldo decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE carteras SET saldo = $2, ultima_actualizacion = now() WHERE id = $1`, id, saldo)
	if err != nil {
		return fmt.Errorf("update saldo cartera: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumSaldosPendientes suma los saldos abiertos de toda la cartera.
func (r *CarteraRepo) SumSaldosPendientes() (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(saldo), 0) FROM carteras WHERE saldo > 0`).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum saldos de cartera: %w", err)
	}
	return sum, nil
}

// CarteraMovimientoRepo implementación del historial de cartera sobre
// PostgreSQL (usable con pool o tx).
type CarteraMovimientoRepo struct {
	q Querier
}

// NewCarteraMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCarteraMovimientoRepository(q Querier) *CarteraMovimientoRepo {
	return &CarteraMovimientoRepo{q: q}
}

// Create inserta un movimiento de cartera.
func (r *CarteraMovimientoRepo) Create(mov *entity.CarteraMovimiento) error {
	query := `
		INSERT INTO cartera_movimientos (id, cartera_id, tipo, monto, usuario_id, observacion, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.CarteraID, mov.Tipo, mov.Monto, mov.UsuarioID, mov.Observacion, mov.Fecha)
	if err != nil {
		return fmt.Errorf("create movimiento de cartera: %w", err)
	}
	return nil
}

// List devuelve los movimientos que cumplen el filtro, más reciente primero.
// El filtro por cliente resuelve contra las carteras del cliente.
func (r *CarteraMovimientoRepo) List(filtro repository.CarteraMovimientoFiltro) ([]*entity.CarteraMovimiento, error) {
	query := `
		SELECT m.id, m.cartera_id, m.tipo, m.monto, m.usuario_id, m.observacion, m.fecha
		FROM cartera_movimientos m
		WHERE 1=1`
	args := []any{}
	n := 0
	add := func(cond string, val any) {
		n++
		query += fmt.Sprintf(cond, n)
		args = append(args, val)
	}
	if filtro.ClienteID != "" {
		add(` AND m.cartera_id IN (SELECT id FROM carteras WHERE cliente_id = $%d)`, filtro.ClienteID)
	}
	if filtro.Tipo != "" {
		add(` AND m.tipo = $%d`, filtro.Tipo)
	}
	if filtro.Desde != nil {
		add(` AND m.fecha >= $%d`, *filtro.Desde)
	}
	if filtro.Hasta != nil {
		add(` AND m.fecha <= $%d`, *filtro.Hasta)
	}
	query += ` ORDER BY m.fecha DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos de cartera: %w", err)
	}
	defer rows.Close()

	var out []*entity.CarteraMovimiento
	for rows.Next() {
		var m entity.CarteraMovimiento
		if err := rows.Scan(&m.ID, &m.CarteraID, &m.Tipo, &m.Monto, &m.UsuarioID, &m.Observacion, &m.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento de cartera: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListByCarteraIDs devuelve los movimientos de un conjunto de carteras en el
// rango dado.
func (r *CarteraMovimientoRepo) ListByCarteraIDs(carteraIDs []string, desde, hasta *time.Time) ([]*entity.CarteraMovimiento, error) {
	if len(carteraIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, cartera_id, tipo, monto, usuario_id, observacion, fecha
		FROM cartera_movimientos
		WHERE cartera_id = ANY($1)`
	args := []any{carteraIDs}
	n := 1
	if desde != nil {
		n++
		query += fmt.Sprintf(` AND fecha >= $%d`, n)
		args = append(args, *desde)
	}
	if hasta != nil {
		n++
		query += fmt.Sprintf(` AND fecha <= $%d`, n)
		args = append(args, *hasta)
	}
	query += ` ORDER BY fecha DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por carteras: %w", err)
	}
	defer rows.Close()

	var out []*entity.CarteraMovimiento
	for rows.Next() {
		var m entity.CarteraMovimiento
		if err := rows.Scan(&m.ID, &m.CarteraID, &m.Tipo, &m.Monto, &m.UsuarioID, &m.Observacion, &m.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento de cartera: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// SumByTipo suma los montos de un tipo de movimiento en el rango dado.
func (r *CarteraMovimientoRepo) SumByTipo(tipo string, desde, hasta *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(monto), 0) FROM cartera_movimientos WHERE tipo = $1`
	args := []any{tipo}
	n := 1
	if desde != nil {
		n++
		query += fmt.Sprintf(` AND fecha >= $%d`, n)
		args = append(args, *desde)
	}
	if hasta != nil {
		n++
		query += fmt.Sprintf(` AND fecha <= $%d`, n)
		args = append(args, *hasta)
	}
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum movimientos de cartera: %w", err)
	}
	return sum, nil
}
