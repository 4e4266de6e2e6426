package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementación de LoteRepository sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteColumns = `id, nombre, precio_compra, cantidad_por_cajas, stock, comentario, fecha_registro, actualizado_en`

func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	err := row.Scan(&l.ID, &l.Nombre, &l.PrecioCompra, &l.CantidadPorCajas, &l.Stock,
		&l.Comentario, &l.FechaRegistro, &l.ActualizadoEn)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserta un lote nuevo.
func (r *LoteRepo) Create(lote *entity.Lote) error {
	query := `
		INSERT INTO lotes (id, nombre, precio_compra, cantidad_por_cajas, stock, comentario, fecha_registro, actualizado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.Nombre, lote.PrecioCompra, lote.CantidadPorCajas, lote.Stock,
		lote.Comentario, lote.FechaRegistro, lote.ActualizadoEn)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1`
	l, err := scanLote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return l, nil
}

// GetForUpdate obtiene un lote y bloquea la fila (SELECT FOR UPDATE).
func (r *LoteRepo) GetForUpdate(id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1 FOR UPDATE`
	l, err := scanLote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lote for update: %w", err)
	}
	return l, nil
}

// FindByNombreYPrecio localiza la variante exacta nombre+precio; nil si no existe.
func (r *LoteRepo) FindByNombreYPrecio(nombre string, precioCompra decimal.Decimal) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE nombre = $1 AND precio_compra = $2`
	l, err := scanLote(r.q.QueryRow(context.Background(), query, nombre, precioCompra))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find lote por nombre y precio: %w", err)
	}
	return l, nil
}

// ListByNombreForUpdate devuelve los lotes de un nombre en orden FIFO,
// bloqueando las filas para serializar ventas concurrentes. Incluye los lotes
// agotados: así un producto sin stock reporta faltante en vez de inexistente,
// y el asignador los salta.
func (r *LoteRepo) ListByNombreForUpdate(nombre string) ([]*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM lotes
		WHERE nombre = $1
		ORDER BY fecha_registro ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, nombre)
	if err != nil {
		return nil, fmt.Errorf("list lotes for update: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ExistsByNombre indica si ya existe algún lote con ese nombre.
func (r *LoteRepo) ExistsByNombre(nombre string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM lotes WHERE nombre = $1)`, nombre).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists lote: %w", err)
	}
	return exists, nil
}

// UpdateStock fija el stock del lote. El caller debe tener la fila bloqueada.
func (r *LoteRepo) UpdateStock(id string, stock int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE lotes SET stock = $2, actualizado_en = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve lotes para la vista agrupada, con filtro opcional por nombre.
func (r *LoteRepo) List(nombreFiltro string) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes`
	args := []any{}
	if nombreFiltro != "" {
		query += ` WHERE nombre ILIKE '%' || $1 || '%'`
		args = append(args, nombreFiltro)
	}
	query += ` ORDER BY nombre ASC, fecha_registro ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
