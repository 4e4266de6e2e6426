package postgres

import (
	"context"
	"fmt"

	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo implementación de KardexRepository sobre PostgreSQL (usable con pool o tx).
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador de kardex. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

// Create inserta un movimiento. El kardex no tiene Update ni Delete.
func (r *KardexRepo) Create(mov *entity.Kardex) error {
	query := `
		INSERT INTO kardex (id, lote_id, usuario_id, cantidad, tipo, comentario, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.LoteID, mov.UsuarioID, mov.Cantidad, mov.Tipo, mov.Comentario, mov.FechaRegistro)
	if err != nil {
		return fmt.Errorf("create kardex: %w", err)
	}
	return nil
}

// ListByLote devuelve el historial completo de un lote, más reciente primero.
func (r *KardexRepo) ListByLote(loteID string) ([]*entity.Kardex, error) {
	query := `
		SELECT id, lote_id, usuario_id, cantidad, tipo, comentario, fecha_registro
		FROM kardex WHERE lote_id = $1
		ORDER BY fecha_registro DESC`
	rows, err := r.q.Query(context.Background(), query, loteID)
	if err != nil {
		return nil, fmt.Errorf("list kardex por lote: %w", err)
	}
	defer rows.Close()

	var out []*entity.Kardex
	for rows.Next() {
		var m entity.Kardex
		if err := rows.Scan(&m.ID, &m.LoteID, &m.UsuarioID, &m.Cantidad, &m.Tipo, &m.Comentario, &m.FechaRegistro); err != nil {
			return nil, fmt.Errorf("scan kardex: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// List aplica filtros y pagina. Los filtros por nombre de producto o usuario
// resuelven contra lotes y usuarios.
func (r *KardexRepo) List(filtro repository.KardexFiltro, limit, offset int) ([]*entity.Kardex, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	add := func(cond string, val any) {
		n++
		where += fmt.Sprintf(cond, n)
		args = append(args, val)
	}
	if filtro.LoteID != "" {
		add(` AND k.lote_id = $%d`, filtro.LoteID)
	}
	if filtro.UsuarioID != "" {
		add(` AND k.usuario_id = $%d`, filtro.UsuarioID)
	}
	if filtro.Tipo != "" {
		add(` AND k.tipo = $%d`, filtro.Tipo)
	}
	if filtro.NombreProducto != "" {
		add(` AND k.lote_id IN (SELECT id FROM lotes WHERE nombre ILIKE '%%' || $%d || '%%')`, filtro.NombreProducto)
	}
	if filtro.Desde != nil {
		add(` AND k.fecha_registro >= $%d`, *filtro.Desde)
	}
	if filtro.Hasta != nil {
		add(` AND k.fecha_registro <= $%d`, *filtro.Hasta)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM kardex k`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count kardex: %w", err)
	}

	query := `
		SELECT k.id, k.lote_id, k.usuario_id, k.cantidad, k.tipo, k.comentario, k.fecha_registro
		FROM kardex k` + where + fmt.Sprintf(`
		ORDER BY k.fecha_registro DESC
		LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list kardex: %w", err)
	}
	defer rows.Close()

	var out []*entity.Kardex
	for rows.Next() {
		var m entity.Kardex
		if err := rows.Scan(&m.ID, &m.LoteID, &m.UsuarioID, &m.Cantidad, &m.Tipo, &m.Comentario, &m.FechaRegistro); err != nil {
			return nil, 0, fmt.Errorf("scan kardex: %w", err)
		}
		out = append(out, &m)
	}
	return out, total, rows.Err()
}
