package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL (usable con
// pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaColumns = `id, cliente_id, usuario_id, tipo_venta, activa, motivo_anulacion, total, fecha_registro`

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	err := row.Scan(&v.ID, &v.ClienteID, &v.UsuarioID, &v.TipoVenta,
		&v.Activa, &v.MotivoAnulacion, &v.Total, &v.FechaRegistro)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserta la cabecera de la venta.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (id, cliente_id, usuario_id, tipo_venta, activa, motivo_anulacion, total, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.ClienteID, venta.UsuarioID, venta.TipoVenta,
		venta.Activa, venta.MotivoAnulacion, venta.Total, venta.FechaRegistro)
	if err != nil {
		return fmt.Errorf("create venta: %w", err)
	}
	return nil
}

// CreateDetalle inserta una línea de venta.
func (r *VentaRepo) CreateDetalle(detalle *entity.DetalleVenta) error {
	query := `
		INSERT INTO detalle_ventas (id, venta_id, lote_id, cantidad, subtotal)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		detalle.ID, detalle.VentaID, detalle.LoteID, detalle.Cantidad, detalle.Subtotal)
	if err != nil {
		return fmt.Errorf("create detalle de venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por id.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	v, err := scanVenta(r.q.QueryRow(context.Background(),
		`SELECT `+ventaColumns+` FROM ventas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return v, nil
}

// GetDetallesByVentaID obtiene las líneas de una venta.
func (r *VentaRepo) GetDetallesByVentaID(ventaID string) ([]*entity.DetalleVenta, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, venta_id, lote_id, cantidad, subtotal FROM detalle_ventas WHERE venta_id = $1 ORDER BY id`,
		ventaID)
	if err != nil {
		return nil, fmt.Errorf("list detalles de venta: %w", err)
	}
	defer rows.Close()

	var out []*entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.VentaID, &d.LoteID, &d.Cantidad, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle de venta: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Anular marca la venta como inactiva con el motivo formateado. La cabecera
// nunca se elimina.
func (r *VentaRepo) Anular(id string, motivo string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE ventas SET activa = false, motivo_anulacion = $2 WHERE id = $1`, id, motivo)
	if err != nil {
		return fmt.Errorf("anular venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve las ventas que cumplen el filtro, más reciente primero, junto
// con el total de filas para paginar. Los filtros por nombre resuelven contra
// clientes y usuarios.
func (r *VentaRepo) List(filtro repository.VentaFiltro, limit, offset int) ([]*entity.Venta, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	add := func(cond string, val any) {
		n++
		where += fmt.Sprintf(cond, n)
		args = append(args, val)
	}
	if filtro.ClienteID != "" {
		add(` AND v.cliente_id = $%d`, filtro.ClienteID)
	}
	if filtro.TipoVenta != "" {
		add(` AND v.tipo_venta = $%d`, filtro.TipoVenta)
	}
	if filtro.NombreCliente != "" {
		add(` AND v.cliente_id IN (SELECT id FROM clientes WHERE nombre ILIKE '%%' || $%d || '%%')`, filtro.NombreCliente)
	}
	if filtro.NombreUsuario != "" {
		add(` AND v.usuario_id IN (SELECT id FROM usuarios WHERE usuario ILIKE '%%' || $%d || '%%')`, filtro.NombreUsuario)
	}
	if filtro.Activa != nil {
		add(` AND v.activa = $%d`, *filtro.Activa)
	}
	if filtro.Desde != nil {
		add(` AND v.fecha_registro >= $%d`, *filtro.Desde)
	}
	if filtro.Hasta != nil {
		add(` AND v.fecha_registro <= $%d`, *filtro.Hasta)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM ventas v` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ventas: %w", err)
	}

	query := `SELECT v.id, v.cliente_id, v.usuario_id, v.tipo_venta, v.activa, v.motivo_anulacion, v.total, v.fecha_registro FROM ventas v` +
		where + fmt.Sprintf(` ORDER BY v.fecha_registro DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan venta: %w", err)
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}
