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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de clientes.
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create inserta un cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, nombre, telefono, direccion, fecha_registro)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombre, cliente.Telefono, cliente.Direccion, cliente.FechaRegistro)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create cliente: %w", err)
	}
	return nil
}

// Update actualiza los datos de contacto del cliente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET nombre = $2, telefono = $3, direccion = $4 WHERE id = $1`,
		cliente.ID, cliente.Nombre, cliente.Telefono, cliente.Direccion)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un cliente por id.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, telefono, direccion, fecha_registro FROM clientes WHERE id = $1`, id).
		Scan(&c.ID, &c.Nombre, &c.Telefono, &c.Direccion, &c.FechaRegistro)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// List devuelve los clientes ordenados por nombre, con filtro opcional por
// nombre y el total de filas para paginar.
func (r *ClienteRepo) List(nombreFiltro string, limit, offset int) ([]*entity.Cliente, int, error) {
	where := ``
	args := []any{}
	if nombreFiltro != "" {
		where = ` WHERE nombre ILIKE '%' || $1 || '%'`
		args = append(args, nombreFiltro)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM clientes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, nombre, telefono, direccion, fecha_registro FROM clientes%s ORDER BY nombre ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Telefono, &c.Direccion, &c.FechaRegistro); err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, &c)
	}
	return out, total, rows.Err()
}
