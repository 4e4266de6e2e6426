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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create inserta un usuario. El nombre de login es único.
func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, usuario, contrasena, rol, fecha_registro)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.Usuario, usuario.Contrasena, usuario.Rol, usuario.FechaRegistro)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsuarioYaExiste
		}
		return fmt.Errorf("create usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por id.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(),
		`SELECT id, usuario, contrasena, rol, fecha_registro FROM usuarios WHERE id = $1`, id).
		Scan(&u.ID, &u.Usuario, &u.Contrasena, &u.Rol, &u.FechaRegistro)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// FindByUsuario busca un usuario por nombre de login.
func (r *UsuarioRepo) FindByUsuario(nombre string) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(),
		`SELECT id, usuario, contrasena, rol, fecha_registro FROM usuarios WHERE usuario = $1`, nombre).
		Scan(&u.ID, &u.Usuario, &u.Contrasena, &u.Rol, &u.FechaRegistro)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find usuario: %w", err)
	}
	return &u, nil
}
