package repository

import "github.com/sicoil/backoffice/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia de usuarios.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	FindByUsuario(nombre string) (*entity.Usuario, error)
}
