package repository

import "github.com/sicoil/backoffice/internal/domain/entity"

// ClienteRepository define el puerto de persistencia de clientes.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	Update(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	List(nombreFiltro string, limit, offset int) ([]*entity.Cliente, int, error)
}
