package repository

import (
	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain/entity"
)

// LoteRepository define el puerto de persistencia para los lotes de producto.
type LoteRepository interface {
	Create(lote *entity.Lote) error
	GetByID(id string) (*entity.Lote, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) antes del
	// read-modify-write de stock. Usar solo dentro de una transacción.
	GetForUpdate(id string) (*entity.Lote, error)
	// FindByNombreYPrecio localiza una variante exacta nombre+precio (restock).
	FindByNombreYPrecio(nombre string, precioCompra decimal.Decimal) (*entity.Lote, error)
	// ListByNombreForUpdate devuelve los lotes de un nombre, incluidos los
	// agotados, ordenados por fecha de registro ascendente (FIFO), bloqueando
	// las filas.
	ListByNombreForUpdate(nombre string) ([]*entity.Lote, error)
	ExistsByNombre(nombre string) (bool, error)
	UpdateStock(id string, stock int) error
	// List devuelve todos los lotes (filtro opcional por nombre) para la vista
	// agrupada del catálogo.
	List(nombreFiltro string) ([]*entity.Lote, error)
}
