package repository

import (
	"time"

	"github.com/sicoil/backoffice/internal/domain/entity"
)

// KardexFiltro agrupa los filtros de consulta del kardex. Los campos en nil o
// vacíos no se aplican.
type KardexFiltro struct {
	LoteID         string
	UsuarioID      string
	NombreProducto string
	Tipo           string
	Desde          *time.Time
	Hasta          *time.Time
}

// KardexRepository define el puerto de persistencia del kardex (append-only).
type KardexRepository interface {
	Create(mov *entity.Kardex) error
	ListByLote(loteID string) ([]*entity.Kardex, error)
	// List aplica los filtros y pagina; ordena por fecha de registro descendente.
	List(filtro KardexFiltro, limit, offset int) ([]*entity.Kardex, int, error)
}
