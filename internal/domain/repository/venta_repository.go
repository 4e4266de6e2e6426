package repository

import (
	"time"

	"github.com/sicoil/backoffice/internal/domain/entity"
)

// VentaFiltro agrupa los filtros del listado de ventas. Activa en nil no
// filtra (se listan también las anuladas).
type VentaFiltro struct {
	ClienteID     string
	TipoVenta     string
	NombreCliente string
	NombreUsuario string
	Activa        *bool
	Desde         *time.Time
	Hasta         *time.Time
}

// VentaRepository define el puerto de persistencia de ventas y sus detalles.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	CreateDetalle(detalle *entity.DetalleVenta) error
	GetByID(id string) (*entity.Venta, error)
	GetDetallesByVentaID(ventaID string) ([]*entity.DetalleVenta, error)
	// Anular marca la venta como inactiva con el motivo formateado.
	Anular(id string, motivo string) error
	List(filtro VentaFiltro, limit, offset int) ([]*entity.Venta, int, error)
}
