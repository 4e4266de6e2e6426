package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleVentaRequest línea de venta: producto por nombre, la asignación a
// lotes concretos la decide el motor FIFO.
type DetalleVentaRequest struct {
	NombreProducto string          `json:"nombre_producto" validate:"required,min=2,max=150"`
	Cantidad       int             `json:"cantidad" validate:"required,min=1"`
	Subtotal       decimal.Decimal `json:"subtotal" validate:"required"`
}

// CrearVentaRequest body para POST /api/ventas.
type CrearVentaRequest struct {
	ClienteID string                `json:"cliente_id" validate:"required,uuid4"`
	TipoVenta string                `json:"tipo_venta" validate:"required,oneof=CONTADO CREDITO"`
	Detalles  []DetalleVentaRequest `json:"detalles" validate:"required,min=1,dive"`
}

// AnularVentaRequest body para PATCH /api/ventas/:id/anular.
type AnularVentaRequest struct {
	Razon string `json:"razon" validate:"required,min=3,max=500"`
}

// DetalleVentaResponse línea persistida, ya atada a un lote concreto.
type DetalleVentaResponse struct {
	ID       string          `json:"id"`
	LoteID   string          `json:"lote_id"`
	Producto string          `json:"producto"`
	Cantidad int             `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// VentaResponse venta con sus detalles.
type VentaResponse struct {
	ID              string                 `json:"id"`
	ClienteID       string                 `json:"cliente_id"`
	Cliente         string                 `json:"cliente,omitempty"`
	UsuarioID       string                 `json:"usuario_id"`
	TipoVenta       string                 `json:"tipo_venta"`
	Activa          bool                   `json:"activa"`
	MotivoAnulacion *string                `json:"motivo_anulacion,omitempty"`
	Total           decimal.Decimal        `json:"total"`
	FechaRegistro   time.Time              `json:"fecha_registro"`
	Detalles        []DetalleVentaResponse `json:"detalles,omitempty"`
}

// ListarVentasRequest filtros de GET /api/ventas.
type ListarVentasRequest struct {
	PageRequest
	ClienteID string `query:"cliente_id" validate:"omitempty,uuid4"`
	TipoVenta string `query:"tipo_venta" validate:"omitempty,oneof=CONTADO CREDITO"`
	// IncluirAnuladas incluye ventas anuladas en el listado.
	IncluirAnuladas bool   `query:"incluir_anuladas"`
	Desde           string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta           string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
}
