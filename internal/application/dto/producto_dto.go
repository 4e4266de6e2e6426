package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearProductoRequest body para POST /api/productos.
// Crea el primer lote del producto; si StockInicial > 0 también registra el
// movimiento de kardex y la salida de capital correspondientes.
type CrearProductoRequest struct {
	Nombre           string          `json:"nombre" validate:"required,min=2,max=150"`
	PrecioCompra     decimal.Decimal `json:"precio_compra" validate:"required"`
	CantidadPorCajas int             `json:"cantidad_por_cajas" validate:"omitempty,min=1"`
	StockInicial     int             `json:"stock_inicial" validate:"omitempty,min=0"`
	Comentario       string          `json:"comentario,omitempty" validate:"omitempty,max=500"`
}

// IngresoLoteRequest body para POST /api/productos/ingreso.
// Si existe un lote con el mismo nombre y precio se acumula stock sobre él;
// si no, se abre un lote nuevo a ese precio.
type IngresoLoteRequest struct {
	Nombre           string          `json:"nombre" validate:"required,min=2,max=150"`
	PrecioCompra     decimal.Decimal `json:"precio_compra" validate:"required"`
	Cantidad         int             `json:"cantidad" validate:"required,min=1"`
	CantidadPorCajas int             `json:"cantidad_por_cajas" validate:"omitempty,min=1"`
	Comentario       string          `json:"comentario,omitempty" validate:"omitempty,max=500"`
}

// EliminarCantidadRequest body para PATCH /api/productos/:id/stock/eliminar.
type EliminarCantidadRequest struct {
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
	Comentario string `json:"comentario,omitempty" validate:"omitempty,max=500"`
}

// LoteResponse lote individual en respuestas.
type LoteResponse struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	CantidadPorCajas int             `json:"cantidad_por_cajas"`
	Stock            int             `json:"stock"`
	Comentario       string          `json:"comentario,omitempty"`
	FechaRegistro    time.Time       `json:"fecha_registro"`
}

// ProductoAgrupadoResponse vista agrupada por nombre para GET /api/productos:
// stock total y lotes vigentes ordenados por antigüedad.
type ProductoAgrupadoResponse struct {
	Nombre     string         `json:"nombre"`
	StockTotal int            `json:"stock_total"`
	Lotes      []LoteResponse `json:"lotes"`
}
