package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lote representa un lote de producto a un precio de compra determinado.
// Varios lotes comparten el mismo nombre (variantes de precio); el consumo en
// ventas es FIFO por fecha de registro. Un lote nunca se elimina: se agota a
// stock cero. Nombre y precio de compra son inmutables después de la creación.
type Lote struct {
	ID               string
	Nombre           string
	PrecioCompra     decimal.Decimal
	CantidadPorCajas int
	Stock            int
	Comentario       string
	FechaRegistro    time.Time
	ActualizadoEn    time.Time
}
