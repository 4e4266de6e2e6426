package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta.
const (
	VentaContado = "CONTADO"
	VentaCredito = "CREDITO"
)

// Venta es la cabecera de una venta. El total queda fijado en la creación y no
// se recalcula tras la anulación; Activa pasa a false al anular (nunca se
// elimina). Los detalles se consultan por clave foránea, la cabecera no los
// contiene.
type Venta struct {
	ID              string
	ClienteID       string
	UsuarioID       string
	TipoVenta       string
	Activa          bool
	MotivoAnulacion *string
	Total           decimal.Decimal
	FechaRegistro   time.Time
}

// DetalleVenta es una línea de venta atada al lote consumido. Una línea
// solicitada puede desdoblarse en varios detalles cuando la asignación FIFO
// cruza más de un lote.
type DetalleVenta struct {
	ID       string
	VentaID  string
	LoteID   string
	Cantidad int
	Subtotal decimal.Decimal
}
