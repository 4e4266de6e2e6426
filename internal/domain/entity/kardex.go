package entity

import "time"

// Tipos de movimiento del kardex.
const (
	MovimientoEntrada    = "ENTRADA"    // ingreso de mercancía
	MovimientoSalida     = "SALIDA"     // salida administrativa
	MovimientoVenta      = "VENTA"      // salida por venta
	MovimientoDevolucion = "DEVOLUCION" // retorno por anulación de venta
)

// Kardex es una fila del registro de movimientos de stock. Inmutable una vez
// creada; una venta con varios lotes produce una fila por lote consumido.
// UsuarioID es nil cuando el actor no pudo resolverse (el movimiento de stock
// no se bloquea por un fallo de autenticación).
type Kardex struct {
	ID            string
	LoteID        string
	UsuarioID     *string
	Cantidad      int
	Tipo          string
	Comentario    string
	FechaRegistro time.Time
}
