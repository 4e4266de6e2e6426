package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes de un movimiento de capital.
const (
	CapitalOrigenCompra         = "COMPRA"          // salida por ingreso de inventario
	CapitalOrigenVenta          = "VENTA"           // ingreso por venta (contado o crédito)
	CapitalOrigenInyeccion      = "INYECCION"       // aporte de capital
	CapitalOrigenRetiroGanancia = "RETIRO_GANANCIA" // retiro de ganancias
	CapitalOrigenAbono          = "ABONO"           // recaudo de cartera
)

// CapitalMovimiento es una fila del libro de capital. El libro es append-only:
// una reversión es un movimiento nuevo con el monto negado y la misma
// clasificación, nunca un update o delete. El saldo real de caja es la suma de
// los montos con EsCredito=false; no se almacena en ningún otro lugar.
type CapitalMovimiento struct {
	ID           string
	Origen       string
	ReferenciaID *string // id de venta o de lote; nil en inyecciones y retiros
	Monto        decimal.Decimal
	EsCredito    bool // true = ingreso diferido aún no recaudado
	Descripcion  string
	UsuarioID    *string
	CreadoEn     time.Time
}
