package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de cartera.
const (
	CarteraMovCredito = "CREDITO" // apertura de saldo por venta a crédito
	CarteraMovAbono   = "ABONO"   // pago aplicado
	CarteraMovAjuste  = "AJUSTE"  // saldo llevado a cero por anulación
)

// Cartera es el saldo pendiente de un cliente por una venta a crédito.
// Existe exactamente un registro por venta. Saldo nunca es negativo; al llegar
// a cero (por abonos o por anulación) el registro permanece como historial.
type Cartera struct {
	ID                  string
	ClienteID           string
	VentaID             string
	Saldo               decimal.Decimal
	UltimaActualizacion time.Time
}

// CarteraMovimiento es el rastro append-only de cada cambio sobre una cartera.
type CarteraMovimiento struct {
	ID          string
	CarteraID   string
	Tipo        string
	Monto       decimal.Decimal
	UsuarioID   *string
	Observacion string
	Fecha       time.Time
}
