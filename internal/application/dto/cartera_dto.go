package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarAbonoRequest body para POST /api/cartera/abonos.
// El monto se distribuye entre las deudas pendientes del cliente, empezando
// por la de última actualización más antigua.
type RegistrarAbonoRequest struct {
	ClienteID   string          `json:"cliente_id" validate:"required,uuid4"`
	Monto       decimal.Decimal `json:"monto" validate:"required"`
	Observacion string          `json:"observacion,omitempty" validate:"omitempty,max=500"`
}

// CarteraResponse saldo pendiente de una venta a crédito. En los listados de
// pendientes incluye el rastro de movimientos del saldo.
type CarteraResponse struct {
	ID                  string                      `json:"id"`
	ClienteID           string                      `json:"cliente_id"`
	Cliente             string                      `json:"cliente,omitempty"`
	VentaID             string                      `json:"venta_id"`
	Saldo               decimal.Decimal             `json:"saldo"`
	UltimaActualizacion time.Time                   `json:"ultima_actualizacion"`
	Movimientos         []CarteraMovimientoResponse `json:"movimientos,omitempty"`
}

// CarteraMovimientoResponse movimiento del historial de cartera.
type CarteraMovimientoResponse struct {
	ID          string          `json:"id"`
	CarteraID   string          `json:"cartera_id"`
	Tipo        string          `json:"tipo"`
	Monto       decimal.Decimal `json:"monto"`
	UsuarioID   *string         `json:"usuario_id,omitempty"`
	Observacion string          `json:"observacion,omitempty"`
	Fecha       time.Time       `json:"fecha"`
}

// AbonoResultResponse resultado de un abono: saldos afectados tras la distribución.
type AbonoResultResponse struct {
	MontoAplicado decimal.Decimal   `json:"monto_aplicado"`
	Afectadas     []CarteraResponse `json:"afectadas"`
}

// ListarCarteraMovimientosRequest filtros de GET /api/cartera/abonos y /creditos.
type ListarCarteraMovimientosRequest struct {
	PageRequest
	ClienteID string `query:"cliente_id" validate:"omitempty,uuid4"`
	Desde     string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta     string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
}
