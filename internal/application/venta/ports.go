package venta

import (
	"context"
	"time"

	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de venta, inventario, capital y cartera. Una venta toca los cuatro
// libros o ninguno.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(
		ventaRepo repository.VentaRepository,
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		capitalRepo repository.CapitalMovimientoRepository,
		carteraRepo repository.CarteraRepository,
		carteraMovRepo repository.CarteraMovimientoRepository,
	) error) error
}

// StockMotor interfaz para integrar la venta con el motor de inventario.
// Los métodos escriben con los repositorios del caller (misma transacción);
// si retornan error (ej: ErrStockInsuficiente) el caller debe hacer rollback.
type StockMotor interface {
	DescontarStockInTx(
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		loteID string,
		cantidad int,
		tipo string,
		comentario string,
		usuarioID *string,
		now time.Time,
	) error
	AumentarStockInTx(
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		loteID string,
		cantidad int,
		tipo string,
		comentario string,
		usuarioID *string,
		now time.Time,
	) error
}

// CapitalLedger interfaz para registrar y revertir el ingreso de la venta en
// el libro de capital (misma transacción del caller).
type CapitalLedger interface {
	RegistrarVentaInTx(
		capitalRepo repository.CapitalMovimientoRepository,
		venta *entity.Venta,
		now time.Time,
	) error
	RevertirVentaInTx(
		capitalRepo repository.CapitalMovimientoRepository,
		venta *entity.Venta,
		usuarioID *string,
		now time.Time,
	) error
}

// CarteraCuentas interfaz para abrir y ajustar la cartera de ventas a crédito
// (misma transacción del caller).
type CarteraCuentas interface {
	RegistrarVentaEnCarteraInTx(
		carteraRepo repository.CarteraRepository,
		carteraMovRepo repository.CarteraMovimientoRepository,
		venta *entity.Venta,
		now time.Time,
	) error
	AjustarPorAnulacionInTx(
		carteraRepo repository.CarteraRepository,
		carteraMovRepo repository.CarteraMovimientoRepository,
		ventaID string,
		usuarioID *string,
		observacion string,
		now time.Time,
	) error
}

// ReciboRenderer genera el comprobante de una venta.
type ReciboRenderer interface {
	RenderComprobante(data ReciboData) ([]byte, error)
}

// ReciboData datos planos para el comprobante.
type ReciboData struct {
	VentaID         string
	Cliente         string
	Vendedor        string
	TipoVenta       string
	Fecha           time.Time
	Activa          bool
	MotivoAnulacion *string
	Total           string
	Lineas          []ReciboLinea
}

// ReciboLinea línea del comprobante.
type ReciboLinea struct {
	Producto string
	Cantidad int
	Subtotal string
}
