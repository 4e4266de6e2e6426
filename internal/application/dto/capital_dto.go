package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InyeccionCapitalRequest body para POST /api/capital/inyecciones.
type InyeccionCapitalRequest struct {
	Monto       decimal.Decimal `json:"monto" validate:"required"`
	Descripcion string          `json:"descripcion,omitempty" validate:"omitempty,max=500"`
}

// RetiroGananciaRequest body para POST /api/capital/retiros.
type RetiroGananciaRequest struct {
	Monto       decimal.Decimal `json:"monto" validate:"required"`
	Descripcion string          `json:"descripcion,omitempty" validate:"omitempty,max=500"`
}

// CapitalMovimientoResponse movimiento del libro de capital.
type CapitalMovimientoResponse struct {
	ID           string          `json:"id"`
	Origen       string          `json:"origen"`
	ReferenciaID *string         `json:"referencia_id,omitempty"`
	Monto        decimal.Decimal `json:"monto"`
	EsCredito    bool            `json:"es_credito"`
	Descripcion  string          `json:"descripcion,omitempty"`
	UsuarioID    *string         `json:"usuario_id,omitempty"`
	CreadoEn     time.Time       `json:"creado_en"`
}

// ListarCapitalRequest filtros de GET /api/capital/movimientos.
type ListarCapitalRequest struct {
	PageRequest
	Origen string `query:"origen" validate:"omitempty,oneof=COMPRA VENTA INYECCION RETIRO_GANANCIA ABONO"`
	Desde  string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta  string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

// TopProductoDTO producto más vendido en el período.
type TopProductoDTO struct {
	Nombre   string          `json:"nombre"`
	Unidades int             `json:"unidades"`
	Total    decimal.Decimal `json:"total"`
}

// TopClienteDTO cliente con mayor volumen de compra en el período.
type TopClienteDTO struct {
	ClienteID string          `json:"cliente_id"`
	Nombre    string          `json:"nombre"`
	Total     decimal.Decimal `json:"total"`
}

// VentaMensualDTO total vendido por mes (YYYY-MM).
type VentaMensualDTO struct {
	Mes   string          `json:"mes"`
	Total decimal.Decimal `json:"total"`
}

// ResumenCapitalResponse respuesta de GET /api/capital/resumen.
// SaldoReal es la suma firmada del libro (caja líquida); CreditoPendiente la
// vista del libro sobre el crédito aún no recaudado y SaldoCartera la suma de
// los saldos abiertos en cartera. Las dos últimas deben coincidir salvo
// anulaciones de ventas a crédito con abonos previos.
type ResumenCapitalResponse struct {
	SaldoReal        decimal.Decimal   `json:"saldo_real"`
	Entradas         decimal.Decimal   `json:"entradas"`
	Compras          decimal.Decimal   `json:"compras"`
	CreditoPendiente decimal.Decimal   `json:"credito_pendiente"`
	SaldoCartera     decimal.Decimal   `json:"saldo_cartera"`
	TotalAbonos      decimal.Decimal   `json:"total_abonos"`
	TotalCreditos    decimal.Decimal   `json:"total_creditos"`
	ValorInventario  decimal.Decimal   `json:"valor_inventario"`
	TotalVentas      decimal.Decimal   `json:"total_ventas"`
	UnidadesVendidas int               `json:"unidades_vendidas"`
	TopProductos     []TopProductoDTO  `json:"top_productos"`
	TopClientes      []TopClienteDTO   `json:"top_clientes"`
	VentasMensuales  []VentaMensualDTO `json:"ventas_mensuales"`
}

// ResumenCapitalRequest filtros de GET /api/capital/resumen.
type ResumenCapitalRequest struct {
	Desde string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
}
