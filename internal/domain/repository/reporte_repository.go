package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductoResult resultado crudo del top de productos por volumen vendido.
// Lo produce la DB; el use case lo convierte en DTO.
type TopProductoResult struct {
	Nombre          string
	CantidadVendida int64
	TotalVendido    decimal.Decimal
}

// TopClienteResult resultado crudo del top de clientes por monto comprado.
type TopClienteResult struct {
	ClienteID     string
	ClienteNombre string
	TotalVentas   int64
	MontoComprado decimal.Decimal
}

// VentaMensualResult total vendido en un mes (serie para el resumen).
type VentaMensualResult struct {
	Anio  int
	Mes   int
	Total decimal.Decimal
}

// ReporteRepository define las consultas de lectura agregadas del resumen de
// capital. Las implementaciones son read-only sobre ventas activas.
type ReporteRepository interface {
	// TopProductos devuelve los `limit` nombres de producto con más unidades
	// vendidas en el rango; los límites en nil no acotan.
	TopProductos(ctx context.Context, desde, hasta *time.Time, limit int) ([]TopProductoResult, error)
	// TopClientes devuelve los `limit` clientes con mayor monto comprado.
	TopClientes(ctx context.Context, desde, hasta *time.Time, limit int) ([]TopClienteResult, error)
	// SumUnidadesVendidas suma las cantidades de los detalles de ventas activas.
	SumUnidadesVendidas(ctx context.Context, desde, hasta *time.Time) (int64, error)
	// SumTotalVentas suma los totales de las ventas activas del rango.
	SumTotalVentas(ctx context.Context, desde, hasta *time.Time) (decimal.Decimal, error)
	// SumValorInventario valora el inventario actual (stock × precio de compra).
	SumValorInventario(ctx context.Context) (decimal.Decimal, error)
	// VentasMensuales agrupa el total vendido por mes desde la fecha dada.
	VentasMensuales(ctx context.Context, desde time.Time) ([]VentaMensualResult, error)
}
