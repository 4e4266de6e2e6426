package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas agregadas de lectura para el resumen de capital.
// Todas las agregaciones sobre ventas excluyen las anuladas.
type ReporteRepo struct {
	q Querier
}

// NewReporteRepository construye el adaptador de reportes.
func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// rangoVentas arma la condición de rango sobre la fecha de la venta.
func rangoVentas(args []any, desde, hasta *time.Time) (string, []any) {
	cond := ``
	if desde != nil {
		args = append(args, *desde)
		cond += fmt.Sprintf(` AND v.fecha_registro >= $%d`, len(args))
	}
	if hasta != nil {
		args = append(args, *hasta)
		cond += fmt.Sprintf(` AND v.fecha_registro <= $%d`, len(args))
	}
	return cond, args
}

// TopProductos devuelve los nombres de producto con más unidades vendidas en
// el rango. Los detalles se agrupan por nombre porque un producto puede estar
// repartido en varios lotes.
func (r *ReporteRepo) TopProductos(ctx context.Context, desde, hasta *time.Time, limit int) ([]repository.TopProductoResult, error) {
	args := []any{}
	cond, args := rangoVentas(args, desde, hasta)
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT l.nombre, SUM(d.cantidad) AS unidades, SUM(d.subtotal) AS total
		FROM detalle_ventas d
		JOIN ventas v ON v.id = d.venta_id
		JOIN lotes l ON l.id = d.lote_id
		WHERE v.activa = true%s
		GROUP BY l.nombre
		ORDER BY unidades DESC
		LIMIT $%d`, cond, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top productos: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductoResult
	for rows.Next() {
		var t repository.TopProductoResult
		if err := rows.Scan(&t.Nombre, &t.CantidadVendida, &t.TotalVendido); err != nil {
			return nil, fmt.Errorf("scan top producto: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TopClientes devuelve los clientes con mayor monto comprado en el rango.
func (r *ReporteRepo) TopClientes(ctx context.Context, desde, hasta *time.Time, limit int) ([]repository.TopClienteResult, error) {
	args := []any{}
	cond, args := rangoVentas(args, desde, hasta)
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT c.id, c.nombre, COUNT(v.id) AS ventas, SUM(v.total) AS monto
		FROM ventas v
		JOIN clientes c ON c.id = v.cliente_id
		WHERE v.activa = true%s
		GROUP BY c.id, c.nombre
		ORDER BY monto DESC
		LIMIT $%d`, cond, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top clientes: %w", err)
	}
	defer rows.Close()

	var out []repository.TopClienteResult
	for rows.Next() {
		var t repository.TopClienteResult
		if err := rows.Scan(&t.ClienteID, &t.ClienteNombre, &t.TotalVentas, &t.MontoComprado); err != nil {
			return nil, fmt.Errorf("scan top cliente: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SumUnidadesVendidas suma las cantidades de los detalles de ventas activas.
func (r *ReporteRepo) SumUnidadesVendidas(ctx context.Context, desde, hasta *time.Time) (int64, error) {
	args := []any{}
	cond, args := rangoVentas(args, desde, hasta)
	query := `
		SELECT COALESCE(SUM(d.cantidad), 0)
		FROM detalle_ventas d
		JOIN ventas v ON v.id = d.venta_id
		WHERE v.activa = true` + cond

	var total int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum unidades vendidas: %w", err)
	}
	return total, nil
}

// SumTotalVentas suma los totales de las ventas activas del rango.
func (r *ReporteRepo) SumTotalVentas(ctx context.Context, desde, hasta *time.Time) (decimal.Decimal, error) {
	args := []any{}
	cond, args := rangoVentas(args, desde, hasta)
	query := `SELECT COALESCE(SUM(v.total), 0) FROM ventas v WHERE v.activa = true` + cond

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum total ventas: %w", err)
	}
	return total, nil
}

// SumValorInventario valora el inventario actual a precio de compra.
func (r *ReporteRepo) SumValorInventario(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(stock * precio_compra), 0) FROM lotes WHERE stock > 0`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum valor inventario: %w", err)
	}
	return total, nil
}

// VentasMensuales agrupa el total vendido por mes desde la fecha dada.
func (r *ReporteRepo) VentasMensuales(ctx context.Context, desde time.Time) ([]repository.VentaMensualResult, error) {
	query := `
		SELECT EXTRACT(YEAR FROM v.fecha_registro)::int AS anio,
		       EXTRACT(MONTH FROM v.fecha_registro)::int AS mes,
		       SUM(v.total) AS total
		FROM ventas v
		WHERE v.activa = true AND v.fecha_registro >= $1
		GROUP BY anio, mes
		ORDER BY anio ASC, mes ASC`

	rows, err := r.q.Query(ctx, query, desde)
	if err != nil {
		return nil, fmt.Errorf("ventas mensuales: %w", err)
	}
	defer rows.Close()

	var out []repository.VentaMensualResult
	for rows.Next() {
		var m repository.VentaMensualResult
		if err := rows.Scan(&m.Anio, &m.Mes, &m.Total); err != nil {
			return nil, fmt.Errorf("scan venta mensual: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
