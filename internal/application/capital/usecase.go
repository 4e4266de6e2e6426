package capital

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
	"github.com/sicoil/backoffice/pkg/logger"
)

// UseCase administra el libro de capital. El libro es append-only: toda
// corrección es un movimiento nuevo con el monto negado, nunca un update.
// Los métodos *InTx escriben con los repositorios del caller (su transacción);
// inyecciones y retiros abren transacción propia.
type UseCase struct {
	txRunner       TxRunner
	capitalRepo    repository.CapitalMovimientoRepository
	carteraRepo    repository.CarteraRepository
	carteraMovRepo repository.CarteraMovimientoRepository
	reporteRepo    repository.ReporteRepository
	log            *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	capitalRepo repository.CapitalMovimientoRepository,
	carteraRepo repository.CarteraRepository,
	carteraMovRepo repository.CarteraMovimientoRepository,
	reporteRepo repository.ReporteRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		capitalRepo:    capitalRepo,
		carteraRepo:    carteraRepo,
		carteraMovRepo: carteraMovRepo,
		reporteRepo:    reporteRepo,
		log:            log,
	}
}

// RegistrarIngresoInventarioInTx descuenta capital por una compra de
// mercancía (precio de compra × cantidad) en la transacción del caller.
// Un costo en cero no genera movimiento, solo advertencia: el ingreso de
// stock no se bloquea por un lote sin costo.
func (uc *UseCase) RegistrarIngresoInventarioInTx(
	capitalRepo repository.CapitalMovimientoRepository,
	lote *entity.Lote,
	cantidad int,
	usuarioID *string,
	now time.Time,
) error {
	costo := lote.PrecioCompra.Mul(decimal.NewFromInt(int64(cantidad)))
	if costo.IsZero() {
		uc.log.Warn().
			Str("lote_id", lote.ID).
			Str("nombre", lote.Nombre).
			Msg("ingreso de inventario con costo cero, no se registra movimiento de capital")
		return nil
	}
	if usuarioID == nil {
		uc.log.Warn().
			Str("lote_id", lote.ID).
			Msg("movimiento de capital sin usuario identificado")
	}
	ref := lote.ID
	mov := &entity.CapitalMovimiento{
		ID:           uuid.New().String(),
		Origen:       entity.CapitalOrigenCompra,
		ReferenciaID: &ref,
		Monto:        costo.Neg(),
		EsCredito:    false,
		Descripcion:  fmt.Sprintf("Compra de mercancía: %s x%d", lote.Nombre, cantidad),
		UsuarioID:    usuarioID,
		CreadoEn:     now,
	}
	return capitalRepo.Create(mov)
}

// RegistrarVentaInTx registra el ingreso de una venta en la transacción del
// caller. Las ventas a crédito entran con EsCredito=true: no afectan el saldo
// real hasta que la cartera recaude.
func (uc *UseCase) RegistrarVentaInTx(
	capitalRepo repository.CapitalMovimientoRepository,
	venta *entity.Venta,
	now time.Time,
) error {
	ref := venta.ID
	usuario := venta.UsuarioID
	mov := &entity.CapitalMovimiento{
		ID:           uuid.New().String(),
		Origen:       entity.CapitalOrigenVenta,
		ReferenciaID: &ref,
		Monto:        venta.Total,
		EsCredito:    venta.TipoVenta == entity.VentaCredito,
		Descripcion:  fmt.Sprintf("Venta %s", venta.TipoVenta),
		UsuarioID:    &usuario,
		CreadoEn:     now,
	}
	return capitalRepo.Create(mov)
}

// RevertirVentaInTx neutraliza el ingreso de una venta anulada: movimiento
// nuevo con el monto negado y la misma marca de crédito que el original.
// Idempotente por conteo: si la referencia ya tiene tantas reversas como
// registros no hace nada.
func (uc *UseCase) RevertirVentaInTx(
	capitalRepo repository.CapitalMovimientoRepository,
	venta *entity.Venta,
	usuarioID *string,
	now time.Time,
) error {
	movs, err := capitalRepo.ListByReferencia(venta.ID)
	if err != nil {
		return err
	}
	var original *entity.CapitalMovimiento
	reversas := 0
	for _, m := range movs {
		if m.Origen != entity.CapitalOrigenVenta {
			continue
		}
		if m.Monto.GreaterThan(decimal.Zero) {
			original = m
		} else {
			reversas++
		}
	}
	if original == nil {
		uc.log.Warn().
			Str("venta_id", venta.ID).
			Msg("anulación sin movimiento de capital original, no hay nada que revertir")
		return nil
	}
	if reversas > 0 {
		uc.log.Warn().
			Str("venta_id", venta.ID).
			Msg("la venta ya tiene reverso de capital registrado")
		return nil
	}
	mov := &entity.CapitalMovimiento{
		ID:           uuid.New().String(),
		Origen:       entity.CapitalOrigenVenta,
		ReferenciaID: original.ReferenciaID,
		Monto:        original.Monto.Neg(),
		EsCredito:    original.EsCredito,
		Descripcion:  fmt.Sprintf("Reverso por anulación de venta %s", venta.ID),
		UsuarioID:    usuarioID,
		CreadoEn:     now,
	}
	return capitalRepo.Create(mov)
}

// RegistrarAbonoCarteraInTx registra el recaudo de un abono dentro de la
// transacción del caller: una sola entrada real por el monto recaudado,
// referida a la venta que originó la deuda. El crédito aún no recaudado se
// lee de los saldos de cartera, no del libro.
func (uc *UseCase) RegistrarAbonoCarteraInTx(
	capitalRepo repository.CapitalMovimientoRepository,
	referenciaID string,
	monto decimal.Decimal,
	usuarioID *string,
	now time.Time,
) error {
	if !monto.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	ref := referenciaID
	entrada := &entity.CapitalMovimiento{
		ID:           uuid.New().String(),
		Origen:       entity.CapitalOrigenAbono,
		ReferenciaID: &ref,
		Monto:        monto,
		EsCredito:    false,
		Descripcion:  "Abono de cartera",
		UsuarioID:    usuarioID,
		CreadoEn:     now,
	}
	return capitalRepo.Create(entrada)
}

// RegistrarInyeccion registra un aporte de capital. Requiere usuario
// identificado.
func (uc *UseCase) RegistrarInyeccion(ctx context.Context, in dto.InyeccionCapitalRequest, usuarioID string) (*entity.CapitalMovimiento, error) {
	if usuarioID == "" {
		return nil, domain.ErrUsuarioRequerido
	}
	if !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.CapitalMovimiento{
		ID:          uuid.New().String(),
		Origen:      entity.CapitalOrigenInyeccion,
		Monto:       in.Monto,
		EsCredito:   false,
		Descripcion: in.Descripcion,
		UsuarioID:   &usuarioID,
		CreadoEn:    time.Now(),
	}
	err := uc.txRunner.RunCapital(ctx, func(capitalRepo repository.CapitalMovimientoRepository) error {
		return capitalRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("movimiento_id", mov.ID).
		Str("monto", in.Monto.String()).
		Msg("inyección de capital registrada")
	return mov, nil
}

// RegistrarRetiro registra un retiro de ganancias. Requiere usuario
// identificado y saldo real suficiente.
func (uc *UseCase) RegistrarRetiro(ctx context.Context, in dto.RetiroGananciaRequest, usuarioID string) (*entity.CapitalMovimiento, error) {
	if usuarioID == "" {
		return nil, domain.ErrUsuarioRequerido
	}
	if !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.CapitalMovimiento{
		ID:          uuid.New().String(),
		Origen:      entity.CapitalOrigenRetiroGanancia,
		Monto:       in.Monto.Neg(),
		EsCredito:   false,
		Descripcion: in.Descripcion,
		UsuarioID:   &usuarioID,
		CreadoEn:    time.Now(),
	}
	err := uc.txRunner.RunCapital(ctx, func(capitalRepo repository.CapitalMovimientoRepository) error {
		saldo, err := capitalRepo.SumSaldoReal(nil, nil)
		if err != nil {
			return err
		}
		if in.Monto.GreaterThan(saldo) {
			return fmt.Errorf("%w: el retiro (%s) excede el saldo disponible (%s)",
				domain.ErrConflict, in.Monto.String(), saldo.String())
		}
		return capitalRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("movimiento_id", mov.ID).
		Str("monto", in.Monto.String()).
		Msg("retiro de ganancias registrado")
	return mov, nil
}

// ObtenerMovimientos lista el libro de capital con filtros y paginación.
func (uc *UseCase) ObtenerMovimientos(_ context.Context, in dto.ListarCapitalRequest) ([]dto.CapitalMovimientoResponse, int, error) {
	in.DefaultPage()
	desde, hasta, err := dto.RangoFechas(in.Desde, in.Hasta)
	if err != nil {
		return nil, 0, domain.ErrInvalidInput
	}
	filtro := repository.CapitalFiltro{
		Origen: in.Origen,
		Desde:  desde,
		Hasta:  hasta,
	}
	movs, total, err := uc.capitalRepo.List(filtro, in.Limit, in.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.CapitalMovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.CapitalMovimientoResponse{
			ID:           m.ID,
			Origen:       m.Origen,
			ReferenciaID: m.ReferenciaID,
			Monto:        m.Monto,
			EsCredito:    m.EsCredito,
			Descripcion:  m.Descripcion,
			UsuarioID:    m.UsuarioID,
			CreadoEn:     m.CreadoEn,
		})
	}
	return out, total, nil
}

// ObtenerResumen arma el tablero financiero: sumas del libro, saldos de
// cartera y agregados de ventas del período.
func (uc *UseCase) ObtenerResumen(ctx context.Context, in dto.ResumenCapitalRequest) (*dto.ResumenCapitalResponse, error) {
	desde, hasta, err := dto.RangoFechas(in.Desde, in.Hasta)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	resumen := &dto.ResumenCapitalResponse{}

	if resumen.SaldoReal, err = uc.capitalRepo.SumSaldoReal(desde, hasta); err != nil {
		return nil, err
	}
	if resumen.Entradas, err = uc.capitalRepo.SumEntradas(desde, hasta); err != nil {
		return nil, err
	}
	if resumen.Compras, err = uc.capitalRepo.SumCompras(desde, hasta); err != nil {
		return nil, err
	}
	if resumen.CreditoPendiente, err = uc.capitalRepo.SumCreditoPendiente(desde, hasta); err != nil {
		return nil, err
	}
	if resumen.SaldoCartera, err = uc.carteraRepo.SumSaldosPendientes(); err != nil {
		return nil, err
	}
	if resumen.TotalAbonos, err = uc.carteraMovRepo.SumByTipo(entity.CarteraMovAbono, desde, hasta); err != nil {
		return nil, err
	}
	if resumen.TotalCreditos, err = uc.carteraMovRepo.SumByTipo(entity.CarteraMovCredito, desde, hasta); err != nil {
		return nil, err
	}
	if resumen.ValorInventario, err = uc.reporteRepo.SumValorInventario(ctx); err != nil {
		return nil, err
	}
	if resumen.TotalVentas, err = uc.reporteRepo.SumTotalVentas(ctx, desde, hasta); err != nil {
		return nil, err
	}

	unidades, err := uc.reporteRepo.SumUnidadesVendidas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	resumen.UnidadesVendidas = int(unidades)

	topProductos, err := uc.reporteRepo.TopProductos(ctx, desde, hasta, 5)
	if err != nil {
		return nil, err
	}
	for _, p := range topProductos {
		resumen.TopProductos = append(resumen.TopProductos, dto.TopProductoDTO{
			Nombre:   p.Nombre,
			Unidades: int(p.CantidadVendida),
			Total:    p.TotalVendido,
		})
	}

	topClientes, err := uc.reporteRepo.TopClientes(ctx, desde, hasta, 5)
	if err != nil {
		return nil, err
	}
	for _, c := range topClientes {
		resumen.TopClientes = append(resumen.TopClientes, dto.TopClienteDTO{
			ClienteID: c.ClienteID,
			Nombre:    c.ClienteNombre,
			Total:     c.MontoComprado,
		})
	}

	inicio := time.Now().AddDate(-1, 0, 0)
	if desde != nil {
		inicio = *desde
	}
	mensuales, err := uc.reporteRepo.VentasMensuales(ctx, inicio)
	if err != nil {
		return nil, err
	}
	for _, m := range mensuales {
		resumen.VentasMensuales = append(resumen.VentasMensuales, dto.VentaMensualDTO{
			Mes:   fmt.Sprintf("%04d-%02d", m.Anio, m.Mes),
			Total: m.Total,
		})
	}

	return resumen, nil
}
