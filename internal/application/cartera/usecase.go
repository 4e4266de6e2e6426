package cartera

import (
	"context"
	"errors"
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

// UseCase administra las cuentas por cobrar. Cada venta a crédito abre
// exactamente un saldo; los abonos se distribuyen entre las deudas del
// cliente empezando por la de última actualización más antigua.
type UseCase struct {
	txRunner       TxRunner
	carteraRepo    repository.CarteraRepository
	carteraMovRepo repository.CarteraMovimientoRepository
	clienteRepo    repository.ClienteRepository
	capital        CapitalLedger
	log            *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	carteraRepo repository.CarteraRepository,
	carteraMovRepo repository.CarteraMovimientoRepository,
	clienteRepo repository.ClienteRepository,
	capital CapitalLedger,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		carteraRepo:    carteraRepo,
		carteraMovRepo: carteraMovRepo,
		clienteRepo:    clienteRepo,
		capital:        capital,
		log:            log,
	}
}

// RegistrarVentaEnCarteraInTx abre el saldo de una venta a crédito en la
// transacción del caller. Idempotente: si la venta ya tiene cartera deja
// advertencia y no duplica.
func (uc *UseCase) RegistrarVentaEnCarteraInTx(
	carteraRepo repository.CarteraRepository,
	carteraMovRepo repository.CarteraMovimientoRepository,
	venta *entity.Venta,
	now time.Time,
) error {
	exists, err := carteraRepo.ExistsByVentaID(venta.ID)
	if err != nil {
		return err
	}
	if exists {
		uc.log.Warn().
			Str("venta_id", venta.ID).
			Msg("la venta ya tiene cartera abierta, se omite la apertura")
		return nil
	}
	cartera := &entity.Cartera{
		ID:                  uuid.New().String(),
		ClienteID:           venta.ClienteID,
		VentaID:             venta.ID,
		Saldo:               venta.Total,
		UltimaActualizacion: now,
	}
	if err := carteraRepo.Create(cartera); err != nil {
		return err
	}
	usuario := venta.UsuarioID
	mov := &entity.CarteraMovimiento{
		ID:        uuid.New().String(),
		CarteraID: cartera.ID,
		Tipo:      entity.CarteraMovCredito,
		Monto:     venta.Total,
		UsuarioID: &usuario,
		Fecha:     now,
	}
	return carteraMovRepo.Create(mov)
}

// AjustarPorAnulacionInTx lleva a cero el saldo de la venta anulada en la
// transacción del caller, con rastro AJUSTE. No toca capital: el reverso
// del ingreso lo hace el libro por su lado. Sin cartera (venta de contado)
// no hay nada que ajustar.
func (uc *UseCase) AjustarPorAnulacionInTx(
	carteraRepo repository.CarteraRepository,
	carteraMovRepo repository.CarteraMovimientoRepository,
	ventaID string,
	usuarioID *string,
	observacion string,
	now time.Time,
) error {
	cartera, err := carteraRepo.GetByVentaID(ventaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if !cartera.Saldo.GreaterThan(decimal.Zero) {
		return nil
	}
	if err := carteraRepo.UpdateSaldo(cartera.ID, decimal.Zero); err != nil {
		return err
	}
	mov := &entity.CarteraMovimiento{
		ID:          uuid.New().String(),
		CarteraID:   cartera.ID,
		Tipo:        entity.CarteraMovAjuste,
		Monto:       cartera.Saldo,
		UsuarioID:   usuarioID,
		Observacion: observacion,
		Fecha:       now,
	}
	return carteraMovRepo.Create(mov)
}

// RegistrarAbono aplica un pago del cliente sobre sus deudas pendientes,
// empezando por la de última actualización más antigua. Rechaza abonos que
// excedan la deuda total. Cada saldo afectado deja rastro ABONO y recaudo en
// el libro de capital, todo en una sola transacción.
func (uc *UseCase) RegistrarAbono(ctx context.Context, in dto.RegistrarAbonoRequest, usuarioID string) (*dto.AbonoResultResponse, error) {
	if usuarioID == "" {
		return nil, domain.ErrUsuarioRequerido
	}
	if in.ClienteID == "" || !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	resultado := &dto.AbonoResultResponse{MontoAplicado: in.Monto}

	err := uc.txRunner.RunCartera(ctx, func(
		carteraRepo repository.CarteraRepository,
		carteraMovRepo repository.CarteraMovimientoRepository,
		capitalRepo repository.CapitalMovimientoRepository,
	) error {
		pendientes, err := carteraRepo.ListPendientesByClienteForUpdate(in.ClienteID)
		if err != nil {
			return err
		}
		if len(pendientes) == 0 {
			return domain.ErrSinDeudasPendientes
		}

		deudaTotal := decimal.Zero
		for _, c := range pendientes {
			deudaTotal = deudaTotal.Add(c.Saldo)
		}
		if in.Monto.GreaterThan(deudaTotal) {
			return fmt.Errorf("%w: el abono (%s) excede la deuda pendiente (%s)",
				domain.ErrAbonoExcedeSaldo, in.Monto.String(), deudaTotal.String())
		}

		restante := in.Monto
		for _, c := range pendientes {
			if !restante.GreaterThan(decimal.Zero) {
				break
			}
			aplicado := decimal.Min(restante, c.Saldo)
			nuevoSaldo := c.Saldo.Sub(aplicado)
			if err := carteraRepo.UpdateSaldo(c.ID, nuevoSaldo); err != nil {
				return err
			}
			mov := &entity.CarteraMovimiento{
				ID:          uuid.New().String(),
				CarteraID:   c.ID,
				Tipo:        entity.CarteraMovAbono,
				Monto:       aplicado,
				UsuarioID:   &usuarioID,
				Observacion: in.Observacion,
				Fecha:       now,
			}
			if err := carteraMovRepo.Create(mov); err != nil {
				return err
			}
			ref := c.VentaID
			if ref == "" {
				ref = c.ID
			}
			if err := uc.capital.RegistrarAbonoCarteraInTx(capitalRepo, ref, aplicado, &usuarioID, now); err != nil {
				return err
			}
			resultado.Afectadas = append(resultado.Afectadas, dto.CarteraResponse{
				ID:                  c.ID,
				ClienteID:           c.ClienteID,
				VentaID:             c.VentaID,
				Saldo:               nuevoSaldo,
				UltimaActualizacion: now,
			})
			restante = restante.Sub(aplicado)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("cliente_id", in.ClienteID).
		Str("monto", in.Monto.String()).
		Int("saldos_afectados", len(resultado.Afectadas)).
		Msg("abono de cartera aplicado")
	return resultado, nil
}

// ListarPendientes devuelve los saldos abiertos, con filtro opcional por
// nombre de cliente, resolviendo el nombre y el rastro de movimientos de cada
// saldo para la respuesta.
func (uc *UseCase) ListarPendientes(_ context.Context, nombreCliente string) ([]dto.CarteraResponse, error) {
	pendientes, err := uc.carteraRepo.ListPendientes(nombreCliente)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(pendientes))
	for _, c := range pendientes {
		ids = append(ids, c.ID)
	}
	historial := make(map[string][]dto.CarteraMovimientoResponse)
	if len(ids) > 0 {
		movs, err := uc.carteraMovRepo.ListByCarteraIDs(ids, nil, nil)
		if err != nil {
			return nil, err
		}
		for _, m := range movs {
			historial[m.CarteraID] = append(historial[m.CarteraID], dto.CarteraMovimientoResponse{
				ID:          m.ID,
				CarteraID:   m.CarteraID,
				Tipo:        m.Tipo,
				Monto:       m.Monto,
				UsuarioID:   m.UsuarioID,
				Observacion: m.Observacion,
				Fecha:       m.Fecha,
			})
		}
	}
	out := make([]dto.CarteraResponse, 0, len(pendientes))
	for _, c := range pendientes {
		resp := dto.CarteraResponse{
			ID:                  c.ID,
			ClienteID:           c.ClienteID,
			VentaID:             c.VentaID,
			Saldo:               c.Saldo,
			UltimaActualizacion: c.UltimaActualizacion,
			Movimientos:         historial[c.ID],
		}
		if cliente, err := uc.clienteRepo.GetByID(c.ClienteID); err == nil {
			resp.Cliente = cliente.Nombre
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListarAbonos devuelve el historial de abonos con filtros y paginación.
func (uc *UseCase) ListarAbonos(ctx context.Context, in dto.ListarCarteraMovimientosRequest) ([]dto.CarteraMovimientoResponse, int, error) {
	return uc.listarMovimientos(ctx, in, entity.CarteraMovAbono)
}

// ListarCreditos devuelve el historial de aperturas de crédito con filtros y
// paginación.
func (uc *UseCase) ListarCreditos(ctx context.Context, in dto.ListarCarteraMovimientosRequest) ([]dto.CarteraMovimientoResponse, int, error) {
	return uc.listarMovimientos(ctx, in, entity.CarteraMovCredito)
}

func (uc *UseCase) listarMovimientos(_ context.Context, in dto.ListarCarteraMovimientosRequest, tipo string) ([]dto.CarteraMovimientoResponse, int, error) {
	in.DefaultPage()
	desde, hasta, err := dto.RangoFechas(in.Desde, in.Hasta)
	if err != nil {
		return nil, 0, domain.ErrInvalidInput
	}
	movs, err := uc.carteraMovRepo.List(repository.CarteraMovimientoFiltro{
		ClienteID: in.ClienteID,
		Tipo:      tipo,
		Desde:     desde,
		Hasta:     hasta,
	})
	if err != nil {
		return nil, 0, err
	}
	total := len(movs)
	if in.Offset >= len(movs) {
		return nil, total, nil
	}
	movs = movs[in.Offset:]
	if in.Limit < len(movs) {
		movs = movs[:in.Limit]
	}
	out := make([]dto.CarteraMovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.CarteraMovimientoResponse{
			ID:          m.ID,
			CarteraID:   m.CarteraID,
			Tipo:        m.Tipo,
			Monto:       m.Monto,
			UsuarioID:   m.UsuarioID,
			Observacion: m.Observacion,
			Fecha:       m.Fecha,
		})
	}
	return out, total, nil
}
