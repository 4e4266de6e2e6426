package venta

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/inventario"
	"github.com/sicoil/backoffice/internal/domain/repository"
	"github.com/sicoil/backoffice/pkg/logger"
)

// UseCase orquesta la creación y anulación de ventas. Una venta descuenta
// stock FIFO, deja rastro en kardex, registra el ingreso en capital y, si es
// a crédito, abre cartera; todo en una sola transacción. La anulación aplica
// las compensaciones inversas sin borrar nada.
type UseCase struct {
	txRunner    TxRunner
	ventaRepo   repository.VentaRepository
	loteRepo    repository.LoteRepository
	clienteRepo repository.ClienteRepository
	usuarioRepo repository.UsuarioRepository
	stock       StockMotor
	capital     CapitalLedger
	cartera     CarteraCuentas
	recibo      ReciboRenderer
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	ventaRepo repository.VentaRepository,
	loteRepo repository.LoteRepository,
	clienteRepo repository.ClienteRepository,
	usuarioRepo repository.UsuarioRepository,
	stock StockMotor,
	capital CapitalLedger,
	cartera CarteraCuentas,
	recibo ReciboRenderer,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		ventaRepo:   ventaRepo,
		loteRepo:    loteRepo,
		clienteRepo: clienteRepo,
		usuarioRepo: usuarioRepo,
		stock:       stock,
		capital:     capital,
		cartera:     cartera,
		recibo:      recibo,
		log:         log,
	}
}

// CrearVenta registra una venta. Cada línea se asigna a lotes por FIFO; una
// línea que cruza lotes se desdobla en varios detalles con el subtotal
// prorrateado por cantidad (el último detalle absorbe el residuo para que la
// suma cierre exacta). Cualquier faltante de stock aborta la venta completa.
func (uc *UseCase) CrearVenta(ctx context.Context, in dto.CrearVentaRequest, usuarioID string) (*dto.VentaResponse, error) {
	if usuarioID == "" {
		return nil, domain.ErrUsuarioRequerido
	}
	if in.ClienteID == "" || len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TipoVenta != entity.VentaContado && in.TipoVenta != entity.VentaCredito {
		return nil, domain.ErrInvalidInput
	}

	total := decimal.Zero
	for _, d := range in.Detalles {
		if d.NombreProducto == "" || d.Cantidad <= 0 || !d.Subtotal.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(d.Subtotal)
	}

	if _, err := uc.clienteRepo.GetByID(in.ClienteID); err != nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClienteID)
	}

	now := time.Now()
	venta := &entity.Venta{
		ID:            uuid.New().String(),
		ClienteID:     in.ClienteID,
		UsuarioID:     usuarioID,
		TipoVenta:     in.TipoVenta,
		Activa:        true,
		Total:         total,
		FechaRegistro: now,
	}

	var detalles []*entity.DetalleVenta
	productoPorLote := make(map[string]string)

	err := uc.txRunner.RunVenta(ctx, func(
		ventaRepo repository.VentaRepository,
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		capitalRepo repository.CapitalMovimientoRepository,
		carteraRepo repository.CarteraRepository,
		carteraMovRepo repository.CarteraMovimientoRepository,
	) error {
		if err := ventaRepo.Create(venta); err != nil {
			return err
		}

		for _, linea := range in.Detalles {
			lotes, err := loteRepo.ListByNombreForUpdate(linea.NombreProducto)
			if err != nil {
				return err
			}
			asignaciones, err := inventario.AsignarFIFO(lotes, linea.Cantidad)
			if err != nil {
				return fmt.Errorf("producto %q: %w", linea.NombreProducto, err)
			}

			asignado := decimal.Zero
			for i, asig := range asignaciones {
				var subtotal decimal.Decimal
				if i == len(asignaciones)-1 {
					subtotal = linea.Subtotal.Sub(asignado)
				} else {
					subtotal = linea.Subtotal.
						Mul(decimal.NewFromInt(int64(asig.Cantidad))).
						Div(decimal.NewFromInt(int64(linea.Cantidad))).
						Round(2)
					asignado = asignado.Add(subtotal)
				}

				if err := uc.stock.DescontarStockInTx(
					loteRepo, kardexRepo,
					asig.Lote.ID, asig.Cantidad,
					entity.MovimientoVenta,
					fmt.Sprintf("Venta %s", venta.ID),
					&usuarioID, now,
				); err != nil {
					return err
				}

				detalle := &entity.DetalleVenta{
					ID:       uuid.New().String(),
					VentaID:  venta.ID,
					LoteID:   asig.Lote.ID,
					Cantidad: asig.Cantidad,
					Subtotal: subtotal,
				}
				if err := ventaRepo.CreateDetalle(detalle); err != nil {
					return err
				}
				detalles = append(detalles, detalle)
				productoPorLote[asig.Lote.ID] = asig.Lote.Nombre
			}
		}

		if err := uc.capital.RegistrarVentaInTx(capitalRepo, venta, now); err != nil {
			return err
		}
		if venta.TipoVenta == entity.VentaCredito {
			if err := uc.cartera.RegistrarVentaEnCarteraInTx(carteraRepo, carteraMovRepo, venta, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("venta_id", venta.ID).
		Str("tipo", venta.TipoVenta).
		Str("total", venta.Total.String()).
		Int("detalles", len(detalles)).
		Msg("venta registrada")

	resp := uc.toResponse(venta, detalles, productoPorLote)
	return resp, nil
}

// AnularVenta anula una venta activa: devuelve el stock a sus lotes
// (DEVOLUCION), revierte el ingreso en capital y lleva a cero la cartera si
// la hubo. La venta queda inactiva con el motivo formateado; nada se borra.
func (uc *UseCase) AnularVenta(ctx context.Context, ventaID, razon, usuarioID string) error {
	if ventaID == "" {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(razon) == "" {
		return fmt.Errorf("%w: la razón de anulación no puede estar vacía", domain.ErrInvalidInput)
	}
	if usuarioID == "" {
		return domain.ErrUsuarioRequerido
	}

	nombreUsuario := usuarioID
	if u, err := uc.usuarioRepo.GetByID(usuarioID); err == nil {
		nombreUsuario = u.Usuario
	} else {
		uc.log.Warn().
			Str("usuario_id", usuarioID).
			Msg("no se pudo resolver el nombre del usuario que anula, se usa el id")
	}

	now := time.Now()
	motivo := fmt.Sprintf("La venta fue anulada el %s por el usuario %s por el siguiente motivo: %s",
		now.Format("02/01/2006 15:04"), nombreUsuario, strings.TrimSpace(razon))

	err := uc.txRunner.RunVenta(ctx, func(
		ventaRepo repository.VentaRepository,
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		capitalRepo repository.CapitalMovimientoRepository,
		carteraRepo repository.CarteraRepository,
		carteraMovRepo repository.CarteraMovimientoRepository,
	) error {
		venta, err := ventaRepo.GetByID(ventaID)
		if err != nil {
			return err
		}
		if !venta.Activa {
			return domain.ErrVentaAnulada
		}

		detalles, err := ventaRepo.GetDetallesByVentaID(ventaID)
		if err != nil {
			return err
		}
		for _, d := range detalles {
			if err := uc.stock.AumentarStockInTx(
				loteRepo, kardexRepo,
				d.LoteID, d.Cantidad,
				entity.MovimientoDevolucion,
				fmt.Sprintf("Devolución por anulación de venta %s", ventaID),
				&usuarioID, now,
			); err != nil {
				return err
			}
		}

		if err := ventaRepo.Anular(ventaID, motivo); err != nil {
			return err
		}
		if err := uc.capital.RevertirVentaInTx(capitalRepo, venta, &usuarioID, now); err != nil {
			return err
		}
		return uc.cartera.AjustarPorAnulacionInTx(carteraRepo, carteraMovRepo, ventaID, &usuarioID, motivo, now)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("venta_id", ventaID).
		Str("usuario", nombreUsuario).
		Msg("venta anulada")
	return nil
}

// ObtenerVenta devuelve una venta con sus detalles y nombres resueltos.
func (uc *UseCase) ObtenerVenta(_ context.Context, id string) (*dto.VentaResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	detalles, err := uc.ventaRepo.GetDetallesByVentaID(id)
	if err != nil {
		return nil, err
	}

	productoPorLote := make(map[string]string, len(detalles))
	for _, d := range detalles {
		if _, ok := productoPorLote[d.LoteID]; ok {
			continue
		}
		if lote, err := uc.loteRepo.GetByID(d.LoteID); err == nil {
			productoPorLote[d.LoteID] = lote.Nombre
		}
	}

	resp := uc.toResponse(venta, detalles, productoPorLote)
	if cliente, err := uc.clienteRepo.GetByID(venta.ClienteID); err == nil {
		resp.Cliente = cliente.Nombre
	}
	return resp, nil
}

// ListarVentas lista ventas con filtros y paginación. Sin IncluirAnuladas
// solo se devuelven las activas.
func (uc *UseCase) ListarVentas(_ context.Context, in dto.ListarVentasRequest) ([]dto.VentaResponse, int, error) {
	in.DefaultPage()
	desde, hasta, err := dto.RangoFechas(in.Desde, in.Hasta)
	if err != nil {
		return nil, 0, domain.ErrInvalidInput
	}
	filtro := repository.VentaFiltro{
		ClienteID: in.ClienteID,
		TipoVenta: in.TipoVenta,
		Desde:     desde,
		Hasta:     hasta,
	}
	if !in.IncluirAnuladas {
		activa := true
		filtro.Activa = &activa
	}
	ventas, total, err := uc.ventaRepo.List(filtro, in.Limit, in.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		resp := uc.toResponse(v, nil, nil)
		out = append(out, *resp)
	}
	return out, total, nil
}

// GenerarComprobante produce el comprobante PDF de la venta. Una venta
// anulada genera comprobante con la marca y el motivo de anulación.
func (uc *UseCase) GenerarComprobante(ctx context.Context, id string) ([]byte, error) {
	resp, err := uc.ObtenerVenta(ctx, id)
	if err != nil {
		return nil, err
	}

	vendedor := resp.UsuarioID
	if u, err := uc.usuarioRepo.GetByID(resp.UsuarioID); err == nil {
		vendedor = u.Usuario
	}

	data := ReciboData{
		VentaID:         resp.ID,
		Cliente:         resp.Cliente,
		Vendedor:        vendedor,
		TipoVenta:       resp.TipoVenta,
		Fecha:           resp.FechaRegistro,
		Activa:          resp.Activa,
		MotivoAnulacion: resp.MotivoAnulacion,
		Total:           resp.Total.StringFixed(2),
	}
	for _, d := range resp.Detalles {
		data.Lineas = append(data.Lineas, ReciboLinea{
			Producto: d.Producto,
			Cantidad: d.Cantidad,
			Subtotal: d.Subtotal.StringFixed(2),
		})
	}
	return uc.recibo.RenderComprobante(data)
}

func (uc *UseCase) toResponse(v *entity.Venta, detalles []*entity.DetalleVenta, productoPorLote map[string]string) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:              v.ID,
		ClienteID:       v.ClienteID,
		UsuarioID:       v.UsuarioID,
		TipoVenta:       v.TipoVenta,
		Activa:          v.Activa,
		MotivoAnulacion: v.MotivoAnulacion,
		Total:           v.Total,
		FechaRegistro:   v.FechaRegistro,
	}
	for _, d := range detalles {
		resp.Detalles = append(resp.Detalles, dto.DetalleVentaResponse{
			ID:       d.ID,
			LoteID:   d.LoteID,
			Producto: productoPorLote[d.LoteID],
			Cantidad: d.Cantidad,
			Subtotal: d.Subtotal,
		})
	}
	return resp
}
