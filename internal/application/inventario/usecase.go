package inventario

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
	"github.com/sicoil/backoffice/pkg/logger"
)

// UseCase gestiona el catálogo de lotes y los movimientos de stock de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Cada ingreso de mercancía descuenta capital; cada movimiento deja rastro en
// el kardex.
type UseCase struct {
	txRunner TxRunner
	loteRepo repository.LoteRepository
	capital  CapitalLedger
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, loteRepo repository.LoteRepository, capital CapitalLedger, log *logger.Logger) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		loteRepo: loteRepo,
		capital:  capital,
		log:      log,
	}
}

// CrearProducto abre el primer lote de un producto nuevo. Si StockInicial > 0
// registra también la entrada en kardex y la salida de capital.
// Falla con ErrDuplicate si ya existe un producto con ese nombre.
func (uc *UseCase) CrearProducto(ctx context.Context, in dto.CrearProductoRequest, usuarioID *string) (*entity.Lote, error) {
	if in.Nombre == "" || !in.PrecioCompra.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.StockInicial < 0 {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.loteRepo.ExistsByNombre(in.Nombre)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe un producto con el nombre %q", domain.ErrDuplicate, in.Nombre)
	}

	now := time.Now()
	lote := &entity.Lote{
		ID:               uuid.New().String(),
		Nombre:           in.Nombre,
		PrecioCompra:     in.PrecioCompra,
		CantidadPorCajas: in.CantidadPorCajas,
		Stock:            in.StockInicial,
		Comentario:       in.Comentario,
		FechaRegistro:    now,
		ActualizadoEn:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		capitalRepo repository.CapitalMovimientoRepository,
	) error {
		if err := loteRepo.Create(lote); err != nil {
			return err
		}
		if in.StockInicial == 0 {
			return nil
		}
		mov := &entity.Kardex{
			ID:            uuid.New().String(),
			LoteID:        lote.ID,
			UsuarioID:     usuarioID,
			Cantidad:      in.StockInicial,
			Tipo:          entity.MovimientoEntrada,
			Comentario:    "Stock inicial del producto",
			FechaRegistro: now,
		}
		if err := kardexRepo.Create(mov); err != nil {
			return err
		}
		return uc.capital.RegistrarIngresoInventarioInTx(capitalRepo, lote, in.StockInicial, usuarioID, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("lote_id", lote.ID).
		Str("nombre", lote.Nombre).
		Int("stock_inicial", in.StockInicial).
		Msg("producto creado")
	return lote, nil
}

// RegistrarIngresoLote ingresa mercancía de un producto existente. Si hay un
// lote con el mismo nombre y precio de compra acumula stock sobre él; si el
// precio es nuevo abre otro lote (variante) que entra a la cola FIFO por su
// fecha de registro.
func (uc *UseCase) RegistrarIngresoLote(ctx context.Context, in dto.IngresoLoteRequest, usuarioID *string) (*entity.Lote, error) {
	if in.Nombre == "" || in.Cantidad <= 0 || !in.PrecioCompra.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.loteRepo.ExistsByNombre(in.Nombre)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: no existe un producto con el nombre %q", domain.ErrNotFound, in.Nombre)
	}

	now := time.Now()
	var resultado *entity.Lote

	err = uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		capitalRepo repository.CapitalMovimientoRepository,
	) error {
		existente, err := loteRepo.FindByNombreYPrecio(in.Nombre, in.PrecioCompra)
		if err != nil {
			return err
		}

		if existente != nil {
			// Mismo precio: se acumula sobre el lote vigente.
			bloqueado, err := loteRepo.GetForUpdate(existente.ID)
			if err != nil {
				return err
			}
			bloqueado.Stock += in.Cantidad
			if err := loteRepo.UpdateStock(bloqueado.ID, bloqueado.Stock); err != nil {
				return err
			}
			resultado = bloqueado
		} else {
			nuevo := &entity.Lote{
				ID:               uuid.New().String(),
				Nombre:           in.Nombre,
				PrecioCompra:     in.PrecioCompra,
				CantidadPorCajas: in.CantidadPorCajas,
				Stock:            in.Cantidad,
				Comentario:       in.Comentario,
				FechaRegistro:    now,
				ActualizadoEn:    now,
			}
			if err := loteRepo.Create(nuevo); err != nil {
				return err
			}
			resultado = nuevo
		}

		mov := &entity.Kardex{
			ID:            uuid.New().String(),
			LoteID:        resultado.ID,
			UsuarioID:     usuarioID,
			Cantidad:      in.Cantidad,
			Tipo:          entity.MovimientoEntrada,
			Comentario:    in.Comentario,
			FechaRegistro: now,
		}
		if err := kardexRepo.Create(mov); err != nil {
			return err
		}
		return uc.capital.RegistrarIngresoInventarioInTx(capitalRepo, resultado, in.Cantidad, usuarioID, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("lote_id", resultado.ID).
		Str("nombre", in.Nombre).
		Int("cantidad", in.Cantidad).
		Msg("ingreso de mercancía registrado")
	return resultado, nil
}

// EliminarCantidad descuenta stock de un lote por fuera de una venta (merma,
// ajuste administrativo). Deja rastro SALIDA en kardex; no toca capital.
func (uc *UseCase) EliminarCantidad(ctx context.Context, loteID string, in dto.EliminarCantidadRequest, usuarioID *string) error {
	if loteID == "" || in.Cantidad <= 0 {
		return domain.ErrInvalidInput
	}

	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		_ repository.CapitalMovimientoRepository,
	) error {
		return uc.DescontarStockInTx(loteRepo, kardexRepo, loteID, in.Cantidad, entity.MovimientoSalida, in.Comentario, usuarioID, time.Now())
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("lote_id", loteID).
		Int("cantidad", in.Cantidad).
		Msg("salida administrativa de stock registrada")
	return nil
}

// DescontarStockInTx descuenta stock de un lote usando los repositorios del
// caller (misma transacción). Bloquea la fila, verifica disponibilidad y deja
// el movimiento en kardex con el tipo indicado.
func (uc *UseCase) DescontarStockInTx(
	loteRepo repository.LoteRepository,
	kardexRepo repository.KardexRepository,
	loteID string,
	cantidad int,
	tipo string,
	comentario string,
	usuarioID *string,
	now time.Time,
) error {
	if cantidad <= 0 {
		return domain.ErrInvalidInput
	}
	lote, err := loteRepo.GetForUpdate(loteID)
	if err != nil {
		return err
	}
	if lote.Stock < cantidad {
		return fmt.Errorf("%w: el stock disponible (%d) es insuficiente para descontar la cantidad solicitada (%d)",
			domain.ErrStockInsuficiente, lote.Stock, cantidad)
	}
	if err := loteRepo.UpdateStock(loteID, lote.Stock-cantidad); err != nil {
		return err
	}
	mov := &entity.Kardex{
		ID:            uuid.New().String(),
		LoteID:        loteID,
		UsuarioID:     usuarioID,
		Cantidad:      cantidad,
		Tipo:          tipo,
		Comentario:    comentario,
		FechaRegistro: now,
	}
	return kardexRepo.Create(mov)
}

// AumentarStockInTx devuelve stock a un lote usando los repositorios del
// caller (misma transacción). Usado por la anulación de ventas (DEVOLUCION).
func (uc *UseCase) AumentarStockInTx(
	loteRepo repository.LoteRepository,
	kardexRepo repository.KardexRepository,
	loteID string,
	cantidad int,
	tipo string,
	comentario string,
	usuarioID *string,
	now time.Time,
) error {
	if cantidad <= 0 {
		return domain.ErrInvalidInput
	}
	lote, err := loteRepo.GetForUpdate(loteID)
	if err != nil {
		return err
	}
	if err := loteRepo.UpdateStock(loteID, lote.Stock+cantidad); err != nil {
		return err
	}
	mov := &entity.Kardex{
		ID:            uuid.New().String(),
		LoteID:        loteID,
		UsuarioID:     usuarioID,
		Cantidad:      cantidad,
		Tipo:          tipo,
		Comentario:    comentario,
		FechaRegistro: now,
	}
	return kardexRepo.Create(mov)
}

// ObtenerLote devuelve un lote por ID.
func (uc *UseCase) ObtenerLote(_ context.Context, id string) (*entity.Lote, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.loteRepo.GetByID(id)
}

// ListarProductos devuelve el catálogo agrupado por nombre: stock total y los
// lotes con existencias ordenados por antigüedad (el próximo a consumirse
// primero).
func (uc *UseCase) ListarProductos(_ context.Context, nombreFiltro string) ([]dto.ProductoAgrupadoResponse, error) {
	lotes, err := uc.loteRepo.List(nombreFiltro)
	if err != nil {
		return nil, err
	}

	grupos := make(map[string][]*entity.Lote)
	for _, l := range lotes {
		grupos[l.Nombre] = append(grupos[l.Nombre], l)
	}

	nombres := make([]string, 0, len(grupos))
	for n := range grupos {
		nombres = append(nombres, n)
	}
	sort.Strings(nombres)

	out := make([]dto.ProductoAgrupadoResponse, 0, len(nombres))
	for _, n := range nombres {
		ls := grupos[n]
		sort.Slice(ls, func(i, j int) bool { return ls[i].FechaRegistro.Before(ls[j].FechaRegistro) })

		resp := dto.ProductoAgrupadoResponse{Nombre: n}
		for _, l := range ls {
			resp.StockTotal += l.Stock
			if l.Stock == 0 {
				continue // los lotes agotados no se listan
			}
			resp.Lotes = append(resp.Lotes, dto.LoteResponse{
				ID:               l.ID,
				Nombre:           l.Nombre,
				PrecioCompra:     l.PrecioCompra,
				CantidadPorCajas: l.CantidadPorCajas,
				Stock:            l.Stock,
				Comentario:       l.Comentario,
				FechaRegistro:    l.FechaRegistro,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}
