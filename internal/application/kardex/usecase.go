package kardex

import (
	"context"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

// UseCase consultas de solo lectura sobre el kardex. Las escrituras las hacen
// los flujos de inventario y venta; aquí no hay Create.
type UseCase struct {
	kardexRepo repository.KardexRepository
	loteRepo   repository.LoteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(kardexRepo repository.KardexRepository, loteRepo repository.LoteRepository) *UseCase {
	return &UseCase{kardexRepo: kardexRepo, loteRepo: loteRepo}
}

// ObtenerMovimientos lista el kardex con filtros y paginación, resolviendo el
// nombre del producto de cada lote.
func (uc *UseCase) ObtenerMovimientos(_ context.Context, in dto.ListarKardexRequest) ([]dto.KardexResponse, int, error) {
	in.DefaultPage()
	desde, hasta, err := dto.RangoFechas(in.Desde, in.Hasta)
	if err != nil {
		return nil, 0, domain.ErrInvalidInput
	}
	filtro := repository.KardexFiltro{
		LoteID:         in.LoteID,
		UsuarioID:      in.UsuarioID,
		NombreProducto: in.NombreProducto,
		Tipo:           in.Tipo,
		Desde:          desde,
		Hasta:          hasta,
	}
	movs, total, err := uc.kardexRepo.List(filtro, in.Limit, in.Offset)
	if err != nil {
		return nil, 0, err
	}

	nombres := make(map[string]string)
	out := make([]dto.KardexResponse, 0, len(movs))
	for _, m := range movs {
		if _, ok := nombres[m.LoteID]; !ok {
			if lote, err := uc.loteRepo.GetByID(m.LoteID); err == nil {
				nombres[m.LoteID] = lote.Nombre
			}
		}
		out = append(out, dto.KardexResponse{
			ID:            m.ID,
			LoteID:        m.LoteID,
			Producto:      nombres[m.LoteID],
			UsuarioID:     m.UsuarioID,
			Cantidad:      m.Cantidad,
			Tipo:          m.Tipo,
			Comentario:    m.Comentario,
			FechaRegistro: m.FechaRegistro,
		})
	}
	return out, total, nil
}

// ObtenerPorLote devuelve el historial completo de un lote.
func (uc *UseCase) ObtenerPorLote(_ context.Context, loteID string) ([]dto.KardexResponse, error) {
	if loteID == "" {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.kardexRepo.ListByLote(loteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.KardexResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.KardexResponse{
			ID:            m.ID,
			LoteID:        m.LoteID,
			UsuarioID:     m.UsuarioID,
			Cantidad:      m.Cantidad,
			Tipo:          m.Tipo,
			Comentario:    m.Comentario,
			FechaRegistro: m.FechaRegistro,
		})
	}
	return out, nil
}
