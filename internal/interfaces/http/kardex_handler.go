package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/application/kardex"
)

// KardexHandler maneja la consulta del historial de inventario (protegido).
type KardexHandler struct {
	uc *kardex.UseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *kardex.UseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// Listar devuelve los movimientos del kardex con filtros y paginación.
func (h *KardexHandler) Listar(c *fiber.Ctx) error {
	var in dto.ListarKardexRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	in.DefaultPage()
	out, total, err := h.uc.ObtenerMovimientos(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paged(out, in.Limit, in.Offset, total))
}

// PorLote devuelve el historial completo de un lote.
func (h *KardexHandler) PorLote(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ObtenerPorLote(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
