package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/capital"
	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/domain/entity"
)

// CapitalHandler maneja el libro de capital (protegido; escrituras solo admin).
type CapitalHandler struct {
	uc *capital.UseCase
}

// NewCapitalHandler construye el handler.
func NewCapitalHandler(uc *capital.UseCase) *CapitalHandler {
	return &CapitalHandler{uc: uc}
}

func toCapitalResponse(m *entity.CapitalMovimiento) dto.CapitalMovimientoResponse {
	return dto.CapitalMovimientoResponse{
		ID:           m.ID,
		Origen:       m.Origen,
		ReferenciaID: m.ReferenciaID,
		Monto:        m.Monto,
		EsCredito:    m.EsCredito,
		Descripcion:  m.Descripcion,
		UsuarioID:    m.UsuarioID,
		CreadoEn:     m.CreadoEn,
	}
}

// RegistrarInyeccion registra un aporte de capital.
func (h *CapitalHandler) RegistrarInyeccion(c *fiber.Ctx) error {
	var in dto.InyeccionCapitalRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	mov, err := h.uc.RegistrarInyeccion(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCapitalResponse(mov))
}

// RegistrarRetiro registra un retiro de ganancias contra el saldo disponible.
func (h *CapitalHandler) RegistrarRetiro(c *fiber.Ctx) error {
	var in dto.RetiroGananciaRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	mov, err := h.uc.RegistrarRetiro(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCapitalResponse(mov))
}

// ListarMovimientos devuelve el libro con filtros y paginación.
func (h *CapitalHandler) ListarMovimientos(c *fiber.Ctx) error {
	var in dto.ListarCapitalRequest
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

// Resumen devuelve el tablero financiero del período.
func (h *CapitalHandler) Resumen(c *fiber.Ctx) error {
	var in dto.ResumenCapitalRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ObtenerResumen(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
