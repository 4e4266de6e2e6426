package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/cartera"
	"github.com/sicoil/backoffice/internal/application/dto"
)

// CarteraHandler maneja cuentas por cobrar y abonos (protegido).
type CarteraHandler struct {
	uc *cartera.UseCase
}

// NewCarteraHandler construye el handler.
func NewCarteraHandler(uc *cartera.UseCase) *CarteraHandler {
	return &CarteraHandler{uc: uc}
}

// RegistrarAbono aplica un abono del cliente, deuda más antigua primero.
func (h *CarteraHandler) RegistrarAbono(c *fiber.Ctx) error {
	var in dto.RegistrarAbonoRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegistrarAbono(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarPendientes devuelve las deudas abiertas, filtrables por nombre de
// cliente.
func (h *CarteraHandler) ListarPendientes(c *fiber.Ctx) error {
	nombre := c.Query("cliente")
	out, err := h.uc.ListarPendientes(c.Context(), nombre)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListarAbonos devuelve el historial de abonos.
func (h *CarteraHandler) ListarAbonos(c *fiber.Ctx) error {
	var in dto.ListarCarteraMovimientosRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	in.DefaultPage()
	out, total, err := h.uc.ListarAbonos(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paged(out, in.Limit, in.Offset, total))
}

// ListarCreditos devuelve el historial de créditos abiertos.
func (h *CarteraHandler) ListarCreditos(c *fiber.Ctx) error {
	var in dto.ListarCarteraMovimientosRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	in.DefaultPage()
	out, total, err := h.uc.ListarCreditos(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paged(out, in.Limit, in.Offset, total))
}
