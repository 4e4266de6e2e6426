package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/application/venta"
)

// VentaHandler maneja ventas, anulaciones y comprobantes (protegido).
type VentaHandler struct {
	uc *venta.UseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *venta.UseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Crear registra una venta completa (stock, kardex, capital y cartera en una
// sola transacción).
func (h *VentaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearVentaRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CrearVenta(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Anular revierte una venta activa devolviendo stock y compensando los libros.
func (h *VentaHandler) Anular(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AnularVentaRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.AnularVenta(c.Context(), id, in.Razon, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Obtener devuelve una venta con sus detalles.
func (h *VentaHandler) Obtener(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ObtenerVenta(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Listar devuelve las ventas con filtros y paginación.
func (h *VentaHandler) Listar(c *fiber.Ctx) error {
	var in dto.ListarVentasRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	in.DefaultPage()
	out, total, err := h.uc.ListarVentas(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paged(out, in.Limit, in.Offset, total))
}

// Comprobante genera el PDF de la venta.
func (h *VentaHandler) Comprobante(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdf, err := h.uc.GenerarComprobante(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdf)
}
