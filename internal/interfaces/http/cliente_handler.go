package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/cliente"
	"github.com/sicoil/backoffice/internal/application/dto"
)

// ClienteHandler maneja clientes (protegido).
type ClienteHandler struct {
	uc *cliente.UseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *cliente.UseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Crear registra un cliente.
func (h *ClienteHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearClienteRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Actualizar modifica los datos de contacto del cliente.
func (h *ClienteHandler) Actualizar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ActualizarClienteRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Actualizar(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Obtener devuelve un cliente por id.
func (h *ClienteHandler) Obtener(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Obtener(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Listar devuelve los clientes con filtro por nombre y paginación.
func (h *ClienteHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return err
	}
	page.DefaultPage()
	nombre := c.Query("nombre")
	out, total, err := h.uc.Listar(c.Context(), nombre, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paged(out, page.Limit, page.Offset, total))
}
