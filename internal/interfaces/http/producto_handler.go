package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/application/inventario"
	"github.com/sicoil/backoffice/internal/domain/entity"
)

// ProductoHandler maneja productos y movimientos de stock (protegido).
type ProductoHandler struct {
	uc *inventario.UseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *inventario.UseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

func toLoteResponse(l *entity.Lote) dto.LoteResponse {
	return dto.LoteResponse{
		ID:               l.ID,
		Nombre:           l.Nombre,
		PrecioCompra:     l.PrecioCompra,
		CantidadPorCajas: l.CantidadPorCajas,
		Stock:            l.Stock,
		Comentario:       l.Comentario,
		FechaRegistro:    l.FechaRegistro,
	}
}

// Crear registra un producto nuevo con su primer lote.
func (h *ProductoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearProductoRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	usuarioID := GetUserID(c)
	lote, err := h.uc.CrearProducto(c.Context(), in, &usuarioID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLoteResponse(lote))
}

// Ingreso registra una compra de mercancía sobre un producto existente.
func (h *ProductoHandler) Ingreso(c *fiber.Ctx) error {
	var in dto.IngresoLoteRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	usuarioID := GetUserID(c)
	lote, err := h.uc.RegistrarIngresoLote(c.Context(), in, &usuarioID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLoteResponse(lote))
}

// EliminarCantidad descuenta unidades de un lote (merma, daño, ajuste).
func (h *ProductoHandler) EliminarCantidad(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.EliminarCantidadRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	usuarioID := GetUserID(c)
	if err := h.uc.EliminarCantidad(c.Context(), id, in, &usuarioID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ObtenerLote devuelve un lote por id.
func (h *ProductoHandler) ObtenerLote(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	lote, err := h.uc.ObtenerLote(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLoteResponse(lote))
}

// Listar devuelve los productos agrupados por nombre con sus lotes vigentes.
func (h *ProductoHandler) Listar(c *fiber.Ctx) error {
	nombre := c.Query("nombre")
	out, err := h.uc.ListarProductos(c.Context(), nombre)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
