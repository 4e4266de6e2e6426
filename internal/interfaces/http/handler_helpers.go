package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/domain"
)

var validate = validator.New()

// parseBody decodifica y valida el body JSON. Si falla escribe la respuesta
// 400 y devuelve el error para cortar el handler.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return nil
}

// parseQuery decodifica y valida los query params. Mismo contrato que parseBody.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return nil
}

// respondError traduce errores de dominio a estados HTTP.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCredencialesInvalidas),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrUsuarioRequerido):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrUsuarioYaExiste),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrVentaAnulada),
		errors.Is(err, domain.ErrStockInsuficiente),
		errors.Is(err, domain.ErrSinLoteParaVenta),
		errors.Is(err, domain.ErrAbonoExcedeSaldo),
		errors.Is(err, domain.ErrSinDeudasPendientes):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// listResponse envuelve un listado paginado.
type listResponse struct {
	Items any              `json:"items"`
	Page  dto.PageResponse `json:"page"`
}

func paged(items any, limit, offset, total int) listResponse {
	return listResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
}
