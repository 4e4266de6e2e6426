package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/auth"
	"github.com/sicoil/backoffice/internal/application/dto"
)

// AuthHandler maneja login y registro de usuarios.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica y emite el token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Registrar crea un usuario nuevo (solo admin, vía RequireRole en el router).
func (h *AuthHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarUsuarioRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Registrar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
