package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/middleware"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/granitoskate/backoffice/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req := validation.Get[dto.LoginRequest](c)

	resp, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respond.Fail(c, fiber.StatusUnauthorized, "Credenciales inválidas")
		}
		return respond.Internal(c, "Error al iniciar sesión", err)
	}
	return respond.OK(c, "Inicio de sesión exitoso", resp)
}

// Register creates another admin account. Mounted behind AdminRequired.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req := validation.Get[dto.RegisterRequest](c)

	resp, err := h.authService.Register(c.UserContext(), req, audit.Actor(c))
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return respond.Fail(c, fiber.StatusBadRequest, "El email ya está registrado")
		}
		return respond.Internal(c, "Error al registrar administrador", err)
	}
	return respond.Created(c, "Administrador registrado correctamente", resp)
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	id, ok := middleware.AdminID(c)
	if !ok {
		return respond.Fail(c, fiber.StatusUnauthorized, "Token inválido o expirado")
	}

	resp, err := h.authService.Profile(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrAdminNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Administrador no encontrado")
		}
		return respond.Internal(c, "Error al verificar token", err)
	}
	return respond.OK(c, "Token válido", resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	id, ok := middleware.AdminID(c)
	if !ok {
		return respond.Fail(c, fiber.StatusUnauthorized, "Token inválido o expirado")
	}

	resp, err := h.authService.Refresh(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrAdminNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Administrador no encontrado")
		}
		return respond.Internal(c, "Error al renovar token", err)
	}
	return respond.OK(c, "Token renovado correctamente", resp)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	id, ok := middleware.AdminID(c)
	if !ok {
		return respond.Fail(c, fiber.StatusUnauthorized, "Token inválido o expirado")
	}
	req := validation.Get[dto.ChangePasswordRequest](c)

	if err := h.authService.ChangePassword(c.UserContext(), id, req); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			return respond.Fail(c, fiber.StatusBadRequest, "Contraseña actual incorrecta")
		case errors.Is(err, services.ErrAdminNotFound):
			return respond.Fail(c, fiber.StatusNotFound, "Administrador no encontrado")
		}
		return respond.Internal(c, "Error al cambiar contraseña", err)
	}
	return respond.OK(c, "Contraseña actualizada correctamente", nil)
}
