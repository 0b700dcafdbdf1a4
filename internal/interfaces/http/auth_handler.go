package http

import (
	"errors"
	"net/mail"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// AuthHandler maneja login, logout, dashboard y perfil propio.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrors
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v := dto.NewValidationErrors()
	if in.Email == "" {
		v.Add("email", "email is required")
	} else if !validEmail(in.Email) {
		v.Add("email", "email must be a valid email address")
	}
	if in.Password == "" {
		v.Add("password", "password is required")
	}
	if v.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "Invalid credentials"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (revoca todos los tokens del usuario)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), GetUserID(c)); err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Logout successful"})
}

// Dashboard godoc
// @Summary      Saludo según el rol del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /dashboard [get]
func (h *AuthHandler) Dashboard(c *fiber.Ctx) error {
	switch GetRole(c) {
	case entity.RoleAdmin:
		return c.JSON(dto.MessageResponse{Message: "Welcome, Admin!"})
	case entity.RoleManager:
		return c.JSON(dto.MessageResponse{Message: "Welcome, Manager!"})
	default:
		return c.JSON(dto.MessageResponse{Message: "Welcome, User!"})
	}
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /user/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Editar el propio perfil (email único excluyendo la propia fila)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "name, email, password opcional"
// @Success      200   {object}  dto.UserResponse
// @Failure      422   {object}  dto.ValidationErrors
// @Router       /user/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v := dto.NewValidationErrors()
	if in.Name == "" {
		v.Add("name", "name is required")
	}
	if in.Email == "" {
		v.Add("email", "email is required")
	} else if !validEmail(in.Email) {
		v.Add("email", "email must be a valid email address")
	}
	if in.Password != "" && len(in.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	if v.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
	}
	out, err := h.uc.UpdateProfile(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			v.Add("email", "email has already been taken")
			return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// validEmail valida el formato con net/mail.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// internalError respuesta 500 genérica sin filtrar detalles del fallo.
func internalError(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
