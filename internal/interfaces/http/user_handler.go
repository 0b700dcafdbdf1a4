package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// UserHandler endpoints de administración de usuarios (solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      422   {object}  dto.ValidationErrors
// @Router       /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v := dto.NewValidationErrors()
	if in.Name == "" {
		v.Add("name", "name is required")
	}
	if in.Username == "" {
		v.Add("username", "username is required")
	}
	if in.Email == "" {
		v.Add("email", "email is required")
	} else if !validEmail(in.Email) {
		v.Add("email", "email must be a valid email address")
	}
	if in.Password == "" {
		v.Add("password", "password is required")
	} else if len(in.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	if in.Role == "" {
		v.Add("role", "role is required")
	} else if !entity.ValidRole(in.Role) {
		v.Add("role", "role must be one of: admin, manager, user")
	}
	if v.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if userConflict(v, err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar usuario (actualización parcial)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a modificar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrors
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v := dto.NewValidationErrors()
	if in.Name != nil && *in.Name == "" {
		v.Add("name", "name must not be empty")
	}
	if in.Username != nil && *in.Username == "" {
		v.Add("username", "username must not be empty")
	}
	if in.Email != nil && *in.Email != "" && !validEmail(*in.Email) {
		v.Add("email", "email must be a valid email address")
	}
	if in.Password != nil && *in.Password != "" && len(*in.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	if in.Role != nil && !entity.ValidRole(*in.Role) {
		v.Add("role", "role must be one of: admin, manager, user")
	}
	if v.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		if userConflict(v, err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "id del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// userConflict traduce las violaciones de unicidad a errores de campo.
func userConflict(v *dto.ValidationErrors, err error) bool {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		v.Add("username", "username has already been taken")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		v.Add("email", "email has already been taken")
	case errors.Is(err, domain.ErrInvalidInput):
		v.Add("role", "role must be one of: admin, manager, user")
	default:
		return false
	}
	return true
}
