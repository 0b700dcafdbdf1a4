package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// SupplierHandler endpoints CRUD de proveedores.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler de proveedores.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      422   {object}  dto.ValidationErrors
// @Router       /suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	in, verrs, err := h.parseBody(c)
	if err != nil {
		return err
	}
	if verrs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(verrs)
	}
	out, err := h.uc.Create(c.Context(), *in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			v := dto.NewValidationErrors()
			v.Add("email", "email has already been taken")
			return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del proveedor"
// @Param        body  body  dto.SupplierRequest  true  "datos del proveedor"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	in, verrs, err := h.parseBody(c)
	if err != nil {
		return err
	}
	if verrs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(verrs)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), *in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
		}
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			v := dto.NewValidationErrors()
			v.Add("email", "email has already been taken")
			return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proveedor (rechazado si tiene productos asociados)
// @Tags         suppliers
// @Security     Bearer
// @Param        id  path  string  true  "id del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
		}
		if errors.Is(err, domain.ErrInUse) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_USE", Message: "el proveedor tiene productos asociados"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SupplierHandler) parseBody(c *fiber.Ctx) (*dto.SupplierRequest, *dto.ValidationErrors, error) {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
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
	if v.HasErrors() {
		return nil, v, nil
	}
	return &in, nil, nil
}
