package http

import (
	"errors"
	"mime/multipart"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// maxImageSize tamaño máximo permitido para la imagen del producto (5 MB).
const maxImageSize = 5 << 20

// allowedImageExts extensiones aceptadas para la imagen del producto.
var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// ProductHandler endpoints CRUD de productos. Create y Update reciben
// multipart/form-data porque el formulario incluye la imagen.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos con categoría y proveedor materializados
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Consultar un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// FormData godoc
// @Summary      Categorías y proveedores disponibles para el formulario de producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FormDataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/form-data [get]
func (h *ProductHandler) FormData(c *fiber.Ctx) error {
	out, err := h.uc.FormData(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Sin categorías o sin proveedores no se puede crear ningún producto.
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay categorías o proveedores registrados"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  dto.ProductResponse
// @Failure      422  {object}  dto.ValidationErrors
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, v := parseProductForm(c)
	if v.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
	}
	out, err := h.uc.Create(c.Context(), *in)
	if err != nil {
		if productRefError(v, err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar producto (reemplazo completo, imagen opcional)
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "id del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrors
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	in, v := parseProductForm(c)
	if v.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), *in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if productRefError(v, err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(v)
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto junto con su imagen
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "id del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductForm valida el formulario multipart y construye el ProductInput.
// La imagen queda abierta en el FileUpload; el use case la consume.
func parseProductForm(c *fiber.Ctx) (*dto.ProductInput, *dto.ValidationErrors) {
	v := dto.NewValidationErrors()
	in := &dto.ProductInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		CategorieID: c.FormValue("categorie_id"),
		SupplierID:  c.FormValue("supplier_id"),
	}
	if in.Name == "" {
		v.Add("name", "name is required")
	}
	if in.CategorieID == "" {
		v.Add("categorie_id", "categorie_id is required")
	}
	if in.SupplierID == "" {
		v.Add("supplier_id", "supplier_id is required")
	}

	if raw := c.FormValue("quantity"); raw == "" {
		v.Add("quantity", "quantity is required")
	} else if qty, err := strconv.Atoi(raw); err != nil || qty < 0 {
		v.Add("quantity", "quantity must be an integer greater than or equal to 0")
	} else {
		in.Quantity = qty
	}

	in.BuyPrice = parsePrice(c.FormValue("buy_price"), "buy_price", v)
	in.SalePrice = parsePrice(c.FormValue("sale_price"), "sale_price", v)

	if raw := c.FormValue("date"); raw == "" {
		v.Add("date", "date is required")
	} else if d, err := time.Parse("2006-01-02", raw); err != nil {
		v.Add("date", "date must match the format Y-m-d")
	} else {
		in.Date = d
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		in.Image = openImage(fh, v)
	}
	return in, v
}

// parsePrice valida un precio decimal no negativo.
func parsePrice(raw, field string, v *dto.ValidationErrors) decimal.Decimal {
	if raw == "" {
		v.Add(field, field+" is required")
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		v.Add(field, field+" must be a number greater than or equal to 0")
		return decimal.Zero
	}
	return d
}

// openImage aplica las reglas de la imagen (extensión y tamaño) y la abre.
func openImage(fh *multipart.FileHeader, v *dto.ValidationErrors) *dto.FileUpload {
	ext := strings.ToLower(path.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		v.Add("image", "image must be a file of type: jpeg, png, jpg, gif")
		return nil
	}
	if fh.Size > maxImageSize {
		v.Add("image", "image may not be greater than 5120 kilobytes")
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		v.Add("image", "image could not be read")
		return nil
	}
	return &dto.FileUpload{Name: fh.Filename, Size: fh.Size, Reader: f}
}

// productRefError traduce referencias inexistentes a errores de campo.
func productRefError(v *dto.ValidationErrors, err error) bool {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		v.Add("categorie_id", "the selected categorie_id is invalid")
	case errors.Is(err, domain.ErrSupplierNotFound):
		v.Add("supplier_id", "the selected supplier_id is invalid")
	default:
		return false
	}
	return true
}
