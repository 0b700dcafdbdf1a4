package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos, incluida la imagen asociada.
// La escritura del archivo y la fila no son atómicas: un corte entre ambas puede
// dejar un archivo huérfano.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	images     ImageStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	images ImageStore,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, suppliers: suppliers, images: images}
}

// List devuelve todos los productos con categoría y proveedor materializados.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	details, err := uc.repo.ListDetailed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(details))
	for i := range details {
		out = append(out, *uc.toProductResponse(&details[i]))
	}
	return out, nil
}

// Get devuelve un producto con sus referencias, o ErrNotFound.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	detail, err := uc.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toProductResponse(detail), nil
}

// Create valida las FKs antes de cualquier mutación, guarda la imagen si viene
// y persiste la fila. Con FK que no resuelve no se escribe nada.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductInput) (*dto.ProductResponse, error) {
	if err := uc.checkRefs(ctx, in.CategorieID, in.SupplierID); err != nil {
		return nil, err
	}

	fileName := ""
	if in.Image != nil {
		name, err := uc.images.Save(ctx, in.Image.Name, in.Image.Reader)
		if err != nil {
			return nil, err
		}
		fileName = name
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Quantity:    in.Quantity,
		BuyPrice:    in.BuyPrice,
		SalePrice:   in.SalePrice,
		CategorieID: in.CategorieID,
		SupplierID:  in.SupplierID,
		Date:        in.Date,
		FileName:    fileName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		if fileName != "" {
			_ = uc.images.Delete(ctx, fileName)
		}
		return nil, err
	}

	detail, err := uc.repo.GetDetailByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(detail), nil
}

// Update reemplaza todos los campos del producto. Una imagen nueva sustituye a la
// anterior; el archivo viejo se borra después de confirmar la fila.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductInput) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkRefs(ctx, in.CategorieID, in.SupplierID); err != nil {
		return nil, err
	}

	oldFile := ""
	if in.Image != nil {
		name, err := uc.images.Save(ctx, in.Image.Name, in.Image.Reader)
		if err != nil {
			return nil, err
		}
		oldFile = product.FileName
		product.FileName = name
	}

	product.Name = in.Name
	product.Quantity = in.Quantity
	product.BuyPrice = in.BuyPrice
	product.SalePrice = in.SalePrice
	product.CategorieID = in.CategorieID
	product.SupplierID = in.SupplierID
	product.Date = in.Date
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if oldFile != "" {
		_ = uc.images.Delete(ctx, oldFile)
	}

	detail, err := uc.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(detail), nil
}

// Delete borra el archivo de imagen, si existe, y luego la fila.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.FileName != "" {
		if err := uc.images.Delete(ctx, product.FileName); err != nil {
			return err
		}
	}
	return uc.repo.Delete(ctx, id)
}

// FormData devuelve categorías y proveedores para el formulario de productos.
// Con cualquiera de las dos tablas vacías retorna ErrNotFound.
func (uc *ProductUseCase) FormData(ctx context.Context) (*dto.FormDataResponse, error) {
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 || len(suppliers) == 0 {
		return nil, domain.ErrNotFound
	}
	out := &dto.FormDataResponse{
		Categories: make([]dto.CategoryResponse, 0, len(categories)),
		Suppliers:  make([]dto.SupplierResponse, 0, len(suppliers)),
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, *toCategoryResponse(c))
	}
	for _, s := range suppliers {
		out.Suppliers = append(out.Suppliers, *toSupplierResponse(s))
	}
	return out, nil
}

// checkRefs verifica que las FKs resuelvan antes de mutar.
func (uc *ProductUseCase) checkRefs(ctx context.Context, categorieID, supplierID string) error {
	category, err := uc.categories.GetByID(ctx, categorieID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	supplier, err := uc.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrSupplierNotFound
	}
	return nil
}

func (uc *ProductUseCase) toProductResponse(d *repository.ProductDetail) *dto.ProductResponse {
	if d == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:          d.Product.ID,
		Name:        d.Product.Name,
		Quantity:    d.Product.Quantity,
		BuyPrice:    d.Product.BuyPrice,
		SalePrice:   d.Product.SalePrice,
		CategorieID: d.Product.CategorieID,
		SupplierID:  d.Product.SupplierID,
		Date:        d.Product.Date.Format("2006-01-02"),
		FileName:    d.Product.FileName,
		Category:    *toCategoryResponse(&d.Category),
		Supplier:    *toSupplierResponse(&d.Supplier),
		CreatedAt:   d.Product.CreatedAt,
		UpdatedAt:   d.Product.UpdatedAt,
	}
	if d.Product.FileName != "" {
		out.ImageURL = uc.images.URL(d.Product.FileName)
	}
	return out
}
