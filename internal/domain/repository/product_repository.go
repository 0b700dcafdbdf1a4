package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductDetail es el resultado materializado de un producto con sus referencias
// (join explícito en la consulta, sin carga perezosa).
type ProductDetail struct {
	Product  entity.Product
	Category entity.Category
	Supplier entity.Supplier
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetDetailByID devuelve el producto con categoría y proveedor ya cargados.
	GetDetailByID(ctx context.Context, id string) (*ProductDetail, error)
	ListDetailed(ctx context.Context) ([]ProductDetail, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// CountByCategory y CountBySupplier soportan la política restrict de borrado.
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	CountBySupplier(ctx context.Context, supplierID string) (int, error)
}
