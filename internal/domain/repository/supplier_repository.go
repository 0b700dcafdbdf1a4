package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByEmail(ctx context.Context, email string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	// List devuelve los proveedores más recientes primero.
	List(ctx context.Context) ([]*entity.Supplier, error)
	// Delete retorna domain.ErrInUse si hay productos que referencian el proveedor.
	Delete(ctx context.Context, id string) error
}
