package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// detailQuery materializa producto + categoría + proveedor en un solo join,
// sin carga perezosa: el alcance del eager-load queda visible en la consulta.
const detailQuery = `
	SELECT p.id, p.name, p.quantity, p.buy_price, p.sale_price, p.categorie_id, p.supplier_id,
	       p.date, p.file_name, p.created_at, p.updated_at,
	       c.id, c.name, c.description, c.created_at, c.updated_at,
	       s.id, s.name, s.email, s.contact, s.address, s.created_at, s.updated_at
	FROM products p
	JOIN categories c ON c.id = p.categorie_id
	JOIN suppliers s ON s.id = p.supplier_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, quantity, buy_price, sale_price, categorie_id, supplier_id, date, file_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Quantity, product.BuyPrice, product.SalePrice,
		product.CategorieID, product.SupplierID, product.Date,
		nullString(product.FileName), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID sin referencias; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, quantity, buy_price, sale_price, categorie_id, supplier_id, date, file_name, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	var fileName sql.NullString
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Quantity, &p.BuyPrice, &p.SalePrice,
		&p.CategorieID, &p.SupplierID, &p.Date, &fileName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	p.FileName = fileName.String
	return &p, nil
}

// GetDetailByID obtiene un producto con categoría y proveedor; (nil, nil) si no existe.
func (r *ProductRepo) GetDetailByID(ctx context.Context, id string) (*repository.ProductDetail, error) {
	row := r.pool.QueryRow(ctx, detailQuery+` WHERE p.id = $1`, id)
	detail, err := scanProductDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product detail: %w", err)
	}
	return detail, nil
}

// ListDetailed devuelve todos los productos con sus referencias, más recientes primero.
func (r *ProductRepo) ListDetailed(ctx context.Context) ([]repository.ProductDetail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductDetail
	for rows.Next() {
		detail, err := scanProductDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product detail: %w", err)
		}
		list = append(list, *detail)
	}
	return list, rows.Err()
}

// Update actualiza un producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, quantity = $3, buy_price = $4, sale_price = $5,
			categorie_id = $6, supplier_id = $7, date = $8, file_name = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Quantity, product.BuyPrice, product.SalePrice,
		product.CategorieID, product.SupplierID, product.Date,
		nullString(product.FileName), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// CountByCategory cuenta los productos que referencian una categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE categorie_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// CountBySupplier cuenta los productos que referencian un proveedor.
func (r *ProductRepo) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by supplier: %w", err)
	}
	return n, nil
}

// scanProductDetail escanea una fila del detailQuery.
func scanProductDetail(row pgx.Row) (*repository.ProductDetail, error) {
	var d repository.ProductDetail
	var fileName, categoryDesc, supplierContact, supplierAddress sql.NullString
	err := row.Scan(
		&d.Product.ID, &d.Product.Name, &d.Product.Quantity, &d.Product.BuyPrice, &d.Product.SalePrice,
		&d.Product.CategorieID, &d.Product.SupplierID, &d.Product.Date, &fileName,
		&d.Product.CreatedAt, &d.Product.UpdatedAt,
		&d.Category.ID, &d.Category.Name, &categoryDesc, &d.Category.CreatedAt, &d.Category.UpdatedAt,
		&d.Supplier.ID, &d.Supplier.Name, &d.Supplier.Email, &supplierContact, &supplierAddress,
		&d.Supplier.CreatedAt, &d.Supplier.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Product.FileName = fileName.String
	d.Category.Description = categoryDesc.String
	d.Supplier.Contact = supplierContact.String
	d.Supplier.Address = supplierAddress.String
	return &d, nil
}
