package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// FileUpload es una imagen subida vía multipart, ya abierta por el handler.
type FileUpload struct {
	Name   string // nombre original del archivo
	Size   int64
	Reader io.Reader
}

// ProductInput entrada tipada para crear o actualizar un producto.
// El handler valida los campos del formulario multipart antes de construirla.
type ProductInput struct {
	Name        string
	Quantity    int
	BuyPrice    decimal.Decimal
	SalePrice   decimal.Decimal
	CategorieID string
	SupplierID  string
	Date        time.Time
	Image       *FileUpload // nil si no se subió imagen
}

// ProductResponse salida de un producto con sus referencias materializadas.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Quantity    int              `json:"quantity"`
	BuyPrice    decimal.Decimal  `json:"buy_price"`
	SalePrice   decimal.Decimal  `json:"sale_price"`
	CategorieID string           `json:"categorie_id"`
	SupplierID  string           `json:"supplier_id"`
	Date        string           `json:"date"` // YYYY-MM-DD
	FileName    string           `json:"file_name,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Category    CategoryResponse `json:"category"`
	Supplier    SupplierResponse `json:"supplier"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FormDataResponse categorías y proveedores para el formulario de productos.
type FormDataResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Suppliers  []SupplierResponse `json:"suppliers"`
}
