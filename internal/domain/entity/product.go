package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// CategorieID conserva la ortografía histórica del esquema y del formato de intercambio.
type Product struct {
	ID          string
	Name        string
	Quantity    int             // >= 0
	BuyPrice    decimal.Decimal // >= 0
	SalePrice   decimal.Decimal // >= 0
	CategorieID string          // FK a categories
	SupplierID  string          // FK a suppliers
	Date        time.Time       // fecha de ingreso (solo fecha)
	FileName    string          // imagen asociada, vacío si no tiene
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
