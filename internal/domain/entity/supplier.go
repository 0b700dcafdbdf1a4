package entity

import "time"

// Supplier representa un proveedor de productos.
type Supplier struct {
	ID        string
	Name      string
	Email     string // único
	Contact   string // vacío si no se indicó
	Address   string // vacío si no se indicó
	CreatedAt time.Time
	UpdatedAt time.Time
}
