package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          string
	Name        string
	Description string // vacío si no se indicó
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
