package usecase

import (
	"context"
	"io"
)

// ImageStore es el puerto de almacenamiento de imágenes de productos.
// Lo implementa storage.LocalStore; la interfaz permite un fake en tests.
type ImageStore interface {
	// Save persiste el contenido y devuelve el nombre de archivo generado.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	// Delete borra el archivo; un archivo inexistente no es error.
	Delete(ctx context.Context, fileName string) error
	// URL construye la URL pública del archivo.
	URL(fileName string) string
}
