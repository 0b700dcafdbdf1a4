// Package storage implementa el almacenamiento en disco local de las imágenes
// de productos. La escritura no es transaccional con la fila del producto.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/pkg/config"
)

var _ usecase.ImageStore = (*LocalStore)(nil)

// imageDir subdirectorio de imágenes de productos dentro del root.
const imageDir = "products"

// LocalStore guarda archivos bajo un directorio raíz y construye URLs públicas.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore construye el store. El root se vuelve absoluto respecto al cwd.
func NewLocalStore(cfg config.StorageConfig) *LocalStore {
	root := cfg.Root
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Root devuelve el directorio raíz absoluto (para servir estáticos).
func (s *LocalStore) Root() string { return s.root }

// Save persiste el contenido bajo products/ con un nombre generado que conserva
// la extensión original, y devuelve la ruta relativa registrada en la fila.
func (s *LocalStore) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(originalName))
	fileName := path.Join(imageDir, uuid.New().String()+ext)

	full := filepath.Join(s.root, filepath.FromSlash(fileName))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", fileName, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", fileName, err)
	}
	return fileName, nil
}

// Delete borra el archivo; un archivo inexistente no es error.
func (s *LocalStore) Delete(_ context.Context, fileName string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(fileName)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete %s: %w", fileName, err)
	}
	return nil
}

// URL construye la URL pública del archivo.
func (s *LocalStore) URL(fileName string) string {
	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(fileName), "/")
}
