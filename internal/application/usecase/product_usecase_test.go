package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products   map[string]*entity.Product
	categories *fakeCategoryRepo
	suppliers  *fakeSupplierRepo
}

func newFakeProductRepo(categories *fakeCategoryRepo, suppliers *fakeSupplierRepo) *fakeProductRepo {
	return &fakeProductRepo{
		products:   map[string]*entity.Product{},
		categories: categories,
		suppliers:  suppliers,
	}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetDetailByID(ctx context.Context, id string) (*repository.ProductDetail, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	c, _ := r.categories.GetByID(ctx, p.CategorieID)
	s, _ := r.suppliers.GetByID(ctx, p.SupplierID)
	return &repository.ProductDetail{Product: *p, Category: *c, Supplier: *s}, nil
}

func (r *fakeProductRepo) ListDetailed(ctx context.Context) ([]repository.ProductDetail, error) {
	var list []repository.ProductDetail
	for id := range r.products {
		d, err := r.GetDetailByID(ctx, id)
		if err != nil {
			return nil, err
		}
		list = append(list, *d)
	}
	return list, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.CategorieID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) CountBySupplier(_ context.Context, supplierID string) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
	inUse      map[string]bool // simula la FK RESTRICT en Delete
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[string]*entity.Category{}, inUse: map[string]bool{}}
	for _, c := range categories {
		cp := *c
		r.categories[c.ID] = &cp
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	for _, c := range r.categories {
		cp := *c
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if r.inUse[id] {
		return domain.ErrInUse
	}
	delete(r.categories, id)
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func newFakeSupplierRepo(suppliers ...*entity.Supplier) *fakeSupplierRepo {
	r := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{}}
	for _, s := range suppliers {
		cp := *s
		r.suppliers[s.ID] = &cp
	}
	return r
}

func (r *fakeSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	if s, ok := r.suppliers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSupplierRepo) GetByEmail(_ context.Context, email string) (*entity.Supplier, error) {
	for _, s := range r.suppliers {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	for _, s := range r.suppliers {
		cp := *s
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id string) error {
	delete(r.suppliers, id)
	return nil
}

// fakeImageStore guarda los archivos en memoria para verificar save/delete.
type fakeImageStore struct {
	files map[string]string // nombre -> contenido
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{files: map[string]string{}}
}

func (s *fakeImageStore) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	name := "products/" + originalName
	s.files[name] = string(data)
	return name, nil
}

func (s *fakeImageStore) Delete(_ context.Context, fileName string) error {
	delete(s.files, fileName)
	return nil
}

func (s *fakeImageStore) URL(fileName string) string {
	return "http://localhost/storage/" + fileName
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func fixtureRefs() (*fakeCategoryRepo, *fakeSupplierRepo) {
	now := time.Now()
	cat := &entity.Category{ID: "cat-1", Name: "Laptops", CreatedAt: now, UpdatedAt: now}
	sup := &entity.Supplier{ID: "sup-1", Name: "TechWorld", Email: "sales@techworld.example.com", CreatedAt: now, UpdatedAt: now}
	return newFakeCategoryRepo(cat), newFakeSupplierRepo(sup)
}

func productInput(image *dto.FileUpload) dto.ProductInput {
	return dto.ProductInput{
		Name:        "ThinkPad X1",
		Quantity:    5,
		BuyPrice:    decimal.RequireFromString("1450.00"),
		SalePrice:   decimal.RequireFromString("1899.99"),
		CategorieID: "cat-1",
		SupplierID:  "sup-1",
		Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Image:       image,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_ConImagen(t *testing.T) {
	cats, sups := fixtureRefs()
	repo := newFakeProductRepo(cats, sups)
	images := newFakeImageStore()
	uc := usecase.NewProductUseCase(repo, cats, sups, images)

	in := productInput(&dto.FileUpload{Name: "foto.jpg", Size: 4, Reader: strings.NewReader("data")})
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "ThinkPad X1", out.Name)
	assert.Equal(t, "2026-03-15", out.Date)
	assert.Equal(t, "Laptops", out.Category.Name)
	assert.Equal(t, "TechWorld", out.Supplier.Name)
	assert.NotEmpty(t, out.FileName)
	assert.Contains(t, out.ImageURL, out.FileName)
	assert.Len(t, images.files, 1, "la imagen debe quedar guardada")
}

// Con una categoría que no resuelve no se persiste nada: ni fila ni imagen.
func TestProductCreate_CategoriaInexistente(t *testing.T) {
	cats, sups := fixtureRefs()
	repo := newFakeProductRepo(cats, sups)
	images := newFakeImageStore()
	uc := usecase.NewProductUseCase(repo, cats, sups, images)

	in := productInput(&dto.FileUpload{Name: "foto.jpg", Size: 4, Reader: strings.NewReader("data")})
	in.CategorieID = "no-existe"

	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.Empty(t, repo.products, "no debe persistirse ninguna fila")
	assert.Empty(t, images.files, "no debe guardarse ninguna imagen")
}

func TestProductCreate_ProveedorInexistente(t *testing.T) {
	cats, sups := fixtureRefs()
	repo := newFakeProductRepo(cats, sups)
	uc := usecase.NewProductUseCase(repo, cats, sups, newFakeImageStore())

	in := productInput(nil)
	in.SupplierID = "no-existe"

	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

// Una imagen nueva en la edición sustituye a la anterior en disco.
func TestProductUpdate_ReemplazaImagen(t *testing.T) {
	cats, sups := fixtureRefs()
	repo := newFakeProductRepo(cats, sups)
	images := newFakeImageStore()
	uc := usecase.NewProductUseCase(repo, cats, sups, images)

	ctx := context.Background()
	created, err := uc.Create(ctx, productInput(&dto.FileUpload{Name: "vieja.jpg", Size: 4, Reader: strings.NewReader("old")}))
	require.NoError(t, err)
	oldFile := created.FileName

	in := productInput(&dto.FileUpload{Name: "nueva.jpg", Size: 4, Reader: strings.NewReader("new")})
	updated, err := uc.Update(ctx, created.ID, in)
	require.NoError(t, err)

	assert.NotEqual(t, oldFile, updated.FileName)
	_, oldExists := images.files[oldFile]
	assert.False(t, oldExists, "la imagen anterior debe borrarse")
	_, newExists := images.files[updated.FileName]
	assert.True(t, newExists)
}

// Sin imagen en la edición se conserva el archivo existente.
func TestProductUpdate_SinImagenConservaArchivo(t *testing.T) {
	cats, sups := fixtureRefs()
	repo := newFakeProductRepo(cats, sups)
	images := newFakeImageStore()
	uc := usecase.NewProductUseCase(repo, cats, sups, images)

	ctx := context.Background()
	created, err := uc.Create(ctx, productInput(&dto.FileUpload{Name: "foto.jpg", Size: 4, Reader: strings.NewReader("data")}))
	require.NoError(t, err)

	in := productInput(nil)
	in.Name = "ThinkPad X1 Carbon"
	updated, err := uc.Update(ctx, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "ThinkPad X1 Carbon", updated.Name)
	assert.Equal(t, created.FileName, updated.FileName)
	_, exists := images.files[created.FileName]
	assert.True(t, exists)
}

func TestProductUpdate_NoEncontrado(t *testing.T) {
	cats, sups := fixtureRefs()
	uc := usecase.NewProductUseCase(newFakeProductRepo(cats, sups), cats, sups, newFakeImageStore())

	_, err := uc.Update(context.Background(), "no-existe", productInput(nil))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El borrado elimina también el archivo de imagen asociado.
func TestProductDelete_BorraImagen(t *testing.T) {
	cats, sups := fixtureRefs()
	repo := newFakeProductRepo(cats, sups)
	images := newFakeImageStore()
	uc := usecase.NewProductUseCase(repo, cats, sups, images)

	ctx := context.Background()
	created, err := uc.Create(ctx, productInput(&dto.FileUpload{Name: "foto.jpg", Size: 4, Reader: strings.NewReader("data")}))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Empty(t, repo.products)
	assert.Empty(t, images.files)
}

func TestProductGet_NoEncontrado(t *testing.T) {
	cats, sups := fixtureRefs()
	uc := usecase.NewProductUseCase(newFakeProductRepo(cats, sups), cats, sups, newFakeImageStore())

	_, err := uc.Get(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Sin categorías o sin proveedores el formulario no tiene con qué poblarse.
func TestProductFormData_SinProveedores(t *testing.T) {
	now := time.Now()
	cats := newFakeCategoryRepo(&entity.Category{ID: "cat-1", Name: "Laptops", CreatedAt: now, UpdatedAt: now})
	sups := newFakeSupplierRepo() // vacío
	uc := usecase.NewProductUseCase(newFakeProductRepo(cats, sups), cats, sups, newFakeImageStore())

	_, err := uc.FormData(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductFormData_Completo(t *testing.T) {
	cats, sups := fixtureRefs()
	uc := usecase.NewProductUseCase(newFakeProductRepo(cats, sups), cats, sups, newFakeImageStore())

	out, err := uc.FormData(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Categories, 1)
	assert.Len(t, out.Suppliers, 1)
}
