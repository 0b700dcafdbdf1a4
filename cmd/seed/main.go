// Comando seed: aplica el esquema y carga datos de ejemplo (usuarios, categorías,
// proveedores y productos de demostración). Pensado para entornos de desarrollo.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// seedPassword contraseña compartida por los usuarios de ejemplo.
const seedPassword = "password"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("esquema aplicado")

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}

	now := time.Now()
	users := []struct {
		name, username, email, role string
	}{
		{"Admin", "admin", "admin@example.com", entity.RoleAdmin},
		{"Manager", "manager", "manager@example.com", entity.RoleManager},
		{"User", "user", "user@example.com", entity.RoleUser},
	}
	for _, u := range users {
		if existing, err := userRepo.GetByUsername(ctx, u.username); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("verificar usuario")
		} else if existing != nil {
			log.Info().Str("username", u.username).Msg("usuario ya existe, omitido")
			continue
		}
		err := userRepo.Create(ctx, &entity.User{
			ID:           uuid.New().String(),
			Name:         u.name,
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			Image:        "no_image.jpg",
			Status:       1,
			LastLogin:    &now,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("crear usuario")
		}
		log.Info().Str("username", u.username).Str("role", u.role).Msg("usuario creado")
	}

	categories := []entity.Category{
		{Name: "Laptops", Description: "Various types of laptops including gaming, business, and personal laptops"},
		{Name: "Printers", Description: "Printers for home and office use, including laser and inkjet printers"},
		{Name: "Keyboards", Description: "Mechanical and membrane keyboards for desktop and laptop use"},
		{Name: "Mice", Description: "Wired and wireless computer mice for different usage"},
		{Name: "Monitors", Description: "Computer monitors including LED, LCD, and 4K models"},
		{Name: "Accessories", Description: "Various computer accessories including laptop bags, cables, etc."},
		{Name: "Networking", Description: "Networking devices including routers, switches, and modems"},
	}
	existingCats, err := categoryRepo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar categorías")
	}
	byName := make(map[string]string, len(existingCats))
	for _, c := range existingCats {
		byName[c.Name] = c.ID
	}
	for i := range categories {
		c := &categories[i]
		if id, ok := byName[c.Name]; ok {
			c.ID = id
			continue
		}
		c.ID = uuid.New().String()
		c.CreatedAt, c.UpdatedAt = now, now
		if err := categoryRepo.Create(ctx, c); err != nil {
			log.Fatal().Err(err).Str("name", c.Name).Msg("crear categoría")
		}
		log.Info().Str("name", c.Name).Msg("categoría creada")
	}

	suppliers := []entity.Supplier{
		{Name: "TechWorld Distribution", Email: "sales@techworld.example.com", Contact: "+57 300 111 2233", Address: "Cra 15 #80-23, Bogotá"},
		{Name: "Global Components SAS", Email: "contact@globalcomponents.example.com", Contact: "+57 301 444 5566", Address: "Cl 10 #43-12, Medellín"},
	}
	existingSups, err := supplierRepo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar proveedores")
	}
	supByEmail := make(map[string]string, len(existingSups))
	for _, s := range existingSups {
		supByEmail[s.Email] = s.ID
	}
	for i := range suppliers {
		s := &suppliers[i]
		if id, ok := supByEmail[s.Email]; ok {
			s.ID = id
			continue
		}
		s.ID = uuid.New().String()
		s.CreatedAt, s.UpdatedAt = now, now
		if err := supplierRepo.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Str("name", s.Name).Msg("crear proveedor")
		}
		log.Info().Str("name", s.Name).Msg("proveedor creado")
	}

	existing, err := productRepo.ListDetailed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar productos")
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("ya hay productos, seed de productos omitido")
		return
	}
	products := []entity.Product{
		{
			Name:        "ThinkPad X1 Carbon Gen 11",
			Quantity:    12,
			BuyPrice:    decimal.RequireFromString("1450.00"),
			SalePrice:   decimal.RequireFromString("1899.99"),
			CategorieID: categories[0].ID,
			SupplierID:  suppliers[0].ID,
		},
		{
			Name:        "HP LaserJet Pro M404dn",
			Quantity:    8,
			BuyPrice:    decimal.RequireFromString("230.50"),
			SalePrice:   decimal.RequireFromString("319.00"),
			CategorieID: categories[1].ID,
			SupplierID:  suppliers[1].ID,
		},
		{
			Name:        "Logitech MX Keys",
			Quantity:    30,
			BuyPrice:    decimal.RequireFromString("75.00"),
			SalePrice:   decimal.RequireFromString("109.90"),
			CategorieID: categories[2].ID,
			SupplierID:  suppliers[0].ID,
		},
	}
	for i := range products {
		p := &products[i]
		p.ID = uuid.New().String()
		p.Date = now
		p.CreatedAt, p.UpdatedAt = now, now
		if err := productRepo.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("name", p.Name).Msg("crear producto")
		}
		log.Info().Str("name", p.Name).Msg("producto creado")
	}

	log.Info().Msg("seed completado")
}
