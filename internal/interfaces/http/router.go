package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TokenChecker verifica si un token de acceso sigue vigente.
type TokenChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	ProductUC  *usecase.ProductUseCase
	StatsUC    *usecase.StatsUseCase
	ReportUC   *report.ReportUseCase
	Tokens     TokenChecker
	JWTSecret  string
	StaticRoot string // raíz de imágenes servida bajo /storage; vacío deshabilita
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Imágenes de productos (público)
	if deps.StaticRoot != "" {
		app.Static("/storage", deps.StaticRoot)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Tokens))

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/dashboard", authHandler.Dashboard)
	protected.Get("/user/profile", authHandler.Profile)
	protected.Put("/user/profile", authHandler.UpdateProfile)

	adminOnly := RequireRole(entity.RoleAdmin)
	adminOrManager := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Categories (lectura: cualquier rol; escritura: admin y manager)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOrManager, categoryHandler.Create)
	categories.Put("/:id", adminOrManager, categoryHandler.Update)
	categories.Delete("/:id", adminOrManager, categoryHandler.Delete)

	// Suppliers (lectura: cualquier rol; escritura: admin y manager)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", adminOrManager, supplierHandler.Create)
	suppliers.Put("/:id", adminOrManager, supplierHandler.Update)
	suppliers.Delete("/:id", adminOrManager, supplierHandler.Delete)

	// Products (lectura: cualquier rol; escritura: admin y manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/form-data", productHandler.FormData)
	products.Get("/:id", productHandler.Get)
	products.Post("/", adminOrManager, productHandler.Create)
	products.Put("/:id", adminOrManager, productHandler.Update)
	products.Delete("/:id", adminOrManager, productHandler.Delete)

	// Statistics y reportes (solo admin)
	statsHandler := NewStatsHandler(deps.StatsUC, deps.ReportUC)
	protected.Get("/statistics", adminOnly, statsHandler.Statistics)
	protected.Get("/reports/inventory", adminOnly, statsHandler.InventoryReport)
}
