package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/stocksync/stocksync-api/internal/application/analytics"
	"github.com/stocksync/stocksync-api/internal/application/auth"
	"github.com/stocksync/stocksync-api/internal/application/stock"
	"github.com/stocksync/stocksync-api/internal/application/usecase"
	"github.com/stocksync/stocksync-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	StockUC     *stock.UseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string

	// DisableRateLimit desliga o limiter de auth (ambiente de teste).
	DisableRateLimit bool
}

// Router registra as rotas da API.
//
// Autorização por role: fornecedores e produtos só mudam por admin;
// movimentações podem ser registradas por admin e estoquista; relatório
// PDF, auditoria de consistência e listagem de usuários são só admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, com rate limit por IP contra força bruta)
	authGroup := api.Group("/auth")
	if !deps.DisableRateLimit {
		authGroup.Use(limiter.New(limiter.Config{
			Max:        5,
			Expiration: 15 * time.Minute,
		}))
	}
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleEstoquista)

	// Usuários (protegido, somente admin)
	protected.Get("/auth/users", adminOnly, authHandler.ListUsers)

	// Suppliers (leitura para todos os roles, escrita só admin)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", anyRole, supplierHandler.List)
	suppliers.Get("/:id", anyRole, supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Products (leitura para todos os roles, escrita só admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock movements (admin e estoquista)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.StockUC)
	movements.Post("/", anyRole, movementHandler.Register)
	movements.Get("/", anyRole, movementHandler.List)
	movements.Get("/:id", anyRole, movementHandler.GetByID)
	movements.Delete("/:id", anyRole, movementHandler.Delete)

	// Auditoria de consistência (somente admin)
	protected.Get("/stock/consistency", adminOnly, movementHandler.Consistency)

	// Dashboard (resumo para todos, relatório PDF só admin)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", anyRole, dashboardHandler.Summary)
	protected.Get("/dashboard/report", adminOnly, dashboardHandler.Report)
}
