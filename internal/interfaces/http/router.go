package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Forecast         *inventory.ForecastUseCase
	Reports          *inventory.ReportUseCase
	JWTSecret        string
	AppName          string
	// Ping verifica la base de datos para /health; nil => se omite el chequeo.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": deps.AppName, "status": "running"})
	})
	app.Get("/health", healthHandler(deps.Ping))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdministrador)

	users := api.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/", adminOnly, userHandler.List)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Put("/:id/password", adminOnly, userHandler.ChangePassword)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	movements := api.Group("/movements", requireAuth)
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.Reports)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/export.xml", movementHandler.ExportXML)

	// report.pdf antes de :product_id para que no se tome como ID.
	forecast := api.Group("/forecast", requireAuth)
	forecastHandler := NewForecastHandler(deps.Forecast, deps.Reports)
	forecast.Get("/", forecastHandler.Catalog)
	forecast.Get("/report.pdf", forecastHandler.ReportPDF)
	forecast.Get("/:product_id", forecastHandler.Product)
}

func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "down"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "database": "up"})
	}
}
