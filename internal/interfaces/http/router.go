package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/activos-ti-api/internal/application/analytics"
	"github.com/jhoicas/activos-ti-api/internal/application/assets"
	"github.com/jhoicas/activos-ti-api/internal/application/auth"
	"github.com/jhoicas/activos-ti-api/internal/application/inventory"
	"github.com/jhoicas/activos-ti-api/internal/application/notifications"
	"github.com/jhoicas/activos-ti-api/internal/application/repairs"
	"github.com/jhoicas/activos-ti-api/internal/application/usecase"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/metrics"
)

// AppOptions configuración de la app Fiber.
type AppOptions struct {
	Name string
	// ExposeErrorDetail agrega el error interno a los 500 (solo desarrollo).
	ExposeErrorDetail bool
	Metrics           *metrics.Metrics
	// Ping se usa en /health; nil omite la verificación de DB.
	Ping func(ctx context.Context) error
}

// NewApp crea la app Fiber con el manejo de errores, recover, logging de requests,
// métricas, /health y /metrics. Las rutas de la API se registran con Router.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(RequestLogger())
	app.Use(recover.New())
	if opts.ExposeErrorDetail {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(localExposeDetail, true)
			return c.Next()
		})
	}
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
		app.Get("/metrics", opts.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if opts.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := opts.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": opts.Name, "database": "down",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CategoryUC     *usecase.CategoryUseCase
	ProductUC      *usecase.ProductUseCase
	LocationUC     *usecase.LocationUseCase
	Ledger         *inventory.LedgerUseCase
	Movements      *inventory.MovementQueryUseCase
	AssetUC        *assets.AssetUseCase
	RepairUC       *repairs.RepairUseCase
	NotificationUC *notifications.NotificationUseCase
	DashboardUC    *analytics.DashboardUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	admin := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleUser)

	// Auth: login público; el alta de usuarios la hace un administrador.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)
	protected.Post("/auth/register", admin, authHandler.Register)

	users := protected.Group("/users", admin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Delete("/:id", userHandler.Deactivate)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", admin, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", admin, categoryHandler.Update)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	products.Get("/", productHandler.List)
	products.Post("/", admin, productHandler.Create)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Deactivate)
	products.Patch("/:id/stock", admin, productHandler.AdjustStock)

	locationHandler := NewLocationHandler(deps.LocationUC)
	protected.Get("/branches", locationHandler.ListBranches)
	protected.Post("/branches", admin, locationHandler.CreateBranch)
	protected.Get("/departments", locationHandler.ListDepartments)
	protected.Post("/departments", admin, locationHandler.CreateDepartment)

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Movements)
	invGroup.Post("/entries", admin, inventoryHandler.RegisterEntry)
	invGroup.Post("/exits", admin, inventoryHandler.RegisterExit)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)

	assetGroup := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC, deps.RepairUC)
	assetGroup.Get("/", assetHandler.List)
	assetGroup.Post("/", admin, assetHandler.Create)
	assetGroup.Get("/assigned/:userId", assetHandler.ListAssigned)
	assetGroup.Get("/:id", assetHandler.GetByID)
	assetGroup.Post("/:id/assign", admin, assetHandler.Assign)
	assetGroup.Patch("/:id/status", admin, assetHandler.UpdateStatus)
	assetGroup.Get("/:id/repairs", assetHandler.ListRepairs)
	assetGroup.Get("/:id/certificate", assetHandler.Certificate)

	repairGroup := protected.Group("/repairs")
	repairHandler := NewRepairHandler(deps.RepairUC)
	repairGroup.Get("/", repairHandler.List)
	repairGroup.Post("/", admin, repairHandler.Send)
	repairGroup.Get("/:id", repairHandler.GetByID)
	repairGroup.Post("/:id/return", admin, repairHandler.Return)

	notif := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notif.Get("/", notificationHandler.List)
	notif.Post("/", admin, notificationHandler.Create)
	notif.Get("/unread-count", notificationHandler.UnreadCount)
	notif.Patch("/read-all", notificationHandler.MarkAllAsRead)
	notif.Patch("/:id/read", notificationHandler.MarkAsRead)
	notif.Delete("/cleanup", admin, notificationHandler.Cleanup)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", admin, dashboardHandler.Summary)
}
