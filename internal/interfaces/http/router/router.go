// Package router wires the HTTP handlers onto a gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/onlineshop/backend/internal/domain/identity"
	"github.com/onlineshop/backend/internal/infrastructure/auth"
	"github.com/onlineshop/backend/internal/infrastructure/config"
	"github.com/onlineshop/backend/internal/infrastructure/logger"
	"github.com/onlineshop/backend/internal/interfaces/http/handler"
	"github.com/onlineshop/backend/internal/interfaces/http/middleware"
)

// Handlers collects everything the router mounts
type Handlers struct {
	Auth          *handler.AuthHandler
	Catalog       *handler.CatalogHandler
	Cart          *handler.CartHandler
	Order         *handler.OrderHandler
	Suggestion    *handler.SuggestionHandler
	ProductAdmin  *handler.ProductAdminHandler
	CategoryAdmin *handler.CategoryAdminHandler
	OrderAdmin    *handler.OrderAdminHandler
	UserAdmin     *handler.UserAdminHandler
	Report        *handler.ReportHandler
}

// Setup builds the gin engine with all middleware and routes mounted
func Setup(cfg *config.Config, jwtService *auth.JWTService, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded product images and payment proofs, when stored locally
	if cfg.Upload.Backend == "local" {
		engine.Static("/static/uploads", cfg.Upload.ProductDir)
		engine.Static("/static/proofs", cfg.Upload.ProofDir)
	}

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtService))

	// Public storefront
	catalog := api.Group("/catalog")
	{
		catalog.GET("/products", h.Catalog.ListProducts)
		catalog.GET("/products/:id", h.Catalog.GetProduct)
		catalog.GET("/categories", h.Catalog.ListCategories)
	}

	// Authentication
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", h.Auth.Me)
	}

	// Customer cart and buy-now slot
	cart := api.Group("/cart")
	cart.Use(middleware.RequireRole(identity.RoleCustomer))
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.POST("/buy-now/:id", h.Cart.BuyNow)
	}

	// Customer orders
	orders := api.Group("/orders")
	orders.Use(middleware.RequireRole(identity.RoleCustomer))
	{
		orders.POST("", h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/proof", h.Order.UploadProof)
	}

	// Customer product suggestions
	suggestions := api.Group("/suggestions")
	suggestions.Use(middleware.RequireRole(identity.RoleCustomer))
	{
		suggestions.POST("", h.Suggestion.Suggest)
		suggestions.GET("", h.Suggestion.List)
		suggestions.PUT("/:id", h.Suggestion.Update)
		suggestions.DELETE("/:id", h.Suggestion.Delete)
		suggestions.POST("/:id/resubmit", h.Suggestion.Resubmit)
		suggestions.POST("/:id/image", h.Suggestion.UploadImage)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/dashboard", h.Report.Dashboard)
		admin.GET("/reports/sales", h.Report.Sales)

		admin.GET("/products", h.ProductAdmin.List)
		admin.POST("/products", h.ProductAdmin.Create)
		admin.PUT("/products/:id", h.ProductAdmin.Update)
		admin.DELETE("/products/:id", h.ProductAdmin.Delete)
		admin.POST("/products/:id/image", h.ProductAdmin.UploadImage)

		admin.GET("/suggestions", h.ProductAdmin.ListSuggestions)
		admin.POST("/suggestions/:id/approve", h.ProductAdmin.ApproveSuggestion)
		admin.POST("/suggestions/:id/decline", h.ProductAdmin.DeclineSuggestion)

		admin.POST("/categories", h.CategoryAdmin.Create)
		admin.PUT("/categories/:id", h.CategoryAdmin.Update)
		admin.DELETE("/categories/:id", h.CategoryAdmin.Delete)

		admin.GET("/orders", h.OrderAdmin.List)
		admin.GET("/orders/:id", h.OrderAdmin.Get)
		admin.POST("/orders/:id/review", h.OrderAdmin.Review)

		admin.GET("/users", h.UserAdmin.List)
		admin.GET("/users/:id", h.UserAdmin.Get)
		admin.POST("/users/:id/toggle", h.UserAdmin.ToggleActive)
		admin.POST("/users/:id/reset-password", h.UserAdmin.ResetPassword)
	}

	return engine
}
