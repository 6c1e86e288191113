package router

import (
	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/commerce/backend/internal/interfaces/http/handler"
	"github.com/commerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Inventory *handler.InventoryHandler
	Report    *handler.ReportHandler
}

// Register wires all routes onto the engine
func Register(engine *gin.Engine, tokens *auth.JWTService, h Handlers) {
	engine.GET("/health", h.System.Health)

	v1 := engine.Group("/api/v1")

	// Public endpoints
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// Everything below requires a valid access token
	api := v1.Group("")
	api.Use(middleware.JWTAuth(tokens))

	api.GET("/auth/me", h.Auth.Me)
	api.POST("/auth/logout", h.Auth.Logout)
	api.POST("/auth/password", h.Auth.ChangePassword)

	users := api.Group("/users", middleware.RequirePermission(auth.PermUserManage))
	{
		users.POST("", h.Auth.CreateUser)
		users.GET("", h.Auth.ListUsers)
		users.PUT("/:id/role", h.Auth.ChangeRole)
		users.PUT("/:id/active", h.Auth.SetActive)
	}

	products := api.Group("/products")
	{
		read := middleware.RequirePermission(auth.PermProductRead)
		write := middleware.RequirePermission(auth.PermProductWrite)

		products.GET("", read, h.Product.List)
		products.GET("/categories", read, h.Product.Categories)
		products.GET("/low-stock", middleware.RequirePermission(auth.PermInventoryRead), h.Product.LowStock)
		products.GET("/sku/:sku", read, h.Product.GetBySKU)
		products.GET("/:id", read, h.Product.Get)
		products.POST("", write, h.Product.Create)
		products.PUT("/:id", write, h.Product.Update)
		products.DELETE("/:id", write, h.Product.Delete)
		products.POST("/:id/activate", write, h.Product.Activate)
	}

	customers := api.Group("/customers")
	{
		read := middleware.RequirePermission(auth.PermCustomerRead)
		write := middleware.RequirePermission(auth.PermCustomerWrite)

		customers.GET("", read, h.Customer.List)
		customers.GET("/:id", read, h.Customer.Get)
		customers.POST("", write, h.Customer.Create)
		customers.PUT("/:id", write, h.Customer.Update)
		customers.DELETE("/:id", write, h.Customer.Delete)
		customers.POST("/:id/activate", write, h.Customer.Activate)
	}

	cart := api.Group("/cart", middleware.RequirePermission(auth.PermCartUse))
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:productId", h.Cart.UpdateItem)
		cart.DELETE("/items/:productId", h.Cart.RemoveItem)
		cart.POST("/checkout", h.Cart.Checkout)
	}

	orders := api.Group("/orders")
	{
		read := middleware.RequirePermission(auth.PermOrderRead)
		write := middleware.RequirePermission(auth.PermOrderWrite)
		own := middleware.RequirePermission(auth.PermOrderReadOwn)

		// Self-service routes come first so "my" is not captured by :id
		orders.GET("/my", own, h.Order.ListMine)
		orders.GET("/my/:id", own, h.Order.GetMine)

		orders.GET("", read, h.Order.List)
		orders.GET("/number/:number", read, h.Order.GetByNumber)
		orders.GET("/:id", read, h.Order.Get)
		orders.PUT("/:id/status", write, h.Order.UpdateStatus)
		orders.POST("/:id/pay", write, h.Order.MarkPaid)
		orders.POST("/:id/cancel", write, h.Order.Cancel)
	}

	inventory := api.Group("/inventory")
	{
		read := middleware.RequirePermission(auth.PermInventoryRead)
		write := middleware.RequirePermission(auth.PermInventoryWrite)

		inventory.GET("/transactions", read, h.Inventory.List)
		inventory.GET("/products/:id/transactions", read, h.Inventory.History)
		inventory.POST("/products/:id/adjust", write, h.Inventory.Adjust)
	}

	reports := api.Group("/reports", middleware.RequirePermission(auth.PermReportRead))
	{
		reports.GET("/sales/summary", h.Report.SalesSummary)
		reports.GET("/sales/daily", h.Report.DailySales)
		reports.GET("/sales/categories", h.Report.CategorySales)
		reports.GET("/products/top", h.Report.TopProducts)
		reports.GET("/customers/top", h.Report.TopCustomers)
		reports.GET("/orders/status", h.Report.StatusBreakdown)
		reports.GET("/inventory/summary", h.Report.InventorySummary)
		reports.GET("/inventory/low-stock", h.Report.LowStock)
	}
}
