package router

import (
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/handler"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/middleware"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Medicine      *handler.MedicineHandler
	Sale          *handler.SaleHandler
	Customer      *handler.CustomerHandler
	Billing       *handler.BillingHandler
	Supplier      *handler.SupplierHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Notification  *handler.NotificationHandler
	Report        *handler.ReportHandler
	Prediction    *handler.PredictionHandler
}

// New builds the gin engine with the full middleware chain and route table.
func New(h Handlers, authSvc service.AuthService, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.RateLimiter(300, time.Minute),
	)

	r.GET("/health", h.Health.Check)
	if env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
	}
	authed := api.Group("")
	authed.Use(middleware.Auth(authSvc))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/verify", h.Auth.Verify)

		medicines := authed.Group("/medicines")
		{
			medicines.POST("", h.Medicine.Create)
			medicines.GET("", h.Medicine.List)
			medicines.GET("/expiring", h.Medicine.Expiring)
			medicines.GET("/:id", h.Medicine.Get)
			medicines.PUT("/:id", h.Medicine.Update)
			medicines.DELETE("/:id", h.Medicine.Delete)
		}

		sales := authed.Group("/sales")
		{
			sales.POST("", h.Sale.Create)
			sales.GET("", h.Sale.List)
			sales.GET("/summary", h.Sale.Summary)
		}

		customers := authed.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("", h.Customer.List)
			customers.GET("/stats/summary", h.Customer.Stats)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
		}

		billing := authed.Group("/billing")
		{
			billing.POST("", h.Billing.Create)
			billing.GET("", h.Billing.List)
			billing.GET("/stats/summary", h.Billing.Stats)
			billing.GET("/:id", h.Billing.Get)
			billing.GET("/:id/pdf", h.Billing.InvoicePDF)
			billing.DELETE("/:id", middleware.RequireRole("admin"), h.Billing.Delete)
		}

		suppliers := authed.Group("/suppliers")
		{
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("", h.Supplier.List)
			suppliers.GET("/:id", h.Supplier.Get)
			suppliers.PUT("/:id", h.Supplier.Update)
			suppliers.DELETE("/:id", middleware.RequireRole("admin"), h.Supplier.Delete)
			suppliers.GET("/:id/history", h.Supplier.History)
			suppliers.GET("/:id/stats", h.Supplier.Stats)
		}

		orders := authed.Group("/purchase-orders")
		{
			orders.POST("", h.PurchaseOrder.Create)
			orders.GET("", h.PurchaseOrder.List)
			orders.GET("/summary/statistics", h.PurchaseOrder.Statistics)
			orders.GET("/:id", h.PurchaseOrder.Get)
			orders.PUT("/:id", h.PurchaseOrder.Update)
			orders.PUT("/:id/approve", h.PurchaseOrder.Approve)
			orders.PUT("/:id/receive", h.PurchaseOrder.Receive)
			orders.PUT("/:id/cancel", h.PurchaseOrder.Cancel)
			orders.DELETE("/:id", middleware.RequireRole("admin"), h.PurchaseOrder.Delete)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.POST("/generate", h.Notification.Generate)
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.GET("/summary", h.Notification.Summary)
			notifications.PATCH("/:id/read", h.Notification.MarkRead)
			notifications.PATCH("/mark-all-read", h.Notification.MarkAllRead)
			notifications.DELETE("/clear-all", h.Notification.ClearRead)
			notifications.DELETE("/:id", h.Notification.Delete)
		}

		reports := authed.Group("/reports")
		{
			reports.GET("/sales", h.Report.Sales)
			reports.GET("/inventory", h.Report.Inventory)
			reports.GET("/customers", h.Report.Customers)
		}

		predictions := authed.Group("/predictions")
		{
			predictions.GET("", h.Prediction.Predict)
			predictions.GET("/latest", h.Prediction.Latest)
		}
	}

	return r
}
