package router

import (
	"github.com/gin-gonic/gin"

	"quickbill/internal/config"
	"quickbill/internal/handler"
	"quickbill/internal/middleware"
	"quickbill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	customerH *handler.CustomerHandler,
	whatsappH *handler.WhatsAppHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Public enterprise auth routes
	enterprises := r.Group("/api/enterprises")
	enterprises.POST("/register", authH.Register)
	enterprises.POST("/login", authH.Login)
	enterprises.GET("/profile", middleware.AuthMiddleware(authSvc), authH.Profile)
	enterprises.PUT("/profile", middleware.AuthMiddleware(authSvc), authH.UpdateProfile)

	// Document send endpoint, kept at its historical path
	r.POST("/send-whatsapp", middleware.AuthMiddleware(authSvc), whatsappH.Send)

	// Protected routes - require valid JWT
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))

	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/stats", invoiceH.Stats)
	invoices.GET("/export", invoiceH.Export)
	invoices.GET("/:id", invoiceH.Get)
	invoices.PATCH("/:id/status", invoiceH.UpdateStatus)
	invoices.PATCH("/:id/whatsapp", invoiceH.MarkWhatsappSent)
	invoices.POST("/:id/send", invoiceH.Send)

	customers := v1.Group("/customers")
	customers.GET("", customerH.List)
	customers.GET("/stats", customerH.Stats)
	customers.GET("/:id", customerH.Get)
	customers.PUT("/:id", customerH.Update)
	customers.PATCH("/:id/status", customerH.UpdateStatus)

	return r
}
