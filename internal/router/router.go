package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/wdmapp/delivery-map-backend/config"
	"github.com/wdmapp/delivery-map-backend/internal/app/controller"
	"github.com/wdmapp/delivery-map-backend/internal/middleware"
)

type Router struct {
	storefrontController *controller.StorefrontController
	adminController      *controller.AdminController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	storefrontController *controller.StorefrontController,
	adminController *controller.AdminController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		storefrontController: storefrontController,
		adminController:      adminController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "delivery-map-backend",
		})
	})

	publicHeaders := publicReadMiddleware(r.config.Cache.PublicTTL.Seconds())

	// Direct storefront API and the platform app-proxy path share handlers,
	// so the two public read surfaces cannot drift apart.
	storefront := router.Group("/api/v1/storefront", publicHeaders)
	{
		storefront.GET("/settings/:shop", r.storefrontController.GetSettings)
		storefront.GET("/pins/:shop", r.storefrontController.GetPins)
		storefront.GET("/coverage/:shop", r.storefrontController.GetCoverage)
	}

	proxy := router.Group("/proxy", publicHeaders)
	{
		proxy.GET("/settings/:shop", r.storefrontController.GetSettings)
		proxy.GET("/pins/:shop", r.storefrontController.GetPins)
		proxy.GET("/coverage/:shop", r.storefrontController.GetCoverage)
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	admin.Use(r.authMiddleware.Authenticate())
	{
		admin.GET("/dashboard", r.adminController.GetDashboard)
		admin.POST("/dashboard/actions", r.adminController.HandleAction)
		admin.GET("/settings", r.adminController.GetSettings)
		admin.PUT("/settings", r.adminController.SaveSettings)
		admin.GET("/pins/export", r.adminController.ExportPins)
		admin.POST("/upload/presigned-url", r.uploadController.GeneratePresignedURL)
	}

	return router
}

// publicReadMiddleware sets the open-CORS and caching headers on the
// unauthenticated read endpoints.
func publicReadMiddleware(maxAgeSeconds float64) gin.HandlerFunc {
	cacheControl := fmt.Sprintf("public, max-age=%d", int(maxAgeSeconds))

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Cache-Control", cacheControl)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
