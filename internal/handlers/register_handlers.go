package handlers

import (
	"github.com/Marceldinga/The-young-shall-grow/cmd/docs"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/middleware"
	"github.com/Marceldinga/The-young-shall-grow/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Route-level gate for the admin-only mutations; the services check
	// again, so a mis-registered route fails closed.
	adminOnly := middleware.RequireRole(services.Auth, domain.RoleAdmin)

	registerProtectedAuthRoutes(v1, cfg, services)
	registerMemberRoutes(v1, services.Member)
	registerTransactionRoutes(v1, adminOnly, services.Recorder, services.History)
	registerLedgerRoutes(v1, adminOnly, services.Reconciliation)
	registerRotationRoutes(v1, adminOnly, services.Rotation, services.Pool)
	registerHomeRoutes(v1, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
