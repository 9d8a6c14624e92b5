// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/config"
	"github.com/inklight/bookip-backend/internal/handlers"
	"github.com/inklight/bookip-backend/internal/middleware"
	"github.com/inklight/bookip-backend/internal/protocol"
	"github.com/inklight/bookip-backend/internal/services"
	"github.com/inklight/bookip-backend/internal/utils"
)

func Initialize(db *gorm.DB, gate *authz.Gate, client *protocol.Client, cfg *config.Config) *gin.Engine {
	// Initialize services
	store := services.NewStore(db)
	events := services.NewEventRecorder(store)

	registrationService := services.NewRegistrationService(store, gate, client, client, client, events, cfg)
	paymentService := services.NewPaymentService(store, gate, client, client, events, cfg)
	claimService := services.NewClaimService(gate, client, events)
	adminService := services.NewAdminService(store, gate, client, events, cfg)

	// Initialize handlers
	assetHandler := handlers.NewAssetHandler(registrationService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, claimService)
	adminHandler := handlers.NewAdminHandler(adminService)
	eventHandler := handlers.NewEventHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"paused":  gate.Paused(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Asset registration routes
		assets := v1.Group("/assets")
		{
			assets.GET("", middleware.OptionalAuth(), assetHandler.ListAssets)
			assets.GET("/:id", middleware.OptionalAuth(), assetHandler.GetAsset)

			protected := assets.Group("")
			protected.Use(middleware.AuthRequired())
			protected.Use(middleware.RegistrationRateLimit())
			{
				protected.POST("", assetHandler.RegisterRoot)
				protected.POST("/derivative", assetHandler.RegisterDerivative)
			}
		}

		// Payment routes; open to any caller, the allow-list only
		// gates registration. Handlers still demand a resolved
		// principal, since a transfer needs a payer.
		payments := v1.Group("/payments")
		payments.Use(middleware.OptionalAuth())
		payments.Use(middleware.PaymentRateLimit())
		{
			payments.POST("/tip", paymentHandler.Tip)
			payments.POST("/royalty", paymentHandler.PayRoyalty)
			payments.POST("/claim", paymentHandler.Claim)
		}

		// Event log
		v1.GET("/events", middleware.OptionalAuth(), eventHandler.ListEvents)

		// Admin routes; ownership is enforced in the services against
		// the gate, not by a separate role claim.
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		{
			admin.POST("/authors", adminHandler.SetAuthorized)
			admin.PUT("/pause", adminHandler.SetPaused)
			admin.PUT("/platform-fee", adminHandler.SetPlatformFee)
			admin.PUT("/owner", adminHandler.TransferOwner)
			admin.POST("/collection", adminHandler.CreateCollection)
		}
	}

	return r
}
