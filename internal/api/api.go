package api

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/plinian/pipeline/pkg/utils"

	firms_module "github.com/plinian/pipeline/internal/api/modules/firms"
	health_module "github.com/plinian/pipeline/internal/api/modules/health"
	webhooks_module "github.com/plinian/pipeline/internal/api/modules/webhooks"
)

func Start(cfg *utils.Config) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	// Add app level settings/routes
	engine := gin.Default()

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Webhook-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Build the orchestrator shared by the webhook and API modules
	orchestrator, err := buildOrchestrator(cfg)
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize pipeline: ", err)
	}

	// Health endpoints live at the root for platform probes
	health_module.RegisterRoutes(&engine.RouterGroup)

	// Webhook surface consumed by CRM automations and the relay
	webhooks_module.RegisterRoutes(engine.Group("/webhook"), cfg, orchestrator)

	// Utility API surface
	firms_module.RegisterRoutes(engine.Group("/api"), orchestrator)

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}
