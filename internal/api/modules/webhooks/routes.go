package webhooks

import (
	"github.com/gin-gonic/gin"

	"github.com/plinian/pipeline/internal/workflow"
	"github.com/plinian/pipeline/pkg/utils"
)

// Register routes for the webhook module
func RegisterRoutes(g *gin.RouterGroup, cfg *utils.Config, orchestrator *workflow.Orchestrator) {
	Init(cfg, orchestrator)

	g.Use(signatureMiddleware(cfg))

	// CRM automation triggers
	g.POST("/notion/new-firm", postNewFirm)
	g.POST("/outreach", postOutreach)

	// Enrichment relay callbacks
	g.POST("/clay/firm-enriched", postFirmEnriched)
	g.POST("/clay/firm-score", postFirmScore)
	g.POST("/clay/person-enriched", postPersonEnriched)

	// Inbox watcher
	g.POST("/email-reply", postEmailReply)
}
