package firms

import (
	"github.com/gin-gonic/gin"

	"github.com/plinian/pipeline/internal/workflow"
)

// Register routes for the firms module
func RegisterRoutes(g *gin.RouterGroup, orch *workflow.Orchestrator) {
	Init(orch)

	g.POST("/score-firm/:id", postScoreFirm) // Manually re-score an existing firm
	g.GET("/firms/recent", getRecentFirms)   // List recently edited firms
}
