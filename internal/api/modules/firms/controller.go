package firms

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plinian/pipeline/internal/records"
	"github.com/plinian/pipeline/internal/workflow"
	"github.com/plinian/pipeline/pkg/sdk"
)

// Package-level service state, set once during route registration
var orchestrator *workflow.Orchestrator

// Init stores the module's dependencies
func Init(orch *workflow.Orchestrator) {
	orchestrator = orch
}

// postScoreFirm manually triggers scoring for an existing firm,
// useful for re-scoring or testing
func postScoreFirm(c *gin.Context) {
	pageID := c.Param("id")

	outcome, err := orchestrator.HandleManualScore(c.Request.Context(), pageID)
	if err != nil {
		code := http.StatusInternalServerError
		if workflow.KindOf(err) == workflow.KindInput {
			code = http.StatusBadRequest
		}
		c.JSON(sdk.NewErrorResponse(code, "Failed to score firm", err.Error()).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Firm scored", outcome).AsGinResponse())
}

const defaultRecentLimit = 20

// getRecentFirms lists recently edited firms, newest first
func getRecentFirms(c *gin.Context) {
	limit := defaultRecentLimit
	if param := c.Query("limit"); param != "" {
		if parsed, err := strconv.Atoi(param); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	firms, err := orchestrator.RecentFirms(c.Request.Context(), limit)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Failed to list firms", err.Error()).AsGinResponse())
		return
	}

	c.JSON(http.StatusOK, sdk.FirmList[records.FirmSummary]{Firms: firms})
}
