package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plinian/pipeline/pkg/sdk"
)

// getStatus reports service identity and the webhook surface
func getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, sdk.HealthResponse{
		Status:  "healthy",
		Service: "plinian-pipeline",
		Endpoints: []string{
			"/webhook/notion/new-firm",
			"/webhook/clay/firm-enriched",
			"/webhook/clay/firm-score",
			"/webhook/clay/person-enriched",
			"/webhook/outreach",
			"/webhook/email-reply",
		},
	})
}

// getHealth is the minimal probe endpoint
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
