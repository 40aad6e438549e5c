package webhooks

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plinian/pipeline/internal/records"
	"github.com/plinian/pipeline/internal/workflow"
	"github.com/plinian/pipeline/pkg/sdk"
)

// postNewFirm handles the CRM automation that fires when a firm is
// added (or its restart flag is checked)
func postNewFirm(c *gin.Context) {
	var req sdk.NewFirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	payload := req.Unwrap()
	event := workflow.NewFirmEvent{
		PageID:   payload.ID,
		FirmName: payload.FirmName(records.FIRM_COLUMN_NAME),
		Website:  payload.Website(records.FIRM_COLUMN_WEBSITE),
		Restart:  payload.Checkbox(records.FIRM_COLUMN_RESTART),
	}

	outcome, err := GetOrchestrator().HandleNewFirm(c.Request.Context(), event)
	if err != nil {
		c.JSON(errorResponse("Failed to dispatch firm for enrichment", err))
		return
	}

	c.JSON(sdk.NewSuccessResponse("Firm dispatched for enrichment", outcome).AsGinResponse())
}

// postFirmEnriched handles the relay's firmographic callback
func postFirmEnriched(c *gin.Context) {
	var req sdk.FirmEnrichedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	event := workflow.FirmEnrichedEvent{
		PageID:      req.NotionPageID,
		LinkedInURL: req.LinkedInURL,
		Location:    req.Location,
		Overview:    req.FirmOverview,
	}
	for _, person := range req.People {
		event.People = append(event.People, personEvent(person))
	}

	outcome, err := GetOrchestrator().HandleFirmEnriched(c.Request.Context(), event)
	if err != nil {
		c.JSON(errorResponse("Failed to apply firm enrichment", err))
		return
	}

	c.JSON(sdk.NewSuccessResponse("Firm enrichment applied", outcome).AsGinResponse())
}

// postFirmScore handles the relay's scoring callback. Research text
// may arrive in the body or as the ?research= query parameter.
func postFirmScore(c *gin.Context) {
	var req sdk.FirmScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	research := c.Query("research")
	if research == "" {
		research = req.FirmResearch
	}

	outcome, err := GetOrchestrator().HandleFirmScore(c.Request.Context(), workflow.ScoreEvent{
		PageID:   req.NotionPageID,
		FirmName: req.FirmName,
		Website:  req.Website,
		Research: research,
	})
	if err != nil {
		c.JSON(errorResponse("Failed to score firm", err))
		return
	}

	c.JSON(sdk.NewSuccessResponse("Firm scored", outcome).AsGinResponse())
}

// postPersonEnriched handles the relay's per-person callback
func postPersonEnriched(c *gin.Context) {
	var req sdk.PersonPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	outcome, err := GetOrchestrator().HandlePersonEnriched(c.Request.Context(), personEvent(req))
	if err != nil {
		c.JSON(errorResponse("Failed to upsert contact", err))
		return
	}

	c.JSON(sdk.NewSuccessResponse("Contact upserted", outcome).AsGinResponse())
}

// postOutreach handles the CRM button that kicks off draft generation
func postOutreach(c *gin.Context) {
	var req sdk.OutreachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	outcome, err := GetOrchestrator().HandleOutreach(c.Request.Context(), workflow.OutreachEvent{
		FirmID:       req.FirmID,
		ContactName:  req.ContactName,
		ContactTitle: req.ContactTitle,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		c.JSON(errorResponse("Outreach workflow failed", err))
		return
	}

	c.JSON(sdk.NewSuccessResponse("Outreach workflow completed", outcome).AsGinResponse())
}

// postEmailReply handles forwarded replies on outreach threads
func postEmailReply(c *gin.Context) {
	var req sdk.EmailReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	event := workflow.ReplyEvent{
		ThreadID:    req.ThreadID,
		SenderEmail: req.SenderEmail,
		Body:        req.EmailBody,
	}
	if req.ReceivedDate != "" {
		if received, err := time.Parse(time.RFC3339, req.ReceivedDate); err == nil {
			event.ReceivedDate = received
		} else if received, err := time.Parse(records.DATE_FORMAT, req.ReceivedDate); err == nil {
			event.ReceivedDate = received
		}
	}

	outcome, err := GetOrchestrator().HandleReply(c.Request.Context(), event)
	if err != nil {
		c.JSON(errorResponse("Failed to process reply", err))
		return
	}

	message := "Reply logged"
	if !outcome.Found {
		message = "No outreach entry found for thread"
	}
	c.JSON(sdk.NewSuccessResponse(message, outcome).AsGinResponse())
}

func personEvent(p sdk.PersonPayload) workflow.PersonEvent {
	return workflow.PersonEvent{
		Name:             p.Name,
		FirmName:         p.FirmName,
		FirmPageID:       p.NotionPageID,
		Email:            p.Email,
		Title:            p.Title,
		LinkedInURL:      p.LinkedInURL,
		Phone:            p.Phone,
		OrganizationType: p.OrganizationType,
	}
}
