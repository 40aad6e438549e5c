package webhooks

import (
	"net/http"

	"github.com/plinian/pipeline/internal/workflow"
	"github.com/plinian/pipeline/pkg/sdk"
	"github.com/plinian/pipeline/pkg/utils"
)

// Package-level service state, set once during route registration
var (
	config       *utils.Config
	orchestrator *workflow.Orchestrator
)

// Init stores the module's dependencies
func Init(cfg *utils.Config, orch *workflow.Orchestrator) {
	config = cfg
	orchestrator = orch
}

// GetOrchestrator returns the shared orchestrator
func GetOrchestrator() *workflow.Orchestrator {
	return orchestrator
}

// errorResponse maps a workflow error onto an API response
func errorResponse(message string, err error) (int, any) {
	code := http.StatusInternalServerError
	switch workflow.KindOf(err) {
	case workflow.KindInput:
		code = http.StatusBadRequest
	case workflow.KindProvider:
		code = http.StatusBadGateway
	}

	return sdk.NewErrorResponse(code, message, err.Error()).AsGinResponse()
}
