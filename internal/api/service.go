package api

import (
	"context"
	"fmt"
	"log"

	"github.com/plinian/pipeline/internal/compose"
	"github.com/plinian/pipeline/internal/llm"
	"github.com/plinian/pipeline/internal/mail"
	"github.com/plinian/pipeline/internal/records"
	"github.com/plinian/pipeline/internal/relay"
	"github.com/plinian/pipeline/internal/roster"
	"github.com/plinian/pipeline/internal/scoring"
	"github.com/plinian/pipeline/internal/workflow"
	"github.com/plinian/pipeline/pkg/utils"
)

// buildOrchestrator constructs the pipeline's collaborators from
// config and wires them into the orchestrator. The Gmail draft
// service is optional; without credentials the outreach flow still
// runs and records everything except a real draft.
func buildOrchestrator(cfg *utils.Config) (*workflow.Orchestrator, error) {
	store, err := records.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}

	dispatcher, err := relay.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("enrichment relay: %w", err)
	}

	completer, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	offerings, err := roster.Load(cfg.Get("OFFERINGS_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("offering roster: %w", err)
	}

	var drafts mail.DraftService
	if cfg.Get("GMAIL_CREDENTIALS_JSON") != "" {
		gmail, err := mail.NewGmailService(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("gmail drafts: %w", err)
		}
		drafts = gmail
	} else {
		log.Println("[API-MAIN]: GMAIL_CREDENTIALS_JSON not set, outreach will run without drafts")
		drafts = mail.Disabled{}
	}

	return workflow.New(
		store,
		dispatcher,
		scoring.NewEngine(completer, offerings),
		compose.NewComposer(completer, offerings, cfg),
		drafts,
		cfg.Get("PUBLIC_URL"),
	), nil
}
