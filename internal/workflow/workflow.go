// Package workflow is the orchestrator for the enrichment pipeline:
// it reacts to inbound events and sequences the record store, the
// enrichment relay, the scoring engine, the outreach composer, and
// the mail draft service.
package workflow

import (
	"context"
	"strings"

	"github.com/plinian/pipeline/internal/compose"
	"github.com/plinian/pipeline/internal/mail"
	"github.com/plinian/pipeline/internal/records"
	"github.com/plinian/pipeline/internal/relay"
	"github.com/plinian/pipeline/internal/scoring"
)

// Store is the record-store surface the orchestrator needs
type Store interface {
	GetFirm(ctx context.Context, pageID string) (*records.Firm, error)
	UpdateFirm(ctx context.Context, pageID string, update records.FirmUpdate) error
	UpsertProspect(ctx context.Context, prospect records.Prospect) (string, bool, error)
	FindOutreachByThread(ctx context.Context, threadID string) (*records.OutreachEntry, error)
	UpdateOutreachEntry(ctx context.Context, pageID string, update records.OutreachUpdate) error
	RecentFirms(ctx context.Context, limit int) ([]records.FirmSummary, error)
}

// Scorer runs the two-phase fit analysis
type Scorer interface {
	Score(ctx context.Context, firmName, website, enrichment string) (*scoring.Result, error)
}

// Composer drafts outreach emails
type Composer interface {
	Compose(ctx context.Context, firm *records.Firm, contactName, contactTitle string) (*compose.Email, error)
}

// Orchestrator wires the pipeline's collaborators together. All
// dependencies are injected so tests can substitute fakes.
type Orchestrator struct {
	store    Store
	relay    relay.Dispatcher
	scorer   Scorer
	composer Composer
	drafts   mail.DraftService

	// callbackBase is this service's public URL, used to tell the
	// relay where enrichment results should land
	callbackBase string
}

// New builds an orchestrator
func New(store Store, dispatcher relay.Dispatcher, scorer Scorer, composer Composer, drafts mail.DraftService, callbackBase string) *Orchestrator {
	return &Orchestrator{
		store:        store,
		relay:        dispatcher,
		scorer:       scorer,
		composer:     composer,
		drafts:       drafts,
		callbackBase: strings.TrimRight(callbackBase, "/"),
	}
}

// ExtractDomain reduces a website URL to a bare lowercase domain.
// Applying it to its own output is a no-op.
func ExtractDomain(website string) string {
	domain := strings.TrimSpace(website)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	if idx := strings.IndexAny(domain, "/?#"); idx >= 0 {
		domain = domain[:idx]
	}
	return strings.ToLower(domain)
}
