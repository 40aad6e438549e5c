package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/plinian/pipeline/internal/records"
	"github.com/plinian/pipeline/internal/relay"
	"github.com/plinian/pipeline/internal/scoring"
)

// NewFirmEvent is the inbound new-firm notification, already unwrapped
// from the upstream automation envelope
type NewFirmEvent struct {
	PageID   string
	FirmName string
	Website  string
	Restart  bool
}

// NewFirmOutcome reports a completed dispatch
type NewFirmOutcome struct {
	RunID     string `json:"run_id"`
	FirmName  string `json:"firm"`
	Domain    string `json:"domain"`
	Restarted bool   `json:"restarted"`
}

// HandleNewFirm dispatches a firm to the enrichment relay and moves it
// to Researching. On a restart with a sparse payload, the full record
// is fetched first to recover the website. The restart flag is cleared
// only after the dispatch succeeds, so a failed dispatch stays
// retryable by the same flag.
func (o *Orchestrator) HandleNewFirm(ctx context.Context, event NewFirmEvent) (*NewFirmOutcome, error) {
	const op = "workflow.HandleNewFirm"

	if event.PageID == "" {
		return nil, inputError(op, "no page ID provided")
	}

	if event.Restart {
		log.Printf("[WORKFLOW]: restart enrichment triggered for page %s", event.PageID)
	}

	if event.Website == "" && event.Restart {
		firm, err := o.store.GetFirm(ctx, event.PageID)
		if err != nil {
			return nil, newError(KindProvider, op, err)
		}
		event.Website = firm.Website
		if event.FirmName == "" {
			event.FirmName = firm.Name
		}
	}

	domain := ExtractDomain(event.Website)
	if domain == "" {
		return nil, inputError(op, "no website/domain provided for firm %q", event.FirmName)
	}

	runID := uuid.NewString()
	payload := relay.FirmPayload{
		NotionPageID: event.PageID,
		FirmName:     event.FirmName,
		Domain:       domain,
		Website:      event.Website,
		CallbackURL:  o.callbackBase + "/webhook/clay/firm-enriched",
		RequestID:    runID,
	}

	if err := o.relay.DispatchFirm(ctx, payload); err != nil {
		return nil, newError(KindProvider, op, err)
	}

	update := records.FirmUpdate{Status: pointer(records.STATUS_RESEARCHING)}
	if event.Restart {
		update.RestartEnrichment = pointer(false)
	}
	if err := o.store.UpdateFirm(ctx, event.PageID, update); err != nil {
		return nil, newError(KindPartialUpdate, op, fmt.Errorf("dispatched but status not updated: %w", err))
	}

	log.Printf("[WORKFLOW]: dispatched %s (%s) to enrichment relay", event.FirmName, domain)

	return &NewFirmOutcome{
		RunID:     runID,
		FirmName:  event.FirmName,
		Domain:    domain,
		Restarted: event.Restart,
	}, nil
}

// PersonEvent is one enriched person from the relay
type PersonEvent struct {
	Name             string
	FirmName         string
	FirmPageID       string
	Email            string
	Title            string
	LinkedInURL      string
	Phone            string
	OrganizationType string
}

// ContactOutcome reports one prospect upsert
type ContactOutcome struct {
	ProspectID string `json:"page_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Created    bool   `json:"created"`
}

// FirmEnrichedEvent carries the relay's firmographic callback
type FirmEnrichedEvent struct {
	PageID      string
	LinkedInURL string
	Location    string
	Overview    string
	People      []PersonEvent
}

// FirmEnrichedOutcome reports what the callback wrote
type FirmEnrichedOutcome struct {
	RunID          string           `json:"run_id"`
	PageID         string           `json:"page_id"`
	UpdatedColumns []string         `json:"updates_applied"`
	Contacts       []ContactOutcome `json:"contacts,omitempty"`
}

// HandleFirmEnriched merges relay enrichment fields into the firm
// record and upserts any included people as contacts. The firm's
// status is untouched; scoring owns the move to Qualified.
func (o *Orchestrator) HandleFirmEnriched(ctx context.Context, event FirmEnrichedEvent) (*FirmEnrichedOutcome, error) {
	const op = "workflow.HandleFirmEnriched"

	if event.PageID == "" {
		return nil, inputError(op, "no notion_page_id provided")
	}

	update := records.FirmUpdate{}
	columns := []string{}

	if event.LinkedInURL != "" {
		update.LinkedInURL = &event.LinkedInURL
		columns = append(columns, records.FIRM_COLUMN_LINKEDIN)
	}
	if event.Location != "" {
		update.Location = &event.Location
		columns = append(columns, records.FIRM_COLUMN_LOCATION)
	}
	if event.Overview != "" {
		update.Overview = &event.Overview
		columns = append(columns, records.FIRM_COLUMN_OVERVIEW)
	}

	if len(columns) > 0 {
		if err := o.store.UpdateFirm(ctx, event.PageID, update); err != nil {
			return nil, newError(KindProvider, op, err)
		}
	}

	outcome := &FirmEnrichedOutcome{
		RunID:          uuid.NewString(),
		PageID:         event.PageID,
		UpdatedColumns: columns,
	}

	for _, person := range event.People {
		person.FirmPageID = event.PageID
		contact, err := o.HandlePersonEnriched(ctx, person)
		if err != nil {
			// The firm update already landed; report the partial state
			return outcome, newError(KindPartialUpdate, op, fmt.Errorf("firm updated but contact %q failed: %w", person.Name, err))
		}
		outcome.Contacts = append(outcome.Contacts, *contact)
	}

	return outcome, nil
}

// HandlePersonEnriched creates or updates a contact, matched by name
// and firm. Contacts with an email arrive Qualified; the rest start New.
func (o *Orchestrator) HandlePersonEnriched(ctx context.Context, event PersonEvent) (*ContactOutcome, error) {
	const op = "workflow.HandlePersonEnriched"

	if event.Name == "" {
		return nil, inputError(op, "no name provided")
	}

	status := records.STATUS_NEW
	if event.Email != "" {
		status = records.STATUS_QUALIFIED
	}

	prospect := records.Prospect{
		Name:        event.Name,
		Company:     event.FirmName,
		Status:      status,
		Email:       event.Email,
		Title:       event.Title,
		LinkedInURL: event.LinkedInURL,
		Phone:       event.Phone,
		OrgType:     records.MapOrgType(event.OrganizationType),
	}

	pageID, created, err := o.store.UpsertProspect(ctx, prospect)
	if err != nil {
		return nil, newError(KindProvider, op, err)
	}

	log.Printf("[WORKFLOW]: upserted contact %s (created=%t)", event.Name, created)

	return &ContactOutcome{
		ProspectID: pageID,
		Name:       event.Name,
		Status:     status,
		Created:    created,
	}, nil
}

// ScoreEvent triggers the two-phase scoring run for a firm
type ScoreEvent struct {
	PageID   string
	FirmName string
	Website  string
	Research string
}

// ScoreOutcome reports a completed scoring run
type ScoreOutcome struct {
	RunID    string          `json:"run_id"`
	FirmName string          `json:"firm"`
	Result   *scoring.Result `json:"-"`
}

// HandleFirmScore scores a firm against the roster and writes fit
// levels, qualification notes, the research overview, and the strong
// matches back to the record. Scoring completion moves the firm to
// Qualified.
func (o *Orchestrator) HandleFirmScore(ctx context.Context, event ScoreEvent) (*ScoreOutcome, error) {
	const op = "workflow.HandleFirmScore"

	if event.PageID == "" {
		return nil, inputError(op, "no notion_page_id provided")
	}

	result, err := o.scorer.Score(ctx, event.FirmName, event.Website, event.Research)
	if err != nil {
		var parseErr *scoring.ParseError
		if errors.As(err, &parseErr) {
			log.Printf("[WORKFLOW]: unparseable scoring response for %s: %s", event.FirmName, truncate(parseErr.Raw, 500))
			return nil, newError(KindParse, op, err)
		}
		return nil, newError(KindProvider, op, err)
	}

	update := records.FirmUpdate{
		Status:   pointer(records.STATUS_QUALIFIED),
		Notes:    pointer(result.NotesBlock()),
		Overview: pointer(result.Research),
		Fits:     make(map[string]string, len(result.Scores)),
	}
	for _, score := range result.Scores {
		update.Fits[score.Name] = score.Fit
	}
	if strong := result.StrongMatches(); len(strong) > 0 {
		update.BestMatches = strong
	}

	if err := o.store.UpdateFirm(ctx, event.PageID, update); err != nil {
		return nil, newError(KindPartialUpdate, op, fmt.Errorf("scored but record not updated: %w", err))
	}

	log.Printf("[WORKFLOW]: scored %s, best match %q", event.FirmName, result.BestMatch)

	return &ScoreOutcome{
		RunID:    uuid.NewString(),
		FirmName: event.FirmName,
		Result:   result,
	}, nil
}

// HandleManualScore re-scores an existing firm, reusing its stored
// overview as the enrichment input
func (o *Orchestrator) HandleManualScore(ctx context.Context, pageID string) (*ScoreOutcome, error) {
	const op = "workflow.HandleManualScore"

	if pageID == "" {
		return nil, inputError(op, "no page ID provided")
	}

	firm, err := o.store.GetFirm(ctx, pageID)
	if err != nil {
		return nil, newError(KindProvider, op, err)
	}

	return o.HandleFirmScore(ctx, ScoreEvent{
		PageID:   pageID,
		FirmName: firm.Name,
		Website:  firm.Website,
		Research: firm.Overview,
	})
}

// RecentFirms lists recently edited firms for the utility API
func (o *Orchestrator) RecentFirms(ctx context.Context, limit int) ([]records.FirmSummary, error) {
	firms, err := o.store.RecentFirms(ctx, limit)
	if err != nil {
		return nil, newError(KindProvider, "workflow.RecentFirms", err)
	}
	return firms, nil
}

func pointer[T any](v T) *T {
	return &v
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
