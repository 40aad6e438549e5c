package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/plinian/pipeline/internal/compose"
	"github.com/plinian/pipeline/internal/mail"
	"github.com/plinian/pipeline/internal/records"
	"github.com/plinian/pipeline/internal/replies"
)

// OutreachEvent triggers draft generation for a firm
type OutreachEvent struct {
	FirmID       string
	ContactName  string
	ContactTitle string
	ContactEmail string
}

// OutreachOutcome reports which sub-steps of the outreach run
// completed; generation, draft creation, and the record write can
// succeed or fail independently
type OutreachOutcome struct {
	RunID         string         `json:"run_id"`
	FirmID        string         `json:"firm_id"`
	FirmName      string         `json:"firm"`
	Email         *compose.Email `json:"email"`
	DraftURL      string         `json:"draft_url,omitempty"`
	DraftCreated  bool           `json:"draft_created"`
	FallbackUsed  bool           `json:"fallback_used"`
	RecordUpdated bool           `json:"record_updated"`
}

// HandleOutreach loads the firm, composes a personalized email
// (falling back to the deterministic template on any generation
// failure), creates a mail draft, and writes the outreach metadata
// back onto the firm. Draft creation failure is non-fatal; the run
// still records what it produced. Firm status is untouched.
func (o *Orchestrator) HandleOutreach(ctx context.Context, event OutreachEvent) (*OutreachOutcome, error) {
	const op = "workflow.HandleOutreach"

	if event.FirmID == "" {
		return nil, inputError(op, "no firm_id provided")
	}

	firm, err := o.store.GetFirm(ctx, event.FirmID)
	if err != nil {
		return nil, newError(KindProvider, op, err)
	}

	outcome := &OutreachOutcome{
		RunID:    uuid.NewString(),
		FirmID:   event.FirmID,
		FirmName: firm.Name,
	}

	email, err := o.composer.Compose(ctx, firm, event.ContactName, event.ContactTitle)
	if err != nil {
		log.Printf("[WORKFLOW]: outreach generation failed for %s, using fallback: %v", firm.Name, err)
		email = compose.Fallback(firm)
		outcome.FallbackUsed = true
	}
	outcome.Email = email

	if event.ContactEmail != "" {
		result, draftErr := o.drafts.CreateDraft(ctx, mail.Draft{
			To:      event.ContactEmail,
			Subject: email.Subject,
			Body:    email.Body,
		})
		if draftErr != nil {
			log.Printf("[WORKFLOW]: draft creation failed for %s: %v", firm.Name, draftErr)
		} else {
			outcome.DraftCreated = true
			outcome.DraftURL = result.URL
		}
	}

	contact := event.ContactName
	if contact == "" {
		contact = "Investment Team"
	}

	update := records.FirmUpdate{
		OutreachContact: &contact,
		OutreachSubject: &email.Subject,
		LastOutreachRun: pointer(time.Now().UTC()),
	}
	if event.ContactEmail != "" {
		update.OutreachEmail = &event.ContactEmail
	}
	if outcome.DraftURL != "" {
		update.OutreachDraftURL = &outcome.DraftURL
	}

	if err := o.store.UpdateFirm(ctx, event.FirmID, update); err != nil {
		return outcome, newError(KindPartialUpdate, op, fmt.Errorf("draft prepared but record not updated: %w", err))
	}
	outcome.RecordUpdated = true

	return outcome, nil
}

// ReplyEvent is an inbound email reply on an outreach thread
type ReplyEvent struct {
	ThreadID     string
	SenderEmail  string
	Body         string
	ReceivedDate time.Time
}

// ReplyOutcome reports how a reply was logged
type ReplyOutcome struct {
	RunID   string `json:"run_id"`
	Found   bool   `json:"found"`
	EntryID string `json:"page_id,omitempty"`
	Status  string `json:"response_status,omitempty"`
	Outcome string `json:"outcome,omitempty"`
}

const replySnippetMax = 200

// HandleReply matches a reply to its outreach log entry, classifies
// the tone, and records the response. An unmatched thread is reported
// as not found rather than failed.
func (o *Orchestrator) HandleReply(ctx context.Context, event ReplyEvent) (*ReplyOutcome, error) {
	const op = "workflow.HandleReply"

	if event.ThreadID == "" || event.SenderEmail == "" {
		return nil, inputError(op, "missing required fields: thread_id, sender_email")
	}
	if event.ReceivedDate.IsZero() {
		event.ReceivedDate = time.Now().UTC()
	}

	entry, err := o.store.FindOutreachByThread(ctx, event.ThreadID)
	if err != nil {
		return nil, newError(KindProvider, op, err)
	}

	outcome := &ReplyOutcome{RunID: uuid.NewString()}
	if entry == nil {
		log.Printf("[WORKFLOW]: no outreach entry found for thread %s", event.ThreadID)
		return outcome, nil
	}
	outcome.Found = true
	outcome.EntryID = entry.ID

	tone := replies.Classify(event.Body)
	outcome.Status = tone.Status()
	outcome.Outcome = tone.Outcome()

	update := records.OutreachUpdate{
		ResponseStatus:   pointer(outcome.Status),
		ResponseDate:     pointer(event.ReceivedDate),
		Outcome:          pointer(outcome.Outcome),
		FollowUpRequired: pointer(false),
	}

	if event.Body != "" {
		snippet := fmt.Sprintf("\n\n[Response received %s]\n%s...",
			event.ReceivedDate.Format(records.DATE_FORMAT), truncate(event.Body, replySnippetMax))
		update.Notes = pointer(entry.Notes + snippet)
	}

	if err := o.store.UpdateOutreachEntry(ctx, entry.ID, update); err != nil {
		return outcome, newError(KindPartialUpdate, op, fmt.Errorf("reply classified but entry not updated: %w", err))
	}

	log.Printf("[WORKFLOW]: logged %s reply from %s on thread %s", outcome.Status, event.SenderEmail, event.ThreadID)

	return outcome, nil
}
