package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinian/pipeline/internal/compose"
	"github.com/plinian/pipeline/internal/mail"
	"github.com/plinian/pipeline/internal/records"
	"github.com/plinian/pipeline/internal/relay"
	"github.com/plinian/pipeline/internal/scoring"
)

/** ---- FAKES ---- */

type fakeStore struct {
	firm        *records.Firm
	getErr      error
	updateErr   error
	firmUpdates []records.FirmUpdate

	prospectID  string
	created     bool
	upsertErr   error
	prospects   []records.Prospect

	outreachEntry  *records.OutreachEntry
	findErr        error
	entryUpdates   []records.OutreachUpdate
	entryUpdateErr error

	recent []records.FirmSummary
}

func (f *fakeStore) GetFirm(ctx context.Context, pageID string) (*records.Firm, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.firm, nil
}

func (f *fakeStore) UpdateFirm(ctx context.Context, pageID string, update records.FirmUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.firmUpdates = append(f.firmUpdates, update)
	return nil
}

func (f *fakeStore) UpsertProspect(ctx context.Context, prospect records.Prospect) (string, bool, error) {
	if f.upsertErr != nil {
		return "", false, f.upsertErr
	}
	f.prospects = append(f.prospects, prospect)
	return f.prospectID, f.created, nil
}

func (f *fakeStore) FindOutreachByThread(ctx context.Context, threadID string) (*records.OutreachEntry, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.outreachEntry, nil
}

func (f *fakeStore) UpdateOutreachEntry(ctx context.Context, pageID string, update records.OutreachUpdate) error {
	if f.entryUpdateErr != nil {
		return f.entryUpdateErr
	}
	f.entryUpdates = append(f.entryUpdates, update)
	return nil
}

func (f *fakeStore) RecentFirms(ctx context.Context, limit int) ([]records.FirmSummary, error) {
	return f.recent, nil
}

type fakeDispatcher struct {
	err      error
	payloads []relay.FirmPayload
}

func (f *fakeDispatcher) DispatchFirm(ctx context.Context, payload relay.FirmPayload) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeScorer struct {
	result *scoring.Result
	err    error
}

func (f *fakeScorer) Score(ctx context.Context, firmName, website, enrichment string) (*scoring.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeComposer struct {
	email *compose.Email
	err   error
}

func (f *fakeComposer) Compose(ctx context.Context, firm *records.Firm, contactName, contactTitle string) (*compose.Email, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.email, nil
}

type fakeDrafts struct {
	result *mail.DraftResult
	err    error
	drafts []mail.Draft
}

func (f *fakeDrafts) CreateDraft(ctx context.Context, draft mail.Draft) (*mail.DraftResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.drafts = append(f.drafts, draft)
	return f.result, nil
}

func newOrchestrator(store *fakeStore, dispatcher *fakeDispatcher, scorer *fakeScorer, composer *fakeComposer, drafts *fakeDrafts) *Orchestrator {
	return New(store, dispatcher, scorer, composer, drafts, "https://pipeline.example.com/")
}

/** ---- TESTS ---- */

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.Example.com/path", "example.com"},
		{"http://example.com", "example.com"},
		{"www.example.com", "example.com"},
		{"example.com/about?x=1", "example.com"},
		{"example.com", "example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExtractDomain(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ExtractDomain(got), "extraction should be idempotent")
		})
	}
}

func TestHandleNewFirm(t *testing.T) {
	t.Run("dispatch and status update", func(t *testing.T) {
		store := &fakeStore{}
		dispatcher := &fakeDispatcher{}
		o := newOrchestrator(store, dispatcher, nil, nil, nil)

		outcome, err := o.HandleNewFirm(context.Background(), NewFirmEvent{
			PageID:   "page-1",
			FirmName: "Acme Capital",
			Website:  "https://www.acmecapital.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "acmecapital.com", outcome.Domain)
		assert.NotEmpty(t, outcome.RunID)

		require.Len(t, dispatcher.payloads, 1)
		assert.Equal(t, "https://pipeline.example.com/webhook/clay/firm-enriched", dispatcher.payloads[0].CallbackURL)
		assert.Equal(t, outcome.RunID, dispatcher.payloads[0].RequestID)

		require.Len(t, store.firmUpdates, 1)
		assert.Equal(t, records.STATUS_RESEARCHING, *store.firmUpdates[0].Status)
		assert.Nil(t, store.firmUpdates[0].RestartEnrichment, "restart flag untouched on a normal run")
	})

	t.Run("restart recovers website from record", func(t *testing.T) {
		store := &fakeStore{firm: &records.Firm{Name: "Acme Capital", Website: "https://acmecapital.com"}}
		dispatcher := &fakeDispatcher{}
		o := newOrchestrator(store, dispatcher, nil, nil, nil)

		outcome, err := o.HandleNewFirm(context.Background(), NewFirmEvent{
			PageID:  "page-1",
			Restart: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "acmecapital.com", outcome.Domain)
		assert.Equal(t, "Acme Capital", outcome.FirmName)
		assert.True(t, outcome.Restarted)

		require.Len(t, store.firmUpdates, 1)
		assert.False(t, *store.firmUpdates[0].RestartEnrichment, "restart flag cleared after dispatch")
	})

	t.Run("failed dispatch leaves restart flag set", func(t *testing.T) {
		store := &fakeStore{firm: &records.Firm{Website: "https://acmecapital.com"}}
		dispatcher := &fakeDispatcher{err: errors.New("relay unreachable")}
		o := newOrchestrator(store, dispatcher, nil, nil, nil)

		_, err := o.HandleNewFirm(context.Background(), NewFirmEvent{PageID: "page-1", Restart: true})

		require.Error(t, err)
		assert.Equal(t, KindProvider, KindOf(err))
		assert.Empty(t, store.firmUpdates, "no writes after a failed dispatch")
	})

	t.Run("missing website rejected", func(t *testing.T) {
		o := newOrchestrator(&fakeStore{}, &fakeDispatcher{}, nil, nil, nil)

		_, err := o.HandleNewFirm(context.Background(), NewFirmEvent{PageID: "page-1", FirmName: "Acme"})

		require.Error(t, err)
		assert.Equal(t, KindInput, KindOf(err))
	})

	t.Run("missing page ID rejected", func(t *testing.T) {
		o := newOrchestrator(&fakeStore{}, &fakeDispatcher{}, nil, nil, nil)

		_, err := o.HandleNewFirm(context.Background(), NewFirmEvent{Website: "https://acme.com"})

		require.Error(t, err)
		assert.Equal(t, KindInput, KindOf(err))
	})

	t.Run("status write failure is a partial update", func(t *testing.T) {
		store := &fakeStore{updateErr: errors.New("store down")}
		o := newOrchestrator(store, &fakeDispatcher{}, nil, nil, nil)

		_, err := o.HandleNewFirm(context.Background(), NewFirmEvent{PageID: "page-1", Website: "https://acme.com"})

		require.Error(t, err)
		assert.Equal(t, KindPartialUpdate, KindOf(err))
	})
}

func TestHandleFirmEnriched(t *testing.T) {
	t.Run("merges fields and upserts people", func(t *testing.T) {
		store := &fakeStore{prospectID: "prospect-1", created: true}
		o := newOrchestrator(store, nil, nil, nil, nil)

		outcome, err := o.HandleFirmEnriched(context.Background(), FirmEnrichedEvent{
			PageID:      "page-1",
			LinkedInURL: "https://linkedin.com/company/acme",
			Location:    "Boston, MA",
			People: []PersonEvent{
				{Name: "Jordan Avery", FirmName: "Acme Capital", Email: "jordan@acme.com"},
			},
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{records.FIRM_COLUMN_LINKEDIN, records.FIRM_COLUMN_LOCATION}, outcome.UpdatedColumns)

		require.Len(t, store.firmUpdates, 1)
		assert.Nil(t, store.firmUpdates[0].Status, "enrichment merge does not change status")

		require.Len(t, outcome.Contacts, 1)
		assert.True(t, outcome.Contacts[0].Created)
	})

	t.Run("empty payload writes nothing", func(t *testing.T) {
		store := &fakeStore{}
		o := newOrchestrator(store, nil, nil, nil, nil)

		outcome, err := o.HandleFirmEnriched(context.Background(), FirmEnrichedEvent{PageID: "page-1"})

		require.NoError(t, err)
		assert.Empty(t, outcome.UpdatedColumns)
		assert.Empty(t, store.firmUpdates)
	})

	t.Run("missing page ID rejected", func(t *testing.T) {
		o := newOrchestrator(&fakeStore{}, nil, nil, nil, nil)

		_, err := o.HandleFirmEnriched(context.Background(), FirmEnrichedEvent{})
		assert.Equal(t, KindInput, KindOf(err))
	})

	t.Run("contact failure after firm update is partial", func(t *testing.T) {
		store := &fakeStore{upsertErr: errors.New("store down")}
		o := newOrchestrator(store, nil, nil, nil, nil)

		outcome, err := o.HandleFirmEnriched(context.Background(), FirmEnrichedEvent{
			PageID:   "page-1",
			Overview: "Diversified allocator",
			People:   []PersonEvent{{Name: "Jordan Avery"}},
		})

		require.Error(t, err)
		assert.Equal(t, KindPartialUpdate, KindOf(err))
		require.NotNil(t, outcome)
		assert.Equal(t, []string{records.FIRM_COLUMN_OVERVIEW}, outcome.UpdatedColumns)
	})
}

func TestHandlePersonEnriched(t *testing.T) {
	t.Run("email means qualified", func(t *testing.T) {
		store := &fakeStore{prospectID: "prospect-1", created: true}
		o := newOrchestrator(store, nil, nil, nil, nil)

		outcome, err := o.HandlePersonEnriched(context.Background(), PersonEvent{
			Name:             "Jordan Avery",
			FirmName:         "Acme Capital",
			Email:            "jordan@acme.com",
			OrganizationType: "single family office",
		})

		require.NoError(t, err)
		assert.Equal(t, records.STATUS_QUALIFIED, outcome.Status)

		require.Len(t, store.prospects, 1)
		assert.Equal(t, "Family Office", store.prospects[0].OrgType)
	})

	t.Run("no email means new", func(t *testing.T) {
		store := &fakeStore{prospectID: "prospect-1"}
		o := newOrchestrator(store, nil, nil, nil, nil)

		outcome, err := o.HandlePersonEnriched(context.Background(), PersonEvent{Name: "Jordan Avery"})

		require.NoError(t, err)
		assert.Equal(t, records.STATUS_NEW, outcome.Status)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		o := newOrchestrator(&fakeStore{}, nil, nil, nil, nil)

		_, err := o.HandlePersonEnriched(context.Background(), PersonEvent{FirmName: "Acme"})
		assert.Equal(t, KindInput, KindOf(err))
	})
}

func scoringResult() *scoring.Result {
	return &scoring.Result{
		Research:     "Acme is a diversified family office.",
		BestMatch:    "StoneRiver",
		OverallNotes: "Worth a conversation.",
		Scores: []scoring.OfferingScore{
			{Key: "stoneriver", Name: "StoneRiver", Fit: scoring.FIT_STRONG, Rationale: "Multifamily interest"},
			{Key: "icw", Name: "ICW", Fit: scoring.FIT_NA, Rationale: "No public equities"},
		},
	}
}

func TestHandleFirmScore(t *testing.T) {
	t.Run("writes scores and qualifies", func(t *testing.T) {
		store := &fakeStore{}
		o := newOrchestrator(store, nil, &fakeScorer{result: scoringResult()}, nil, nil)

		outcome, err := o.HandleFirmScore(context.Background(), ScoreEvent{
			PageID:   "page-1",
			FirmName: "Acme Capital",
			Website:  "https://acme.com",
			Research: "enrichment text",
		})

		require.NoError(t, err)
		assert.Equal(t, "StoneRiver", outcome.Result.BestMatch)

		require.Len(t, store.firmUpdates, 1)
		update := store.firmUpdates[0]
		assert.Equal(t, records.STATUS_QUALIFIED, *update.Status)
		assert.Equal(t, scoring.FIT_STRONG, update.Fits["StoneRiver"])
		assert.Equal(t, scoring.FIT_NA, update.Fits["ICW"])
		assert.Equal(t, []string{"StoneRiver"}, update.BestMatches)
		assert.Contains(t, *update.Notes, "Best Match: StoneRiver")
		assert.Equal(t, "Acme is a diversified family office.", *update.Overview)
	})

	t.Run("parse error classified", func(t *testing.T) {
		scorer := &fakeScorer{err: &scoring.ParseError{Raw: "not json", Err: errors.New("bad json")}}
		o := newOrchestrator(&fakeStore{}, nil, scorer, nil, nil)

		_, err := o.HandleFirmScore(context.Background(), ScoreEvent{PageID: "page-1"})
		assert.Equal(t, KindParse, KindOf(err))
	})

	t.Run("provider error classified", func(t *testing.T) {
		o := newOrchestrator(&fakeStore{}, nil, &fakeScorer{err: errors.New("rate limited")}, nil, nil)

		_, err := o.HandleFirmScore(context.Background(), ScoreEvent{PageID: "page-1"})
		assert.Equal(t, KindProvider, KindOf(err))
	})

	t.Run("write failure after scoring is partial", func(t *testing.T) {
		store := &fakeStore{updateErr: errors.New("store down")}
		o := newOrchestrator(store, nil, &fakeScorer{result: scoringResult()}, nil, nil)

		_, err := o.HandleFirmScore(context.Background(), ScoreEvent{PageID: "page-1"})
		assert.Equal(t, KindPartialUpdate, KindOf(err))
	})

	t.Run("missing page ID rejected", func(t *testing.T) {
		o := newOrchestrator(&fakeStore{}, nil, &fakeScorer{}, nil, nil)

		_, err := o.HandleFirmScore(context.Background(), ScoreEvent{FirmName: "Acme"})
		assert.Equal(t, KindInput, KindOf(err))
	})
}

func TestHandleManualScore(t *testing.T) {
	store := &fakeStore{firm: &records.Firm{
		Name:     "Acme Capital",
		Website:  "https://acme.com",
		Overview: "Existing overview text",
	}}
	o := newOrchestrator(store, nil, &fakeScorer{result: scoringResult()}, nil, nil)

	outcome, err := o.HandleManualScore(context.Background(), "page-1")

	require.NoError(t, err)
	assert.Equal(t, "Acme Capital", outcome.FirmName)
	require.Len(t, store.firmUpdates, 1)
}

func TestHandleOutreach(t *testing.T) {
	firm := &records.Firm{ID: "page-1", Name: "Acme Capital", Website: "https://acme.com"}
	email := &compose.Email{
		PrimaryClient: "StoneRiver",
		Subject:       "StoneRiver and Acme Capital",
		Body:          "Hi Jordan,\n\n...\n\n" + compose.SignatureBlock,
	}

	t.Run("full run with draft", func(t *testing.T) {
		store := &fakeStore{firm: firm}
		drafts := &fakeDrafts{result: &mail.DraftResult{DraftID: "d1", URL: "https://mail.google.com/d1"}}
		o := newOrchestrator(store, nil, nil, &fakeComposer{email: email}, drafts)

		outcome, err := o.HandleOutreach(context.Background(), OutreachEvent{
			FirmID:       "page-1",
			ContactName:  "Jordan Avery",
			ContactTitle: "CIO",
			ContactEmail: "jordan@acme.com",
		})

		require.NoError(t, err)
		assert.False(t, outcome.FallbackUsed)
		assert.True(t, outcome.DraftCreated)
		assert.True(t, outcome.RecordUpdated)
		assert.Equal(t, "https://mail.google.com/d1", outcome.DraftURL)

		require.Len(t, drafts.drafts, 1)
		assert.Equal(t, "jordan@acme.com", drafts.drafts[0].To)

		require.Len(t, store.firmUpdates, 1)
		update := store.firmUpdates[0]
		assert.Equal(t, "Jordan Avery", *update.OutreachContact)
		assert.Equal(t, "StoneRiver and Acme Capital", *update.OutreachSubject)
		assert.NotNil(t, update.LastOutreachRun)
		assert.Nil(t, update.Status, "outreach does not change firm status")
	})

	t.Run("compose failure falls back", func(t *testing.T) {
		store := &fakeStore{firm: firm}
		o := newOrchestrator(store, nil, nil, &fakeComposer{err: errors.New("llm down")}, &fakeDrafts{})

		outcome, err := o.HandleOutreach(context.Background(), OutreachEvent{FirmID: "page-1"})

		require.NoError(t, err)
		assert.True(t, outcome.FallbackUsed)
		assert.Equal(t, "General", outcome.Email.PrimaryClient)
		assert.NotEmpty(t, outcome.Email.Body)
		assert.True(t, outcome.RecordUpdated)

		require.Len(t, store.firmUpdates, 1)
		assert.Equal(t, "Investment Team", *store.firmUpdates[0].OutreachContact)
	})

	t.Run("draft failure is non-fatal", func(t *testing.T) {
		store := &fakeStore{firm: firm}
		drafts := &fakeDrafts{err: errors.New("gmail unavailable")}
		o := newOrchestrator(store, nil, nil, &fakeComposer{email: email}, drafts)

		outcome, err := o.HandleOutreach(context.Background(), OutreachEvent{
			FirmID:       "page-1",
			ContactEmail: "jordan@acme.com",
		})

		require.NoError(t, err)
		assert.False(t, outcome.DraftCreated)
		assert.Empty(t, outcome.DraftURL)
		assert.True(t, outcome.RecordUpdated)
	})

	t.Run("no contact email skips drafting", func(t *testing.T) {
		store := &fakeStore{firm: firm}
		drafts := &fakeDrafts{}
		o := newOrchestrator(store, nil, nil, &fakeComposer{email: email}, drafts)

		outcome, err := o.HandleOutreach(context.Background(), OutreachEvent{FirmID: "page-1"})

		require.NoError(t, err)
		assert.False(t, outcome.DraftCreated)
		assert.Empty(t, drafts.drafts)
	})

	t.Run("missing firm ID rejected", func(t *testing.T) {
		o := newOrchestrator(&fakeStore{}, nil, nil, &fakeComposer{email: email}, &fakeDrafts{})

		_, err := o.HandleOutreach(context.Background(), OutreachEvent{})
		assert.Equal(t, KindInput, KindOf(err))
	})

	t.Run("record write failure is partial", func(t *testing.T) {
		store := &fakeStore{firm: firm, updateErr: errors.New("store down")}
		o := newOrchestrator(store, nil, nil, &fakeComposer{email: email}, &fakeDrafts{})

		outcome, err := o.HandleOutreach(context.Background(), OutreachEvent{FirmID: "page-1"})

		require.Error(t, err)
		assert.Equal(t, KindPartialUpdate, KindOf(err))
		require.NotNil(t, outcome, "outcome reports what was produced before the failure")
		assert.NotNil(t, outcome.Email)
	})
}

func TestHandleReply(t *testing.T) {
	received := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

	t.Run("negative reply logged", func(t *testing.T) {
		store := &fakeStore{outreachEntry: &records.OutreachEntry{
			ID:       "entry-1",
			ThreadID: "thread-1",
			Notes:    "Initial outreach sent.",
		}}
		o := newOrchestrator(store, nil, nil, nil, nil)

		outcome, err := o.HandleReply(context.Background(), ReplyEvent{
			ThreadID:     "thread-1",
			SenderEmail:  "jordan@acme.com",
			Body:         "Thanks, but we're not interested.",
			ReceivedDate: received,
		})

		require.NoError(t, err)
		assert.True(t, outcome.Found)
		assert.Equal(t, "Responded — Negative", outcome.Status)
		assert.Equal(t, "Declined", outcome.Outcome)

		require.Len(t, store.entryUpdates, 1)
		update := store.entryUpdates[0]
		assert.False(t, *update.FollowUpRequired)
		assert.Contains(t, *update.Notes, "Initial outreach sent.")
		assert.Contains(t, *update.Notes, "[Response received 2026-08-20]")
	})

	t.Run("unknown thread is not found, not an error", func(t *testing.T) {
		store := &fakeStore{}
		o := newOrchestrator(store, nil, nil, nil, nil)

		outcome, err := o.HandleReply(context.Background(), ReplyEvent{
			ThreadID:    "thread-unknown",
			SenderEmail: "jordan@acme.com",
		})

		require.NoError(t, err)
		assert.False(t, outcome.Found)
		assert.Empty(t, store.entryUpdates)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		o := newOrchestrator(&fakeStore{}, nil, nil, nil, nil)

		_, err := o.HandleReply(context.Background(), ReplyEvent{ThreadID: "thread-1"})
		assert.Equal(t, KindInput, KindOf(err))
	})
}
