package records

import (
	"context"
	"fmt"
	"net/http"
	"time"

	notionapi "github.com/dstotijn/go-notion"

	"github.com/plinian/pipeline/pkg/utils"
)

// Store wraps the Notion API client with typed access to the three
// pipeline databases: Prospect Firms, Prospects, and the Outreach Log.
type Store struct {
	client      *notionapi.Client
	firmsDB     string
	prospectsDB string
	outreachDB  string
}

// NewStore builds a store from config. The firms database is
// required; the prospects and outreach databases are optional and
// their operations fail with a clear error when unset.
func NewStore(config *utils.Config) (*Store, error) {
	token := config.Get("NOTION_API_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("NOTION_API_TOKEN not configured")
	}

	firmsDB := config.Get("NOTION_DATABASE_FIRMS_ID")
	if firmsDB == "" {
		return nil, fmt.Errorf("NOTION_DATABASE_FIRMS_ID not configured")
	}

	httpClient := &http.Client{Timeout: 20 * time.Second}

	return &Store{
		client:      notionapi.NewClient(token, notionapi.WithHTTPClient(httpClient)),
		firmsDB:     firmsDB,
		prospectsDB: config.Get("NOTION_DATABASE_PROSPECTS_ID"),
		outreachDB:  config.Get("NOTION_DATABASE_OUTREACH_LOG_ID"),
	}, nil
}

// GetFirm fetches a firm page by ID and parses it into the typed view
func (s *Store) GetFirm(ctx context.Context, pageID string) (*Firm, error) {
	page, err := s.client.FindPageByID(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch firm %s: %w", pageID, err)
	}

	return FirmFromPage(&page), nil
}

// UpdateFirm applies a partial update to a firm page. An empty update
// is a no-op.
func (s *Store) UpdateFirm(ctx context.Context, pageID string, update FirmUpdate) error {
	props := update.properties()
	if len(props) == 0 {
		return nil
	}

	_, err := s.client.UpdatePage(ctx, pageID, notionapi.UpdatePageParams{
		DatabasePageProperties: props,
	})
	if err != nil {
		return fmt.Errorf("failed to update firm %s: %w", pageID, err)
	}

	return nil
}

// UpsertProspect creates or updates a contact in the Prospects
// database, matched by name and company. Returns the page ID and
// whether a new page was created.
func (s *Store) UpsertProspect(ctx context.Context, prospect Prospect) (string, bool, error) {
	if s.prospectsDB == "" {
		return "", false, fmt.Errorf("NOTION_DATABASE_PROSPECTS_ID not configured")
	}
	if prospect.Name == "" {
		return "", false, fmt.Errorf("prospect name is required")
	}

	existing, err := s.findProspect(ctx, prospect.Name, prospect.Company)
	if err != nil {
		return "", false, err
	}

	if existing != "" {
		_, err := s.client.UpdatePage(ctx, existing, notionapi.UpdatePageParams{
			DatabasePageProperties: prospect.properties(),
		})
		if err != nil {
			return "", false, fmt.Errorf("failed to update prospect %s: %w", existing, err)
		}
		return existing, false, nil
	}

	props := prospect.properties()
	page, err := s.client.CreatePage(ctx, notionapi.CreatePageParams{
		ParentType:             notionapi.ParentTypeDatabase,
		ParentID:               s.prospectsDB,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to create prospect: %w", err)
	}

	return page.ID, true, nil
}

// findProspect looks up an existing prospect page by name and company
func (s *Store) findProspect(ctx context.Context, name, company string) (string, error) {
	filters := []notionapi.DatabaseQueryFilter{
		{
			Property: PROSPECT_COLUMN_NAME,
			DatabaseQueryPropertyFilter: notionapi.DatabaseQueryPropertyFilter{
				Title: &notionapi.TextPropertyFilter{
					Equals: name,
				},
			},
		},
	}

	if company != "" {
		filters = append(filters, notionapi.DatabaseQueryFilter{
			Property: PROSPECT_COLUMN_COMPANY,
			DatabaseQueryPropertyFilter: notionapi.DatabaseQueryPropertyFilter{
				RichText: &notionapi.TextPropertyFilter{
					Equals: company,
				},
			},
		})
	}

	query := notionapi.DatabaseQuery{PageSize: 1}
	if len(filters) == 1 {
		query.Filter = &filters[0]
	} else {
		query.Filter = &notionapi.DatabaseQueryFilter{And: filters}
	}

	response, err := s.client.QueryDatabase(ctx, s.prospectsDB, &query)
	if err != nil {
		return "", fmt.Errorf("failed to query prospects: %w", err)
	}

	if len(response.Results) == 0 {
		return "", nil
	}
	return response.Results[0].ID, nil
}

// FindOutreachByThread locates the outreach log entry for a Gmail
// thread. Returns nil when no entry matches.
func (s *Store) FindOutreachByThread(ctx context.Context, threadID string) (*OutreachEntry, error) {
	if s.outreachDB == "" {
		return nil, fmt.Errorf("NOTION_DATABASE_OUTREACH_LOG_ID not configured")
	}

	query := notionapi.DatabaseQuery{
		Filter: &notionapi.DatabaseQueryFilter{
			Property: OUTREACH_COLUMN_THREAD_ID,
			DatabaseQueryPropertyFilter: notionapi.DatabaseQueryPropertyFilter{
				RichText: &notionapi.TextPropertyFilter{
					Equals: threadID,
				},
			},
		},
		PageSize: 1,
	}

	response, err := s.client.QueryDatabase(ctx, s.outreachDB, &query)
	if err != nil {
		return nil, fmt.Errorf("failed to query outreach log: %w", err)
	}

	if len(response.Results) == 0 {
		return nil, nil
	}
	return outreachEntryFromPage(&response.Results[0]), nil
}

// UpdateOutreachEntry applies a partial update to an outreach log entry
func (s *Store) UpdateOutreachEntry(ctx context.Context, pageID string, update OutreachUpdate) error {
	props := update.properties()
	if len(props) == 0 {
		return nil
	}

	_, err := s.client.UpdatePage(ctx, pageID, notionapi.UpdatePageParams{
		DatabasePageProperties: props,
	})
	if err != nil {
		return fmt.Errorf("failed to update outreach entry %s: %w", pageID, err)
	}

	return nil
}

// RecentFirms lists the most recently edited firms, newest first
func (s *Store) RecentFirms(ctx context.Context, limit int) ([]FirmSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	query := notionapi.DatabaseQuery{
		Sorts: []notionapi.DatabaseQuerySort{
			{
				Timestamp: notionapi.SortTimeStampLastEditedTime,
				Direction: notionapi.SortDirDesc,
			},
		},
		PageSize: limit,
	}

	response, err := s.client.QueryDatabase(ctx, s.firmsDB, &query)
	if err != nil {
		return nil, fmt.Errorf("failed to query firms: %w", err)
	}

	summaries := make([]FirmSummary, 0, len(response.Results))
	for i := range response.Results {
		firm := FirmFromPage(&response.Results[i])
		summaries = append(summaries, FirmSummary{
			ID:     firm.ID,
			Name:   firm.Name,
			Status: firm.Status,
			URL:    response.Results[i].URL,
		})
	}

	return summaries, nil
}
