// Package mail creates Gmail drafts for outreach emails. Drafts are
// never sent automatically; a human reviews them in Gmail.
package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/plinian/pipeline/pkg/utils"
)

// Draft is a prepared outreach email
type Draft struct {
	To      string
	Subject string
	Body    string
}

// DraftResult identifies a created draft
type DraftResult struct {
	DraftID  string
	ThreadID string
	URL      string
}

// DraftService creates email drafts
type DraftService interface {
	CreateDraft(ctx context.Context, draft Draft) (*DraftResult, error)
}

// tokenSavingSource wraps an oauth2.TokenSource and writes refreshed
// tokens back to disk so the next run doesn't have to re-authorize
type tokenSavingSource struct {
	source    oauth2.TokenSource
	tokenPath string
	lastToken *oauth2.Token
}

func (t *tokenSavingSource) Token() (*oauth2.Token, error) {
	token, err := t.source.Token()
	if err != nil {
		return nil, err
	}

	if t.lastToken == nil || t.lastToken.AccessToken != token.AccessToken {
		if saveErr := saveToken(t.tokenPath, token); saveErr != nil {
			log.Printf("[MAIL]: warning: failed to save refreshed token: %v", saveErr)
		}
		t.lastToken = token
	}

	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// GmailService creates drafts through the Gmail API
type GmailService struct {
	service *gmail.Service
	from    string
}

// NewGmailService builds a Gmail draft service from config. Requires
// OAuth credentials and a previously authorized token on disk.
func NewGmailService(ctx context.Context, config *utils.Config) (*GmailService, error) {
	credentialsPath := config.Get("GMAIL_CREDENTIALS_JSON")
	if credentialsPath == "" {
		return nil, fmt.Errorf("GMAIL_CREDENTIALS_JSON not configured")
	}

	tokenPath := config.Get("GMAIL_TOKEN_JSON")
	if tokenPath == "" {
		return nil, fmt.Errorf("GMAIL_TOKEN_JSON not configured")
	}

	credentialsJSON, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	tokenJSON, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token JSON: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(credentialsJSON, gmail.GmailComposeScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	savingSource := &tokenSavingSource{
		source:    oauthConfig.TokenSource(ctx, &token),
		tokenPath: tokenPath,
	}

	client := oauth2.NewClient(ctx, savingSource)
	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailService{
		service: service,
		from:    config.GetWithDefault("GMAIL_SENDER", "me"),
	}, nil
}

// CreateDraft creates a Gmail draft and returns its identifiers
func (g *GmailService) CreateDraft(ctx context.Context, draft Draft) (*DraftResult, error) {
	if draft.To == "" {
		return nil, fmt.Errorf("draft recipient is required")
	}

	raw := base64.URLEncoding.EncodeToString([]byte(encodeMessage(draft)))

	created, err := g.service.Users.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: raw},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	result := &DraftResult{DraftID: created.Id}
	if created.Message != nil {
		result.ThreadID = created.Message.ThreadId
	}
	result.URL = fmt.Sprintf("https://mail.google.com/mail/u/0/#drafts?compose=%s", created.Id)

	return result, nil
}

// encodeMessage renders the draft as an RFC 2822 message
func encodeMessage(draft Draft) string {
	var sb strings.Builder
	sb.WriteString("To: " + draft.To + "\r\n")
	sb.WriteString("Subject: " + draft.Subject + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(draft.Body)
	return sb.String()
}

// Disabled is a DraftService that records nothing. Used when Gmail
// credentials aren't configured so outreach still writes everything
// to the record store.
type Disabled struct{}

func (Disabled) CreateDraft(ctx context.Context, draft Draft) (*DraftResult, error) {
	return nil, fmt.Errorf("gmail drafts are not configured")
}
