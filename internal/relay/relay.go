// Package relay dispatches firm records to the external enrichment
// relay (Clay) and tells it where to call back.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/plinian/pipeline/pkg/utils"
)

// FirmPayload is what the relay receives for a firm enrichment run
type FirmPayload struct {
	NotionPageID string `json:"notion_page_id"`
	FirmName     string `json:"firm_name"`
	Domain       string `json:"domain"`
	Website      string `json:"website,omitempty"`
	CallbackURL  string `json:"callback_url"`
	RequestID    string `json:"request_id"`
}

// Dispatcher sends a firm into the enrichment relay
type Dispatcher interface {
	DispatchFirm(ctx context.Context, payload FirmPayload) error
}

// Client posts payloads to the configured relay webhook
type Client struct {
	httpClient *http.Client
	webhookURL string
	authToken  string
}

// NewClient builds a relay client from config
func NewClient(config *utils.Config) (*Client, error) {
	webhookURL := config.Get("CLAY_WEBHOOK_URL")
	if webhookURL == "" {
		return nil, fmt.Errorf("CLAY_WEBHOOK_URL not configured")
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		webhookURL: webhookURL,
		authToken:  config.Get("CLAY_WEBHOOK_AUTH_TOKEN"),
	}, nil
}

// DispatchFirm posts the firm payload to the relay webhook. A missing
// request ID is filled in so retries stay traceable.
func (c *Client) DispatchFirm(ctx context.Context, payload FirmPayload) error {
	if payload.RequestID == "" {
		payload.RequestID = uuid.NewString()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay dispatch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("relay dispatch returned %d: %s", resp.StatusCode, string(snippet))
	}

	return nil
}
