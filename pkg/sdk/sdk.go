package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps calls to the pipeline API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Health checks service status
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScoreFirm triggers a re-score of an existing firm
func (c *Client) ScoreFirm(ctx context.Context, pageID string) (*ApiResponse[json.RawMessage], error) {
	path := fmt.Sprintf("/api/score-firm/%s", pageID)

	var out ApiResponse[json.RawMessage]
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}

	if out.Status != StatusSuccess {
		return nil, fmt.Errorf("scoring failed: %s", out.Message)
	}
	return &out, nil
}

// TriggerOutreach kicks off draft generation for a firm
func (c *Client) TriggerOutreach(ctx context.Context, req *OutreachRequest) (*ApiResponse[json.RawMessage], error) {
	var out ApiResponse[json.RawMessage]
	if err := c.doJSON(ctx, http.MethodPost, "/webhook/outreach", req, &out); err != nil {
		return nil, err
	}

	if out.Status != StatusSuccess {
		return nil, fmt.Errorf("outreach failed: %s", out.Message)
	}
	return &out, nil
}

// ReportReply forwards an inbound email reply
func (c *Client) ReportReply(ctx context.Context, req *EmailReplyRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/webhook/email-reply", req, nil)
}

// doJSON is a helper to perform JSON requests against the API
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("'%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
