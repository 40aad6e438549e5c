// Package sdk holds the wire types shared between the pipeline API
// and its callers (CRM automations, the enrichment relay, and the
// reply forwarder), plus a small Go client.
package sdk

import "encoding/json"

// StatusType is the outcome marker on every API response
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusFail    StatusType = "fail"
	StatusError   StatusType = "error"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status message
	Code    int        `json:"code"`            // Status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any        `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a JSON string
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Webhook event payloads */

// NewFirmRequest is the new-firm notification. CRM automations wrap
// the page in a "data" envelope; a direct caller may send the page
// fields at the top level. Properties carry raw record property
// objects keyed by column name.
type NewFirmRequest struct {
	Data *NewFirmRequest `json:"data,omitempty"`

	ID         string                     `json:"id"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// Unwrap returns the innermost payload
func (r *NewFirmRequest) Unwrap() *NewFirmRequest {
	if r.Data != nil {
		return r.Data.Unwrap()
	}
	return r
}

// pagePropertyValue mirrors just enough of a raw record property to
// read the fields the new-firm event needs
type pagePropertyValue struct {
	Title []struct {
		PlainText string `json:"plain_text"`
	} `json:"title"`
	URL       string `json:"url"`
	Checkbox  bool   `json:"checkbox"`
	PlainText string `json:"plain_text"`
}

func (r *NewFirmRequest) property(name string) (pagePropertyValue, bool) {
	raw, exists := r.Properties[name]
	if !exists {
		return pagePropertyValue{}, false
	}

	var value pagePropertyValue
	if err := json.Unmarshal(raw, &value); err != nil {
		return pagePropertyValue{}, false
	}
	return value, true
}

// FirmName reads the firm name from the raw title property
func (r *NewFirmRequest) FirmName(column string) string {
	value, exists := r.property(column)
	if !exists {
		return ""
	}
	if len(value.Title) > 0 {
		return value.Title[0].PlainText
	}
	return value.PlainText
}

// Website reads a URL property
func (r *NewFirmRequest) Website(column string) string {
	value, _ := r.property(column)
	return value.URL
}

// Checkbox reads a checkbox property
func (r *NewFirmRequest) Checkbox(column string) bool {
	value, _ := r.property(column)
	return value.Checkbox
}

// PersonPayload is one enriched contact from the relay
type PersonPayload struct {
	Name             string `json:"name"`
	FirmName         string `json:"firm_name"`
	NotionPageID     string `json:"notion_page_id"`
	Email            string `json:"email"`
	Title            string `json:"title"`
	LinkedInURL      string `json:"linkedin_url"`
	Phone            string `json:"phone"`
	Location         string `json:"location"`
	OrganizationType string `json:"organization_type"`
}

// FirmEnrichedRequest is the relay's firmographic callback
type FirmEnrichedRequest struct {
	NotionPageID string          `json:"notion_page_id"`
	LinkedInURL  string          `json:"linkedin_url"`
	Location     string          `json:"location"`
	FirmOverview string          `json:"firm_overview"`
	People       []PersonPayload `json:"people"`
}

// FirmScoreRequest triggers the scoring run. Research may instead
// arrive as the ?research= query parameter.
type FirmScoreRequest struct {
	NotionPageID string `json:"notion_page_id"`
	FirmName     string `json:"firm_name"`
	Website      string `json:"website"`
	FirmResearch string `json:"firm_research"`
}

// OutreachRequest is sent by a CRM button to kick off draft generation
type OutreachRequest struct {
	FirmID       string `json:"firm_id"`
	FirmName     string `json:"firm_name"`
	Website      string `json:"website"`
	Fit          string `json:"fit"`
	ContactName  string `json:"contact_name"`
	ContactTitle string `json:"contact_title"`
	ContactEmail string `json:"contact_email"`
}

// EmailReplyRequest is forwarded by the inbox watcher when a reply
// lands on an outreach thread
type EmailReplyRequest struct {
	ThreadID     string `json:"thread_id"`
	SenderEmail  string `json:"sender_email"`
	EmailBody    string `json:"email_body"`
	ReceivedDate string `json:"received_date"`
}

/** API responses */

// FirmList is the recent-firms listing payload
type FirmList[T any] struct {
	Firms []T `json:"firms"`
}

// HealthResponse reports service status and the webhook surface
type HealthResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints,omitempty"`
}
