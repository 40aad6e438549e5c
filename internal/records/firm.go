package records

import (
	"time"

	notionapi "github.com/dstotijn/go-notion"
)

// Firm is the typed view of a prospect firm record. Properties keeps
// the raw page properties so downstream consumers (outreach context
// building) can read columns this view doesn't model.
type Firm struct {
	ID                string
	Name              string
	Website           string
	Status            string
	RestartEnrichment bool
	Overview          string
	Notes             string
	BestMatches       []string
	Fits              map[string]string // offering name -> fit level
	Properties        notionapi.DatabasePageProperties
}

// FirmSummary is the compact listing form of a firm
type FirmSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
}

// FirmUpdate describes a partial write to a firm record. Nil pointer
// fields and nil slices/maps are left untouched.
type FirmUpdate struct {
	Status            *string
	RestartEnrichment *bool
	LinkedInURL       *string
	Location          *string
	Overview          *string
	Notes             *string
	BestMatches       []string
	Fits              map[string]string // offering name -> fit level
	OutreachContact   *string
	OutreachEmail     *string
	OutreachSubject   *string
	OutreachDraftURL  *string
	LastOutreachRun   *time.Time
}

// properties renders the update as Notion page properties
func (u FirmUpdate) properties() notionapi.DatabasePageProperties {
	props := notionapi.DatabasePageProperties{}

	if u.Status != nil {
		props[FIRM_COLUMN_STATUS] = SelectProp(*u.Status)
	}
	if u.RestartEnrichment != nil {
		props[FIRM_COLUMN_RESTART] = CheckboxProp(*u.RestartEnrichment)
	}
	if u.LinkedInURL != nil {
		props[FIRM_COLUMN_LINKEDIN] = URLProp(*u.LinkedInURL)
	}
	if u.Location != nil {
		props[FIRM_COLUMN_LOCATION] = RichTextProp(*u.Location)
	}
	if u.Overview != nil {
		props[FIRM_COLUMN_OVERVIEW] = RichTextProp(*u.Overview)
	}
	if u.Notes != nil {
		props[FIRM_COLUMN_NOTES] = RichTextProp(*u.Notes)
	}
	if u.BestMatches != nil {
		props[FIRM_COLUMN_BEST_MATCHES] = MultiSelectProp(u.BestMatches)
	}
	for name, fit := range u.Fits {
		props[name+FIRM_FIT_COLUMN_SUFFIX] = SelectProp(fit)
	}
	if u.OutreachContact != nil {
		props[FIRM_COLUMN_OUTREACH_CONTACT] = RichTextProp(*u.OutreachContact)
	}
	if u.OutreachEmail != nil {
		props[FIRM_COLUMN_OUTREACH_EMAIL] = EmailProp(*u.OutreachEmail)
	}
	if u.OutreachSubject != nil {
		props[FIRM_COLUMN_OUTREACH_SUBJECT] = RichTextProp(*u.OutreachSubject)
	}
	if u.OutreachDraftURL != nil {
		props[FIRM_COLUMN_DRAFT_URL] = URLProp(*u.OutreachDraftURL)
	}
	if u.LastOutreachRun != nil {
		props[FIRM_COLUMN_LAST_OUTREACH] = DateProp(*u.LastOutreachRun)
	}

	return props
}

// FirmFromPage parses a Notion page into the typed firm view
func FirmFromPage(page *notionapi.Page) *Firm {
	firm := &Firm{
		ID:   page.ID,
		Fits: make(map[string]string),
	}

	props, ok := page.Properties.(notionapi.DatabasePageProperties)
	if !ok {
		return firm
	}
	firm.Properties = props

	firm.Name = PropertyValue(props[FIRM_COLUMN_NAME])
	firm.Website = PropertyValue(props[FIRM_COLUMN_WEBSITE])
	firm.Status = PropertyValue(props[FIRM_COLUMN_STATUS])
	firm.Overview = PropertyValue(props[FIRM_COLUMN_OVERVIEW])
	firm.Notes = PropertyValue(props[FIRM_COLUMN_NOTES])

	if restart := props[FIRM_COLUMN_RESTART]; restart.Checkbox != nil {
		firm.RestartEnrichment = *restart.Checkbox
	}

	if matches, exists := props[FIRM_COLUMN_BEST_MATCHES]; exists {
		firm.BestMatches = MultiSelectValues(matches)
	}

	// Collect any per-offering fit columns present on the page
	for name, prop := range props {
		if len(name) > len(FIRM_FIT_COLUMN_SUFFIX) && name[len(name)-len(FIRM_FIT_COLUMN_SUFFIX):] == FIRM_FIT_COLUMN_SUFFIX {
			if value := PropertyValue(prop); value != "" {
				firm.Fits[name[:len(name)-len(FIRM_FIT_COLUMN_SUFFIX)]] = value
			}
		}
	}

	return firm
}
