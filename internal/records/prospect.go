package records

import (
	"strings"

	notionapi "github.com/dstotijn/go-notion"
)

// Prospect is a contact person at a prospect firm
type Prospect struct {
	ID          string
	Name        string
	Company     string
	Status      string
	Email       string
	Title       string
	LinkedInURL string
	Phone       string
	OrgType     string
}

// orgTypeKeywords maps substrings of a free-text organization
// description onto the select options the Prospects database uses.
// First match wins, so order matters.
var orgTypeKeywords = []struct {
	keyword string
	orgType string
}{
	{"pension", "Public Pension"},
	{"endowment", "E&F"},
	{"foundation", "E&F"},
	{"family office", "Family Office"},
	{"ria", "RIA"},
	{"ocio", "OCIO"},
	{"hospital", "Hospital/Healthcare"},
	{"healthcare", "Hospital/Healthcare"},
}

// MapOrgType normalizes a free-text organization description to one
// of the select options the Prospects database recognizes. Unmatched
// descriptions come back empty so the column stays unset.
func MapOrgType(description string) string {
	lowered := strings.ToLower(description)
	for _, entry := range orgTypeKeywords {
		if strings.Contains(lowered, entry.keyword) {
			return entry.orgType
		}
	}
	return ""
}

// properties renders the prospect as Notion page properties for a
// create or update, skipping empty fields
func (p Prospect) properties() notionapi.DatabasePageProperties {
	props := notionapi.DatabasePageProperties{
		PROSPECT_COLUMN_NAME: TitleProp(p.Name),
	}

	if p.Company != "" {
		props[PROSPECT_COLUMN_COMPANY] = RichTextProp(p.Company)
	}
	if p.Status != "" {
		props[PROSPECT_COLUMN_STATUS] = SelectProp(p.Status)
	}
	if p.Email != "" {
		props[PROSPECT_COLUMN_EMAIL] = EmailProp(p.Email)
	}
	if p.Title != "" {
		props[PROSPECT_COLUMN_TITLE] = RichTextProp(p.Title)
	}
	if p.LinkedInURL != "" {
		props[PROSPECT_COLUMN_LINKEDIN] = URLProp(p.LinkedInURL)
	}
	if p.Phone != "" {
		props[PROSPECT_COLUMN_PHONE] = PhoneProp(p.Phone)
	}
	if p.OrgType != "" {
		props[PROSPECT_COLUMN_ORG_TYPE] = SelectProp(p.OrgType)
	}

	return props
}
