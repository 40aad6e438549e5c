package records

import (
	"time"

	notionapi "github.com/dstotijn/go-notion"
)

// OutreachEntry is a row in the Outreach Log database tracking one
// sent email thread
type OutreachEntry struct {
	ID             string
	ThreadID       string
	ResponseStatus string
	Outcome        string
	Notes          string
}

// OutreachUpdate describes a partial write to an outreach log entry
type OutreachUpdate struct {
	ResponseStatus   *string
	ResponseDate     *time.Time
	Outcome          *string
	FollowUpRequired *bool
	Notes            *string
}

func (u OutreachUpdate) properties() notionapi.DatabasePageProperties {
	props := notionapi.DatabasePageProperties{}

	if u.ResponseStatus != nil {
		props[OUTREACH_COLUMN_RESPONSE_STATUS] = SelectProp(*u.ResponseStatus)
	}
	if u.ResponseDate != nil {
		props[OUTREACH_COLUMN_RESPONSE_DATE] = DateProp(*u.ResponseDate)
	}
	if u.Outcome != nil {
		props[OUTREACH_COLUMN_OUTCOME] = SelectProp(*u.Outcome)
	}
	if u.FollowUpRequired != nil {
		props[OUTREACH_COLUMN_FOLLOW_UP] = CheckboxProp(*u.FollowUpRequired)
	}
	if u.Notes != nil {
		props[OUTREACH_COLUMN_NOTES] = RichTextProp(*u.Notes)
	}

	return props
}

func outreachEntryFromPage(page *notionapi.Page) *OutreachEntry {
	entry := &OutreachEntry{ID: page.ID}

	props, ok := page.Properties.(notionapi.DatabasePageProperties)
	if !ok {
		return entry
	}

	entry.ThreadID = PropertyValue(props[OUTREACH_COLUMN_THREAD_ID])
	entry.ResponseStatus = PropertyValue(props[OUTREACH_COLUMN_RESPONSE_STATUS])
	entry.Outcome = PropertyValue(props[OUTREACH_COLUMN_OUTCOME])
	entry.Notes = PropertyValue(props[OUTREACH_COLUMN_NOTES])

	return entry
}
