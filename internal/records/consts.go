package records

// Prospect Firms database columns
const (
	FIRM_COLUMN_NAME             = "Firm Name"
	FIRM_COLUMN_WEBSITE          = "Website"
	FIRM_COLUMN_STATUS           = "Research Status"
	FIRM_COLUMN_RESTART          = "Restart Enrichment"
	FIRM_COLUMN_OVERVIEW         = "Firm Overview"
	FIRM_COLUMN_NOTES            = "Qualification Notes"
	FIRM_COLUMN_BEST_MATCHES     = "Best Matches"
	FIRM_COLUMN_LINKEDIN         = "LinkedIn Company URL"
	FIRM_COLUMN_LOCATION         = "Location / Headquarters Location"
	FIRM_COLUMN_OUTREACH_CONTACT = "Latest Outreach Contact"
	FIRM_COLUMN_OUTREACH_EMAIL   = "Latest Outreach Email"
	FIRM_COLUMN_OUTREACH_SUBJECT = "Latest Outreach Subject"
	FIRM_COLUMN_DRAFT_URL        = "Outreach Draft URL"
	FIRM_COLUMN_LAST_OUTREACH    = "Last Outreach Run"

	// Per-offering fit columns are "<offering name> Fit"
	FIRM_FIT_COLUMN_SUFFIX = " Fit"
)

// Prospects database columns
const (
	PROSPECT_COLUMN_NAME     = "Name"
	PROSPECT_COLUMN_COMPANY  = "Company"
	PROSPECT_COLUMN_STATUS   = "Status"
	PROSPECT_COLUMN_EMAIL    = "Email"
	PROSPECT_COLUMN_TITLE    = "Title/Role"
	PROSPECT_COLUMN_LINKEDIN = "LinkedIn URL"
	PROSPECT_COLUMN_PHONE    = "Mobile Phone"
	PROSPECT_COLUMN_ORG_TYPE = "Organization Type"
)

// Outreach Log database columns
const (
	OUTREACH_COLUMN_THREAD_ID       = "Gmail Thread ID"
	OUTREACH_COLUMN_RESPONSE_STATUS = "Response Status"
	OUTREACH_COLUMN_RESPONSE_DATE   = "Response Date"
	OUTREACH_COLUMN_OUTCOME         = "Outcome"
	OUTREACH_COLUMN_FOLLOW_UP       = "Follow-up Required"
	OUTREACH_COLUMN_NOTES           = "Notes"
)

// Research Status values on the firm lifecycle
const (
	STATUS_NEW         = "New"
	STATUS_RESEARCHING = "Researching"
	STATUS_QUALIFIED   = "Qualified"
)

// Notion rich text values are capped at 2000 characters per block
const RICH_TEXT_MAX_LENGTH = 2000

const DATE_FORMAT = "2006-01-02"
