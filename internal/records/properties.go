package records

import (
	"strconv"
	"strings"
	"time"

	notionapi "github.com/dstotijn/go-notion"
)

// PropertyValue extracts a plain string from any supported property
// type. This is the single dispatch point for reading record fields
// whose shape depends on the declared property type; unsupported types
// and empty values both yield "".
func PropertyValue(prop notionapi.DatabasePageProperty) string {
	switch prop.Type {
	case notionapi.DBPropTypeTitle:
		return plainText(prop.Title)

	case notionapi.DBPropTypeRichText:
		return plainText(prop.RichText)

	case notionapi.DBPropTypeSelect:
		if prop.Select == nil {
			return ""
		}
		return prop.Select.Name

	case notionapi.DBPropTypeMultiSelect:
		names := make([]string, 0, len(prop.MultiSelect))
		for _, opt := range prop.MultiSelect {
			names = append(names, opt.Name)
		}
		return strings.Join(names, ", ")

	case notionapi.DBPropTypeURL:
		if prop.URL == nil {
			return ""
		}
		return *prop.URL

	case notionapi.DBPropTypeEmail:
		if prop.Email == nil {
			return ""
		}
		return *prop.Email

	case notionapi.DBPropTypePhoneNumber:
		if prop.PhoneNumber == nil {
			return ""
		}
		return *prop.PhoneNumber

	case notionapi.DBPropTypeNumber:
		if prop.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*prop.Number, 'f', -1, 64)

	case notionapi.DBPropTypeCheckbox:
		if prop.Checkbox == nil {
			return ""
		}
		return strconv.FormatBool(*prop.Checkbox)

	case notionapi.DBPropTypeDate:
		if prop.Date == nil {
			return ""
		}
		return prop.Date.Start.Format(DATE_FORMAT)
	}

	return ""
}

// MultiSelectValues extracts the option names of a select or
// multi-select property as a slice
func MultiSelectValues(prop notionapi.DatabasePageProperty) []string {
	if prop.Select != nil {
		return []string{prop.Select.Name}
	}

	names := make([]string, 0, len(prop.MultiSelect))
	for _, opt := range prop.MultiSelect {
		names = append(names, opt.Name)
	}
	return names
}

// plainText joins a rich text array into one string, preferring the
// rendered plain text (reads) over the raw text content (writes)
func plainText(parts []notionapi.RichText) string {
	var sb strings.Builder
	for _, part := range parts {
		if part.PlainText != "" {
			sb.WriteString(part.PlainText)
		} else if part.Text != nil {
			sb.WriteString(part.Text.Content)
		}
	}
	return sb.String()
}

/** ---- PROPERTY BUILDERS ---- */

// TitleProp builds a title property
func TitleProp(content string) notionapi.DatabasePageProperty {
	return notionapi.DatabasePageProperty{
		Title: []notionapi.RichText{
			{
				Type: notionapi.RichTextTypeText,
				Text: &notionapi.Text{Content: content},
			},
		},
	}
}

// RichTextProp builds a rich text property, truncated to the Notion
// per-block limit
func RichTextProp(content string) notionapi.DatabasePageProperty {
	if len(content) > RICH_TEXT_MAX_LENGTH {
		content = content[:RICH_TEXT_MAX_LENGTH]
	}

	return notionapi.DatabasePageProperty{
		RichText: []notionapi.RichText{
			{
				Type: notionapi.RichTextTypeText,
				Text: &notionapi.Text{Content: content},
			},
		},
	}
}

// SelectProp builds a single-select property
func SelectProp(name string) notionapi.DatabasePageProperty {
	return notionapi.DatabasePageProperty{
		Select: &notionapi.SelectOptions{Name: name},
	}
}

// MultiSelectProp builds a multi-select property
func MultiSelectProp(names []string) notionapi.DatabasePageProperty {
	options := make([]notionapi.SelectOptions, 0, len(names))
	for _, name := range names {
		options = append(options, notionapi.SelectOptions{Name: name})
	}
	return notionapi.DatabasePageProperty{MultiSelect: options}
}

// URLProp builds a URL property
func URLProp(url string) notionapi.DatabasePageProperty {
	return notionapi.DatabasePageProperty{URL: pointer(url)}
}

// EmailProp builds an email property
func EmailProp(email string) notionapi.DatabasePageProperty {
	return notionapi.DatabasePageProperty{Email: pointer(email)}
}

// PhoneProp builds a phone number property
func PhoneProp(phone string) notionapi.DatabasePageProperty {
	return notionapi.DatabasePageProperty{PhoneNumber: pointer(phone)}
}

// CheckboxProp builds a checkbox property
func CheckboxProp(checked bool) notionapi.DatabasePageProperty {
	return notionapi.DatabasePageProperty{Checkbox: pointer(checked)}
}

// DateProp builds a date-only property
func DateProp(t time.Time) notionapi.DatabasePageProperty {
	return notionapi.DatabasePageProperty{
		Date: &notionapi.Date{Start: notionapi.NewDateTime(t, false)},
	}
}

// pointer returns a pointer to any value
func pointer[T any](v T) *T {
	return &v
}
