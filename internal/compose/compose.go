// Package compose generates first-person outreach emails for prospect
// firms, with a deterministic fallback when the model is unavailable.
package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/plinian/pipeline/internal/llm"
	"github.com/plinian/pipeline/internal/records"
	"github.com/plinian/pipeline/internal/roster"
	"github.com/plinian/pipeline/internal/scoring"
	"github.com/plinian/pipeline/pkg/utils"
)

const draftMaxTokens = 1500

// Email is a composed outreach draft
type Email struct {
	PrimaryClient    string   `json:"primary_client"`
	SecondaryClients []string `json:"secondary_clients"`
	Subject          string   `json:"subject"`
	Body             string   `json:"body"`
	Reasoning        string   `json:"reasoning"`
}

// Composer drafts outreach emails in Bill's voice
type Composer struct {
	completer llm.Completer
	offerings []roster.Offering
	persona   string
}

// NewComposer builds a composer. The persona prompt can be overridden
// with a file via OUTREACH_PERSONA_PROMPT_FILE; otherwise it is built
// from the roster.
func NewComposer(completer llm.Completer, offerings []roster.Offering, config *utils.Config) *Composer {
	persona := BuildPersonaPrompt(offerings)
	if path := config.Get("OUTREACH_PERSONA_PROMPT_FILE"); path != "" {
		persona = utils.LoadPromptWithFallback(path, persona)
	}

	return &Composer{
		completer: completer,
		offerings: offerings,
		persona:   persona,
	}
}

// contextProperties are extra record columns pulled into the firm
// context when present, in render order
var contextProperties = []struct {
	column string
	label  string
}{
	{"Firm Type", "Firm Type"},
	{"Type", "Firm Type"},
	{"AUM Range", "AUM Range"},
	{"Geographic Focus", "Geographic Focus"},
	{"Primary Office City", "Location"},
	{"Private Markets Experience", "Private Markets Experience"},
	{"Real Estate Allocation", "Real Estate Allocation"},
	{"Alternatives Platform", "Alternatives Platform"},
	{"Value-Add Tolerance", "Value-Add Tolerance"},
	{"Key Investment Themes", "Key Investment Themes"},
	{"Network Angles", "Network Angles"},
}

// FirmContext renders everything known about a firm into the prompt
// context block
func FirmContext(firm *records.Firm, contactName, contactTitle string) string {
	parts := []string{fmt.Sprintf("**Firm Name:** %s", firm.Name)}

	if firm.Website != "" {
		parts = append(parts, fmt.Sprintf("**Website:** %s", firm.Website))
	}
	if len(firm.BestMatches) > 0 {
		parts = append(parts, fmt.Sprintf("**Pre-tagged Best Matches:** %s", strings.Join(firm.BestMatches, ", ")))
	}
	if firm.Notes != "" {
		parts = append(parts, fmt.Sprintf("**Research Notes:** %s", firm.Notes))
	}

	seen := map[string]bool{}
	for _, entry := range contextProperties {
		if seen[entry.label] {
			continue
		}
		prop, exists := firm.Properties[entry.column]
		if !exists {
			continue
		}
		if value := records.PropertyValue(prop); value != "" {
			parts = append(parts, fmt.Sprintf("**%s:** %s", entry.label, value))
			seen[entry.label] = true
		}
	}

	fits := []string{}
	for name, fit := range firm.Fits {
		if fit != scoring.FIT_NA {
			fits = append(fits, fmt.Sprintf("%s: %s", name, fit))
		}
	}
	if len(fits) > 0 {
		parts = append(parts, fmt.Sprintf("**Fit Scores:** %s", strings.Join(fits, ", ")))
	}

	if contactName != "" {
		parts = append(parts, fmt.Sprintf("**Contact Name:** %s", contactName))
	}
	if contactTitle != "" {
		parts = append(parts, fmt.Sprintf("**Contact Title:** %s", contactTitle))
	}

	return strings.Join(parts, "\n")
}

// Compose drafts a personalized email for the firm
func (c *Composer) Compose(ctx context.Context, firm *records.Firm, contactName, contactTitle string) (*Email, error) {
	firmContext := FirmContext(firm, contactName, contactTitle)

	user := fmt.Sprintf(`Please generate a personalized outreach email for the following prospect firm:

%s

Generate the email following Bill's communication style and the guidelines in your instructions. Return your response as a valid JSON object.`, firmContext)

	log.Printf("[COMPOSE]: generating outreach for %s", firm.Name)

	response, err := c.completer.Complete(ctx, c.persona, user, draftMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("outreach generation failed: %w", err)
	}

	var email Email
	if err := json.Unmarshal([]byte(scoring.StripFences(response)), &email); err != nil {
		return nil, &scoring.ParseError{Raw: response, Err: err}
	}

	if email.Subject == "" {
		email.Subject = "Plinian Strategies - Introduction"
	}
	if email.Body == "" {
		return nil, fmt.Errorf("outreach generation returned an empty body")
	}

	return &email, nil
}

// Fallback produces a deterministic draft when generation fails, so
// the outreach run still leaves something reviewable behind
func Fallback(firm *records.Firm) *Email {
	firmName := firm.Name
	if firmName == "" {
		firmName = "your organization"
	}

	fit := "long-term partnership capital"
	if len(firm.BestMatches) > 0 {
		fit = strings.Join(firm.BestMatches, ", ")
	}

	lines := []string{
		"Hi there,",
		"",
		"I hope this note finds you well. I lead Plinian Strategies, a boutique advisory and capital-sourcing platform.",
		"",
		fmt.Sprintf("We've spent time understanding organizations like %s and how you think about %s. Given that context, I think there could be a very natural fit with one or more of the managers I work with.", firmName, strings.ToLower(fit)),
	}

	if firm.Website != "" {
		lines = append(lines, "", fmt.Sprintf("I've also reviewed your public materials (%s) which reinforced that impression.", firm.Website))
	}

	lines = append(lines,
		"",
		"Rather than send you a deck blindly, I'd be grateful for 15 minutes to share a brief overview of how we're helping a small number of LPs solve for specific objectives across their portfolios, and to see if any of it resonates with your current priorities.",
		"",
		"If it makes sense after that, I'm happy to follow up with more detailed materials or set up time with one of the underlying managers.",
		"",
		SignatureBlock,
	)

	return &Email{
		PrimaryClient: "General",
		Subject:       fmt.Sprintf("Intro: Plinian Strategies and potential fit for %s", firmName),
		Body:          strings.Join(lines, "\n"),
		Reasoning:     "Fallback template used because generation was unavailable.",
	}
}
