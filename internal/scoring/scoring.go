// Package scoring runs the two-phase fit analysis: independent model
// research on a firm, then per-offering scoring against the roster.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/plinian/pipeline/internal/llm"
	"github.com/plinian/pipeline/internal/roster"
)

// ENRICHMENT_MAX_LENGTH caps the relay-provided research text that
// goes into the scoring prompt
const ENRICHMENT_MAX_LENGTH = 5000

const completionMaxTokens = 1024

// Fit levels as stored in the record store select columns
const (
	FIT_STRONG   = "Strong"
	FIT_MODERATE = "Moderate"
	FIT_WEAK     = "Weak"
	FIT_NA       = "N/A"
)

// OfferingScore is one offering's fit verdict
type OfferingScore struct {
	Key       string
	Name      string
	Fit       string
	Rationale string
}

// Result is the full outcome of scoring one firm
type Result struct {
	Research     string
	Scores       []OfferingScore
	BestMatch    string
	OverallNotes string
}

// ParseError reports an unparseable model response and keeps the raw
// text so it can be stored for later inspection
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse scoring response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Engine scores firms against the offering roster
type Engine struct {
	completer llm.Completer
	offerings []roster.Offering
}

// NewEngine builds a scoring engine
func NewEngine(completer llm.Completer, offerings []roster.Offering) *Engine {
	return &Engine{
		completer: completer,
		offerings: offerings,
	}
}

const systemPrompt = "You are a precise analyst for an institutional capital raising firm. Follow the output format instructions exactly."

// Score runs research then scoring for one firm. The result always
// has one score per roster offering, in roster order.
func (e *Engine) Score(ctx context.Context, firmName, website, enrichment string) (*Result, error) {
	enrichment = Sanitize(enrichment)

	research, err := e.completer.Complete(ctx, systemPrompt, BuildResearchPrompt(firmName, website), completionMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("research phase failed: %w", err)
	}
	log.Printf("[SCORING]: research completed for %s (%d chars)", firmName, len(research))

	prompt := BuildScoringPrompt(firmName, website, enrichment, research, e.offerings)
	response, err := e.completer.Complete(ctx, systemPrompt, prompt, completionMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("scoring phase failed: %w", err)
	}

	result, err := e.parse(response)
	if err != nil {
		return nil, err
	}
	result.Research = research

	return result, nil
}

// parse decodes the scoring JSON into a Result, normalizing every fit
// value so downstream select columns only ever see the four levels
func (e *Engine) parse(response string) (*Result, error) {
	clean := StripFences(response)

	var raw map[string]any
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, &ParseError{Raw: response, Err: err}
	}

	result := &Result{
		OverallNotes: stringField(raw, "overall_notes"),
		Scores:       make([]OfferingScore, 0, len(e.offerings)),
	}

	for _, offering := range e.offerings {
		result.Scores = append(result.Scores, OfferingScore{
			Key:       offering.Key,
			Name:      offering.Name,
			Fit:       NormalizeFit(stringField(raw, offering.Key+"_fit")),
			Rationale: stringField(raw, offering.Key+"_rationale"),
		})
	}
	result.BestMatch = e.canonicalName(stringField(raw, "best_match"))

	return result, nil
}

// canonicalName maps a model-produced best match onto the roster
// offering name it refers to. Unrecognized values are dropped so the
// multi-select columns never grow stray options.
func (e *Engine) canonicalName(value string) string {
	for _, offering := range e.offerings {
		if strings.EqualFold(value, offering.Name) || strings.EqualFold(value, offering.Key) {
			return offering.Name
		}
	}
	return ""
}

func stringField(raw map[string]any, key string) string {
	value, _ := raw[key].(string)
	return strings.TrimSpace(value)
}

// StrongMatches lists the offering names scored Strong, in roster order
func (r *Result) StrongMatches() []string {
	matches := []string{}
	for _, score := range r.Scores {
		if score.Fit == FIT_STRONG {
			matches = append(matches, score.Name)
		}
	}
	return matches
}

// Fits maps offering name to fit level
func (r *Result) Fits() map[string]string {
	fits := make(map[string]string, len(r.Scores))
	for _, score := range r.Scores {
		fits[score.Name] = score.Fit
	}
	return fits
}

// NotesBlock renders the qualification notes written to the record
// store: best match, per-offering rationales, then the overall summary
func (r *Result) NotesBlock() string {
	var sb strings.Builder

	best := r.BestMatch
	if best == "" {
		if strong := r.StrongMatches(); len(strong) > 0 {
			best = strong[0]
		} else {
			best = "TBD"
		}
	}
	fmt.Fprintf(&sb, "Best Match: %s\n\n", best)

	for _, score := range r.Scores {
		fmt.Fprintf(&sb, "%s: %s\n", score.Name, score.Rationale)
	}

	sb.WriteString("\n")
	sb.WriteString(r.OverallNotes)

	return sb.String()
}

// Sanitize collapses newlines to spaces and caps the enrichment text
// so prompt size stays bounded
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	if len(text) > ENRICHMENT_MAX_LENGTH {
		text = text[:ENRICHMENT_MAX_LENGTH]
	}
	return text
}

// StripFences removes a wrapping markdown code fence from a model
// response, if present
func StripFences(response string) string {
	clean := strings.TrimSpace(response)

	if strings.HasPrefix(clean, "```") {
		if _, rest, found := strings.Cut(clean, "\n"); found {
			clean = rest
		}
	}
	if strings.HasSuffix(clean, "```") {
		if idx := strings.LastIndex(clean, "```"); idx >= 0 {
			clean = clean[:idx]
		}
	}

	return strings.TrimSpace(clean)
}

// NormalizeFit maps any model-produced fit value onto the four select
// options. Unknown values land on N/A.
func NormalizeFit(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strong", "strong fit":
		return FIT_STRONG
	case "moderate", "moderate fit":
		return FIT_MODERATE
	case "weak", "weak fit":
		return FIT_WEAK
	default:
		return FIT_NA
	}
}
