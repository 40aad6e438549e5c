// Package replies classifies inbound email replies so the outreach
// log can track thread outcomes.
package replies

import "strings"

// Tone is the classified sentiment of a reply
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
)

var positiveKeywords = []string{
	"interested", "yes", "sounds good", "let's discuss", "happy to",
	"would love to", "absolutely", "definitely", "great", "perfect",
	"schedule", "meeting", "call", "connect",
}

// A single negative signal outranks any number of positive ones:
// "not interested, but good luck" is still a decline.
var negativeKeywords = []string{
	"not interested", "no thank you", "pass", "not a fit", "decline",
	"unsubscribe", "remove", "stop", "not at this time",
}

// Classify determines the tone of a reply body from keyword matches
func Classify(body string) Tone {
	lowered := strings.ToLower(body)

	for _, keyword := range negativeKeywords {
		if strings.Contains(lowered, keyword) {
			return ToneNegative
		}
	}

	for _, keyword := range positiveKeywords {
		if strings.Contains(lowered, keyword) {
			return TonePositive
		}
	}

	return ToneNeutral
}

// Status is the Response Status select value for this tone
func (t Tone) Status() string {
	switch t {
	case TonePositive:
		return "Responded — Positive"
	case ToneNegative:
		return "Responded — Negative"
	default:
		return "Responded — Neutral"
	}
}

// Outcome is the Outcome select value for this tone
func (t Tone) Outcome() string {
	if t == ToneNegative {
		return "Declined"
	}
	return "In Discussion"
}
