package scoring

import (
	"fmt"
	"strings"

	"github.com/plinian/pipeline/internal/roster"
)

// BuildResearchPrompt asks the model what it independently knows
// about a firm, before any enrichment data is mixed in
func BuildResearchPrompt(firmName, website string) string {
	return fmt.Sprintf(`You are an expert on institutional investors and asset allocators. Research this firm from your knowledge:

FIRM: %s
WEBSITE: %s

Provide what you know about:
1. What type of organization is this? (pension, endowment, foundation, family office, RIA, OCIO, etc.)
2. Approximate AUM if known
3. Asset allocation approach (what do they invest in?)
4. Do they allocate to: Real Estate? Private Equity? Public Equities? Alternatives?
5. Investment style (core, value-add, opportunistic, growth, etc.)
6. Geographic focus
7. Any notable investment preferences or constraints
8. Key investment staff if known

If you don't have information on this firm, say "Limited information available" and provide any reasonable inferences based on the firm type and website.

Be concise but comprehensive. Focus on investment-relevant details.`, firmName, website)
}

// BuildScoringPrompt combines enrichment data and independent
// research into the per-offering scoring request. The per-offering
// sections and the JSON shape come from the roster.
func BuildScoringPrompt(firmName, website, enrichment, research string, offerings []roster.Offering) string {
	if enrichment == "" {
		enrichment = "No enrichment data provided"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `You are an expert institutional capital raising advisor. Analyze this allocator firm and score their fit for each of our %d clients.

FIRM: %s
WEBSITE: %s

ENRICHMENT DATA:
%s

INDEPENDENT RESEARCH:
%s

SCORING PHILOSOPHY:
- Most diversified institutional allocators (pensions, E&Fs, family offices) have broad mandates that include real estate and private equity
- Default to MODERATE fit if they have the relevant asset class allocation, even without specific sub-sector signals
- Upgrade to STRONG if there are explicit positive signals
- Only mark WEAK if there are mismatches or very limited allocations
- Only mark N/A if truly incompatible (e.g., public equity only, no alternatives)

SCORE EACH CLIENT:

`, len(offerings), firmName, website, enrichment, research)

	for i, offering := range offerings {
		fmt.Fprintf(&sb, "%d. %s (%s):\n", i+1, strings.ToUpper(offering.Name), offering.AssetClass)
		fmt.Fprintf(&sb, "   - STRONG if: %s\n", offering.FitRules.Strong)
		fmt.Fprintf(&sb, "   - MODERATE if: %s\n", offering.FitRules.Moderate)
		fmt.Fprintf(&sb, "   - WEAK if: %s\n", offering.FitRules.Weak)
		fmt.Fprintf(&sb, "   - N/A if: %s\n\n", offering.FitRules.NA)
	}

	sb.WriteString(`IMPORTANT GUIDANCE:
- Pensions, endowments, foundations, and large family offices typically have BOTH real estate AND private equity allocations
- If research shows a diversified alternatives program, default to MODERATE for the real estate and private equity clients
- Be generous with MODERATE - these are qualified institutional allocators worth a conversation
- Reserve WEAK/N/A for clear mismatches, not absence of specific signals

Return your analysis as JSON:
{
`)

	for _, offering := range offerings {
		fmt.Fprintf(&sb, "    %q: \"Strong/Moderate/Weak/N/A\",\n", offering.Key+"_fit")
		fmt.Fprintf(&sb, "    %q: \"brief reason\",\n", offering.Key+"_rationale")
	}

	sb.WriteString(`    "best_match": "client name with strongest fit",
    "overall_notes": "1-2 sentence summary of allocator profile and recommended approach"
}

Return ONLY valid JSON, no markdown fences or other text.`)

	return sb.String()
}
