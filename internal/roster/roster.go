// Package roster holds the fixed set of client offerings that firms are
// scored against. The scoring prompt, the outreach persona prompt, and
// the result parsers all derive their field names from this roster, so
// adding an offering here is the single place the taxonomy grows.
package roster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FitRules holds the per-offering guidance for each fit level, embedded
// verbatim into the scoring prompt.
type FitRules struct {
	Strong   string `yaml:"strong"`
	Moderate string `yaml:"moderate"`
	Weak     string `yaml:"weak"`
	NA       string `yaml:"na"`
}

// Offering describes one client campaign: what it is, who it suits, and
// how to recognize (or rule out) a fit.
type Offering struct {
	// Key is the snake token used for LLM JSON result fields
	// (e.g. "stoneriver" -> "stoneriver_fit", "stoneriver_rationale")
	// and must be unique across the roster.
	Key string `yaml:"key"`

	// Name is the short label used in record fields and tags.
	Name string `yaml:"name"`

	FullName        string   `yaml:"full_name"`
	AssetClass      string   `yaml:"asset_class"`
	Strategy        string   `yaml:"strategy"`
	Geography       string   `yaml:"geography"`
	TicketSize      string   `yaml:"ticket_size"`
	Differentiator  string   `yaml:"differentiator"`
	IdealAllocators []string `yaml:"ideal_allocators"`
	HighFitSignals  []string `yaml:"high_fit_signals"`
	Disqualifiers   []string `yaml:"disqualifiers"`
	HookThemes      []string `yaml:"hook_themes"`
	FitRules        FitRules `yaml:"fit_rules"`
}

// Load returns the roster from a YAML file, or the compiled-in default
// roster when path is empty. A file that exists but fails to parse or
// validate is an error rather than a silent fallback.
func Load(path string) ([]Offering, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var config struct {
		Offerings []Offering `yaml:"offerings"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	if err := Validate(config.Offerings); err != nil {
		return nil, err
	}
	return config.Offerings, nil
}

// Validate checks roster integrity: non-empty, unique keys and names
func Validate(offerings []Offering) error {
	if len(offerings) == 0 {
		return fmt.Errorf("roster is empty")
	}

	seen := make(map[string]bool)
	for _, o := range offerings {
		if o.Key == "" || o.Name == "" {
			return fmt.Errorf("roster entry missing key or name: %+v", o)
		}
		if seen[o.Key] {
			return fmt.Errorf("duplicate roster key: %s", o.Key)
		}
		seen[o.Key] = true
	}
	return nil
}

// ByName finds an offering by its short label, case-insensitive.
// Returns nil when no offering matches.
func ByName(offerings []Offering, name string) *Offering {
	for i := range offerings {
		if strings.EqualFold(offerings[i].Name, strings.TrimSpace(name)) {
			return &offerings[i]
		}
	}
	return nil
}

// Names returns the short labels of all offerings in roster order
func Names(offerings []Offering) []string {
	names := make([]string, 0, len(offerings))
	for _, o := range offerings {
		names = append(names, o.Name)
	}
	return names
}

// Default returns the compiled-in six-offering roster
func Default() []Offering {
	return []Offering{
		{
			Key:            "stoneriver",
			Name:           "StoneRiver",
			FullName:       "StoneRiver Investment Fund III",
			AssetClass:     "Class A Multifamily Real Estate (Apartments)",
			Strategy:       "Value-Add, Core-Plus, Ground-Up Development (max 30%)",
			Geography:      "Southeast US / Sunbelt (AL, FL, GA, KY, NC, SC, TN, TX, VA)",
			TicketSize:     "$5M-$25M",
			Differentiator: "Vertically integrated manager with in-house construction and property management",
			IdealAllocators: []string{
				"Multi-Family Offices seeking operator-led deals",
				"Single Family Offices with Sunbelt focus",
				"Healthcare Foundations with real estate mandates",
				"University Endowments with alternatives buckets",
				"RIAs/Wealth Platforms aggregating institutional tickets",
			},
			HighFitSignals: []string{
				"Vertically integrated", "Operator-focused",
				"Sunbelt/Southeast/Migration themes", "Value-Add appetite",
				"Middle Market preference", "Real Assets allocation",
			},
			Disqualifiers: []string{
				"Core-only mandates", "Gateway cities only (NYC/SF/LA)",
				"Debt/credit only", "Internal RE acquisition teams",
			},
			HookThemes: []string{
				"Demographic tailwinds in the Sunbelt",
				"Operator alignment and vertical integration",
				"Middle-market fund where LP relationships matter",
			},
			FitRules: FitRules{
				Strong:   "Value-add or opportunistic appetite, vertically integrated preference, explicit multifamily interest, co-invest opportunities",
				Moderate: "Has real estate allocation (most diversified allocators do), invests in private RE generally",
				Weak:     "Core-only mandate, gateway cities only, very small RE allocation",
				NA:       "No real estate allocation at all",
			},
		},
		{
			Key:            "ashtongray",
			Name:           "Ashton Gray",
			FullName:       "Ashton Gray Investment Fund (AGIF)",
			AssetClass:     "Stabilized Healthcare-Anchored Retail Real Estate",
			Strategy:       "Evergreen income fund, NOT development",
			Geography:      "Sunbelt markets (Texas-focused)",
			TicketSize:     "Flexible, institutional focus",
			Differentiator: "Stabilized, recession-resistant healthcare tenancy (dental, urgent care, PT, vet)",
			IdealAllocators: []string{
				"University endowments seeking income",
				"Healthcare foundations (natural alignment)",
				"Hospitals with investment arms",
				"Insurance companies with income mandates",
				"Family Offices seeking tax-efficient K-1 distributions",
				"RIAs building income alternatives sleeves",
			},
			HighFitSignals: []string{
				"Core/Core+ real estate", "Income-focused/Yield",
				"Healthcare real estate/Medical office", "Long-term leases",
				"Sunbelt exposure", "Defensive tenancy",
			},
			Disqualifiers: []string{
				"Development-only", "Industrial-only or multifamily-only",
				"Short liquidity needs (<2 years)", "Retail aversion",
			},
			HookThemes: []string{
				"Healthcare retail is sticky and e-commerce-proof",
				"Monthly distributions with strong WALT",
				"Opportunistic returns with core+ risk profile",
			},
			FitRules: FitRules{
				Strong:   "Retail real estate interest, income/core+ focus, NNN or retail experience",
				Moderate: "Has real estate allocation, seeks income/yield, diversified RE exposure",
				Weak:     "Explicitly avoids retail, development-only focus",
				NA:       "No real estate allocation at all",
			},
		},
		{
			Key:            "willowcrest",
			Name:           "Willow Crest",
			FullName:       "Willow Crest Asset Management - Inflation Structured Product",
			AssetClass:     "Structural alpha, inflation-linked strategy",
			Strategy:       "Long-duration (10-20yr) macro-structural trades exploiting regulatory/demographic bottlenecks",
			Geography:      "Global",
			TicketSize:     "$50M-$200M+",
			Differentiator: "Highly proprietary IP requiring NDA; non-cyclical, non-market-correlated outcomes",
			IdealAllocators: []string{
				"Endowments & Foundations with inflation/real asset buckets",
				"Sovereign Wealth Funds with long-duration capital",
				"Large Public Pensions with specialist teams",
				"Institutional Family Offices comfortable with non-traditional exposures",
			},
			HighFitSignals: []string{
				"Inflation-linked/protection mandates", "Real Assets adjacent",
				"Non-correlated/diversifying streams", "Long-duration/patient capital",
				"Opportunistic/special situations", "Regulatory/structural themes",
			},
			Disqualifiers: []string{
				"Equity-only/60-40 traditionalists", "Unwilling to sign NDAs early",
				"Require full transparency pre-NDA", "Retail individuals",
			},
			HookThemes: []string{
				"Inflation protection with asymmetric upside",
				"Diversifying return stream uncorrelated to markets",
				"Structural alpha from regulatory/demographic dislocations",
			},
			FitRules: FitRules{
				Strong:   "Real assets mandate, inflation protection interest, 10-20yr horizon tolerance, $50M+ checks",
				Moderate: "Has real assets/alternatives allocation, diversified institutional investor",
				Weak:     "Short duration focus, liquidity constraints, small ticket sizes",
				NA:       "No alternatives/real assets allocation",
			},
		},
		{
			Key:            "icw",
			Name:           "ICW",
			FullName:       "ICW Holdings - Strategic Equities Strategy",
			AssetClass:     "Global, macro-informed, long-only equities",
			Strategy:       "4 sub-portfolio balanced approach across regimes",
			Geography:      "Global",
			TicketSize:     "Variable",
			Differentiator: "Bridgewater DNA + macro regime framework for equities",
			IdealAllocators: []string{
				"Endowments & Foundations with global equity mandates",
				"Corporate/public pensions seeking risk-managed equities",
				"Family Offices valuing macro discipline",
				"OCIOs seeking differentiated equity exposure",
			},
			HighFitSignals: []string{
				"Global equity mandate", "Macro-aware/regime-aware",
				"Risk-managed equities", "Inflation resilience",
				"Downside mitigation focus", "Quality/cash flow orientation",
			},
			Disqualifiers: []string{
				"Private markets only", "Hedge fund (short/leverage) only",
				"Index-only/fee-minimizing", "Daily liquidity required",
			},
			HookThemes: []string{
				"Bridgewater pedigree applied to long-only equities",
				"Regime-balanced approach for all economic environments",
				"Demonstrated downside protection (2022, 2025 stress)",
			},
			FitRules: FitRules{
				Strong:   "Global equity mandate, macro-aware investing, risk-managed equity interest",
				Moderate: "Has public equity allocation, diversified portfolio approach",
				Weak:     "Passive/index only, single region focus",
				NA:       "Private markets only, no public equity",
			},
		},
		{
			Key:            "highmount",
			Name:           "Highmount",
			FullName:       "Highmount Capital - Sports & Entertainment Growth Fund",
			AssetClass:     "Growth-oriented private equity",
			Strategy:       "Sports & entertainment, creator economy, media, live experiences",
			Geography:      "Global",
			TicketSize:     "$50M-$250M",
			Differentiator: "Sector-specialist PE in sports/entertainment with operational value-add",
			IdealAllocators: []string{
				"Sovereign Wealth Funds with PE growth mandates",
				"Large public pensions with alternatives allocation",
				"University endowments with large PE programs",
				"Growth-focused Family Offices with sports/media interest",
				"Strategic investors (media conglomerates)",
			},
			HighFitSignals: []string{
				"Private equity growth", "Sports & entertainment interest",
				"Media/creator economy", "Middle market PE",
				"Pre-fund/anchor investor appetite",
			},
			Disqualifiers: []string{
				"Core real estate income only", "Short-term liquidity (<3 years)",
				"Passive/index only", "No interest in thematic verticals",
			},
			HookThemes: []string{
				"Sports & entertainment as an institutional asset class",
				"Creator economy and live experiences growth",
				"Demonstrated execution with Dude Perfect investment",
			},
			FitRules: FitRules{
				Strong:   "Growth PE mandate, media/entertainment/sports interest, consumer/TMT focus",
				Moderate: "Has private equity allocation, growth equity experience, diversified PE program",
				Weak:     "Buyout-only, very narrow sector focus excluding consumer/media",
				NA:       "No private equity allocation",
			},
		},
		{
			Key:            "coinvest",
			Name:           "Co-Invests",
			FullName:       "Plinian Private Co-Invest Platform",
			AssetClass:     "Variable - PE, growth, credit, real assets, infrastructure",
			Strategy:       "Off-market, direct co-investments across sectors",
			Geography:      "Global",
			TicketSize:     "$5M-$200M+ (deal dependent)",
			Differentiator: "Curated, non-intermediated deal flow with fast execution",
			IdealAllocators: []string{
				"Sovereign Wealth Funds with co-invest teams",
				"Large pensions with direct investing capability",
				"$1B+ Family Offices with deal teams",
				"PE Funds-of-Funds with co-invest arms",
			},
			HighFitSignals: []string{
				"Direct co-investments", "Opportunistic private investing",
				"Flexible check sizes", "Fast-track diligence",
				"Cross-sector mandate",
			},
			Disqualifiers: []string{
				"Only invest via funds", "Needs lead sponsor always",
				"Long approval cycles", "Geo-restricted mandates",
			},
			HookThemes: []string{
				"Proprietary deal flow outside traditional channels",
				"Flexibility to participate in unique situations",
				"Direct access without fund overhead",
			},
			FitRules: FitRules{
				Strong:   "Direct co-invest capability, flexible mandate, fast decision process, experienced deal team",
				Moderate: "Has alternatives allocation, some direct investment experience",
				Weak:     "Fund-only investor, slow IC process, needs lead sponsor",
				NA:       "No alternatives capability",
			},
		},
	}
}
