package synthesis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/spec-customizer/internal/types"
)

// Advice is one firing of an advisory rule.
type Advice struct {
	Key     string // distinguishes multiple firings of one rule
	Message string
	Action  string
}

// AdvisoryRule is a content-triggered rule evaluated over the whole charter,
// independent of placeholder substitution. It may fire zero or more times.
type AdvisoryRule struct {
	Name     string
	Section  string
	Kind     types.TipKind
	Evaluate func(c *types.Charter) []Advice
}

var (
	percentPattern  = regexp.MustCompile(`(\d{1,3})\s*(%|percent)`)
	standardPattern = regexp.MustCompile(`\b(ASTM|ISO|ANSI|ACI|AISC|UL)\b`)
	hazardPattern   = regexp.MustCompile(`(?i)\b(asbestos|lead|hazardous)\b`)
)

// DefaultRules returns the built-in advisory rules.
func DefaultRules() []AdvisoryRule {
	return []AdvisoryRule{
		{
			Name:    "leed",
			Section: "014000",
			Kind:    types.TipSuggestion,
			Evaluate: func(c *types.Charter) []Advice {
				if !anyContainsFold(c.SustainabilityGoals, "leed") {
					return nil
				}
				return []Advice{{
					Message: "Sustainability goals reference LEED certification. Link quality assurance requirements to LEED credit documentation.",
					Action:  "Add LEED Requirements",
				}}
			},
		},
		{
			Name:    "phased-schedule",
			Section: "011000",
			Kind:    types.TipSuggestion,
			Evaluate: func(c *types.Charter) []Advice {
				if !containsFold(c.Schedule, "phase") {
					return nil
				}
				return []Advice{{
					Message: "The project schedule describes phased construction. Add a phasing article that defines work sequence and occupancy milestones.",
					Action:  "Add Phasing Article",
				}}
			},
		},
		{
			Name:    "occupied-facility",
			Section: "015000",
			Kind:    types.TipWarning,
			Evaluate: func(c *types.Charter) []Advice {
				if !containsFold(c.Description, "occupied") {
					return nil
				}
				return []Advice{{
					Message: "Work occurs in an occupied facility. Specify temporary partitions and occupant protection measures.",
					Action:  "Add Occupant Protection",
				}}
			},
		},
		{
			Name:    "waste-diversion",
			Section: "017419",
			Kind:    types.TipSuggestion,
			Evaluate: func(c *types.Charter) []Advice {
				target := maxPercent(c.WasteManagementGoals)
				if target < 75 {
					return nil
				}
				return []Advice{{
					Message: fmt.Sprintf("A waste diversion target of %d percent requires a waste management plan with monthly diversion reports.", target),
					Action:  "Add Reporting Requirements",
				}}
			},
		},
		{
			Name:    "hazardous-materials",
			Section: "015000",
			Kind:    types.TipWarning,
			Evaluate: func(c *types.Charter) []Advice {
				safety, _ := c.Field(types.FieldSafetyRequirements)
				if safety.Present() {
					return nil
				}
				if !anyMatches(c.Constraints, hazardPattern) {
					return nil
				}
				return []Advice{{
					Message: "Project constraints mention hazardous materials but no safety requirements are defined.",
					Action:  "Add Safety Requirements",
				}}
			},
		},
		{
			Name:    "referenced-standard",
			Section: "014000",
			Kind:    types.TipSuggestion,
			Evaluate: func(c *types.Charter) []Advice {
				var advice []Advice
				for i, req := range c.QualityRequirements {
					req = strings.TrimSpace(req)
					if !standardPattern.MatchString(req) {
						continue
					}
					advice = append(advice, Advice{
						Key:     strconv.Itoa(i + 1),
						Message: fmt.Sprintf("Quality requirement %q cites a referenced standard. List it in Section 014200 References.", req),
						Action:  "Add Reference",
					})
				}
				return advice
			},
		},
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

func anyContainsFold(values []string, substr string) bool {
	for _, v := range values {
		if containsFold(v, substr) {
			return true
		}
	}
	return false
}

func anyMatches(values []string, pattern *regexp.Regexp) bool {
	for _, v := range values {
		if pattern.MatchString(v) {
			return true
		}
	}
	return false
}

// maxPercent returns the largest percentage (0-100) mentioned in values, or 0.
func maxPercent(values []string) int {
	best := 0
	for _, v := range values {
		for _, m := range percentPattern.FindAllStringSubmatch(v, -1) {
			n, err := strconv.Atoi(m[1])
			if err == nil && n <= 100 && n > best {
				best = n
			}
		}
	}
	return best
}
