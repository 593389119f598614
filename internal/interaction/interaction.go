// Package interaction flags drug-drug interactions and condition
// contraindications from a static rule table. Checking is a pure function
// of the medication and condition lists; the tables are read-only after
// package initialisation.
package interaction

import (
	"sort"
	"strings"

	"github.com/meditrack/rxpipeline/internal/knowledge"
)

// Severity grades a finding. Ordering, most to least severe:
// contraindicated > high > moderate > low.
type Severity string

const (
	SeverityLow             Severity = "low"
	SeverityModerate        Severity = "moderate"
	SeverityHigh            Severity = "high"
	SeverityContraindicated Severity = "contraindicated"
)

// Rank returns the sort weight of the severity, higher meaning more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityContraindicated:
		return 4
	case SeverityHigh:
		return 3
	case SeverityModerate:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Finding is one matched safety rule. It is never mutated after creation.
type Finding struct {
	Severity            Severity `json:"severity"`
	Description         string   `json:"description"`
	MedicationsInvolved []string `json:"medicationsInvolved"`
	Recommendation      string   `json:"recommendation"`
}

// Result carries the interaction and contraindication findings for one
// check, each list ranked most severe first.
type Result struct {
	Interactions      []Finding `json:"interactions"`
	Contraindications []Finding `json:"contraindications"`
}

// MostSevere returns the highest severity across both finding lists, or
// false when the result is clean.
func (r Result) MostSevere() (Severity, bool) {
	var (
		best  Severity
		found bool
	)
	for _, list := range [][]Finding{r.Interactions, r.Contraindications} {
		for _, f := range list {
			if !found || f.Severity.Rank() > best.Rank() {
				best = f.Severity
				found = true
			}
		}
	}
	return best, found
}

// Check matches every unordered medication pair against the interaction
// table and every medication/condition combination against the
// contraindication table. Brand names are resolved to generics before
// matching; matching is case-insensitive and symmetric in pair order. A
// pair or combination with no rule produces no finding.
func Check(medicationNames []string, conditions []string) Result {
	generics := make([]string, 0, len(medicationNames))
	for _, name := range medicationNames {
		generics = append(generics, canonicalDrug(name))
	}

	result := Result{
		Interactions:      []Finding{},
		Contraindications: []Finding{},
	}

	seen := map[string]struct{}{}
	for i := 0; i < len(generics); i++ {
		for j := i + 1; j < len(generics); j++ {
			rule, ok := lookupPair(generics[i], generics[j])
			if !ok {
				continue
			}
			key := rule.DrugA + "|" + rule.DrugB
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result.Interactions = append(result.Interactions, Finding{
				Severity:            rule.Severity,
				Description:         rule.Description,
				MedicationsInvolved: []string{rule.DrugA, rule.DrugB},
				Recommendation:      rule.Recommendation,
			})
		}
	}

	for _, generic := range generics {
		for _, condition := range conditions {
			for _, rule := range contraindicationRules {
				if !strings.EqualFold(generic, rule.Drug) {
					continue
				}
				if !conditionMatches(condition, rule.Condition) {
					continue
				}
				result.Contraindications = append(result.Contraindications, Finding{
					Severity:            rule.Severity,
					Description:         rule.Description,
					MedicationsInvolved: []string{rule.Drug},
					Recommendation:      rule.Recommendation,
				})
			}
		}
	}

	rank(result.Interactions)
	rank(result.Contraindications)
	return result
}

// canonicalDrug resolves a brand name to its generic and strips casing
// differences for matching. Unrecognised names pass through trimmed.
func canonicalDrug(name string) string {
	if entry, ok := knowledge.GenericName(name); ok {
		return entry.Generic
	}
	if generic, ok := knowledge.CanonicalGeneric(name); ok {
		return generic
	}
	return strings.TrimSpace(name)
}

func lookupPair(a, b string) (pairRule, bool) {
	for _, rule := range interactionRules {
		if strings.EqualFold(a, rule.DrugA) && strings.EqualFold(b, rule.DrugB) {
			return rule, true
		}
		if strings.EqualFold(a, rule.DrugB) && strings.EqualFold(b, rule.DrugA) {
			return rule, true
		}
	}
	return pairRule{}, false
}

// conditionMatches reports whether a patient condition names the rule's
// condition, allowing the patient phrasing to carry qualifiers ("chronic
// kidney disease stage 3" matches "chronic kidney disease").
func conditionMatches(patientCondition, ruleCondition string) bool {
	return strings.Contains(strings.ToLower(patientCondition), strings.ToLower(ruleCondition))
}

func rank(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() > findings[j].Severity.Rank()
	})
}
