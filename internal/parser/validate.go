package parser

import (
	"strings"

	"github.com/meditrack/rxpipeline/internal/knowledge"
)

// maxSuggestions caps the fuzzy suggestion list for unknown names.
const maxSuggestions = 5

// NameValidation is the outcome of checking a medication name against the
// knowledge base.
type NameValidation struct {
	IsValid      bool     `json:"isValid"`
	ExpandedName string   `json:"expandedName,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// ValidateMedicationName checks a candidate name against the knowledge base.
// A known brand name is valid and expands to its generic name; a known
// generic name is valid as-is. For unknown names up to five suggestions are
// produced by substring containment in either direction over the brand
// keyset. Containment, not edit distance, is the matching rule; short
// candidates can therefore surface loosely related brands.
func ValidateMedicationName(name string) NameValidation {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return NameValidation{}
	}

	if entry, ok := knowledge.GenericName(trimmed); ok {
		return NameValidation{IsValid: true, ExpandedName: entry.Generic}
	}
	if generic, ok := knowledge.CanonicalGeneric(trimmed); ok {
		return NameValidation{IsValid: true, ExpandedName: generic}
	}

	upper := strings.ToUpper(trimmed)
	var suggestions []string
	for _, brand := range knowledge.BrandNames() {
		if strings.Contains(brand, upper) || strings.Contains(upper, brand) {
			suggestions = append(suggestions, titleCase(brand))
			if len(suggestions) == maxSuggestions {
				break
			}
		}
	}
	return NameValidation{Suggestions: suggestions}
}
