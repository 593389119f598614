// Package parser turns raw prescription text into structured medication
// records. Parsing is total: every input string, including empty or
// non-prescription text, yields a ParsedPrescription value.
package parser

import "time"

// Warning messages attached to parse results. These strings are part of the
// public contract; callers match on them.
const (
	WarnNoDosage        = "No dosage information found"
	WarnNoFrequency     = "No frequency information found"
	WarnNoMedications   = "No medications found in prescription text"
	WarnLowConfidence   = "Some medications have low confidence scores"
	WarnParseFailed     = "Failed to parse prescription text"
	WarnUnknownICD10Fmt = "Unknown ICD-10 code: %s"
)

// lowConfidenceThreshold triggers the document-level low-confidence warning.
const lowConfidenceThreshold = 0.7

// ParsedMedication is one medication extracted from a prescription document.
// Warnings are append-only; Confidence only ever decreases after its initial
// value of 1.0.
type ParsedMedication struct {
	Name           string   `json:"name"`
	GenericName    string   `json:"genericName,omitempty"`
	Strength       string   `json:"strength,omitempty"`
	DosageAmount   float64  `json:"dosageAmount,omitempty"`
	DosageUnit     string   `json:"dosageUnit,omitempty"`
	Frequency      string   `json:"frequency,omitempty"`
	Timing         string   `json:"timing,omitempty"`
	Quantity       int      `json:"quantity,omitempty"`
	Repeats        int      `json:"repeats,omitempty"`
	Instructions   string   `json:"instructions,omitempty"`
	MedicationType string   `json:"medicationType,omitempty"`
	CustomTimes    []string `json:"customTimes,omitempty"`
	Confidence     float64  `json:"confidence"`
	Warnings       []string `json:"warnings,omitempty"`
}

// ICD10Code is an immutable diagnosis code reference. Description and
// Category are empty when the code is not in the lookup table.
type ICD10Code struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// ParsedPrescription is the result of parsing one document. Medications keep
// source-line order. Confidence is the arithmetic mean of the medication
// confidences, or 0 when no medications were found.
type ParsedPrescription struct {
	Medications        []ParsedMedication `json:"medications"`
	PrescriptionNumber string             `json:"prescriptionNumber,omitempty"`
	PrescribingDoctor  string             `json:"prescribingDoctor,omitempty"`
	PrescribedDate     *time.Time         `json:"prescribedDate,omitempty"`
	ExpiryDate         *time.Time         `json:"expiryDate,omitempty"`
	ICD10Codes         []ICD10Code        `json:"icd10Codes,omitempty"`
	Confidence         float64            `json:"confidence"`
	Warnings           []string           `json:"warnings,omitempty"`
}

// Options controls parsing behaviour. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// ExpandAbbreviations replaces a recognised brand name with its generic
	// name in the Name field.
	ExpandAbbreviations bool
	// ValidateAgainstDatabase warns on medication names absent from the
	// knowledge base.
	ValidateAgainstDatabase bool
	// IncludeGenericNames populates GenericName for recognised brands even
	// when the brand name is kept as Name.
	IncludeGenericNames bool
	// StrictMode drops medications whose names cannot be resolved in the
	// knowledge base instead of keeping them with a warning.
	StrictMode bool
	// Language tags the source locale, "en" or "af". Both locales' phrase
	// variants are always recognised; the tag is carried for callers.
	Language string
}

// DefaultOptions returns the standard parsing configuration.
func DefaultOptions() Options {
	return Options{
		ExpandAbbreviations:     true,
		ValidateAgainstDatabase: true,
		IncludeGenericNames:     true,
		StrictMode:              false,
		Language:                "en",
	}
}

// penaltyRule is one confidence penalty: when applies reports true for a
// fully assembled medication, Confidence is multiplied by factor and warning
// is appended. Rules run in declaration order.
type penaltyRule struct {
	applies func(m *ParsedMedication) bool
	factor  float64
	warning string
}

var penaltyRules = []penaltyRule{
	{
		applies: func(m *ParsedMedication) bool { return m.Strength == "" && m.DosageAmount == 0 },
		factor:  0.8,
		warning: WarnNoDosage,
	},
	{
		applies: func(m *ParsedMedication) bool { return m.Frequency == "" },
		factor:  0.9,
		warning: WarnNoFrequency,
	},
}

// applyPenalties runs the penalty rules against m in order.
func applyPenalties(m *ParsedMedication) {
	for _, r := range penaltyRules {
		if r.applies(m) {
			m.Confidence *= r.factor
			m.Warnings = append(m.Warnings, r.warning)
		}
	}
}
