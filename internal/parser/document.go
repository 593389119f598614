package parser

import (
	"fmt"
	"strings"

	"github.com/meditrack/rxpipeline/internal/knowledge"
	"github.com/meditrack/rxpipeline/internal/lexicon"
)

// Parse turns a full prescription document into a ParsedPrescription. It is
// a total function: any input, including empty or non-prescription text,
// yields a structurally valid result, and an unexpected internal fault is
// reported as an empty result with a warning instead of a panic.
//
// Medication lines are parsed in document order and that order is preserved
// in the result. A line with no medication-name candidate but with
// recognisable dosage, frequency, quantity, repeat or timing fields is
// treated as a continuation of the preceding medication block, filling only
// the fields the block is still missing. Document metadata (prescription
// number, doctor, dates, diagnosis codes) is extracted from the whole text
// independently of the line scan.
func Parse(text string, opts Options) (result ParsedPrescription) {
	defer func() {
		if r := recover(); r != nil {
			result = ParsedPrescription{
				Medications: []ParsedMedication{},
				Confidence:  0,
				Warnings:    []string{WarnParseFailed},
			}
		}
	}()

	result = ParsedPrescription{Medications: []ParsedMedication{}}

	var (
		current      *ParsedMedication
		currentKnown bool
	)
	flush := func() {
		if current == nil {
			return
		}
		if !(opts.StrictMode && !currentKnown) {
			applyPenalties(current)
			result.Medications = append(result.Medications, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = normalizeLine(line)
		if line == "" {
			continue
		}
		if med, known, ok := parseMedicationLine(line, opts); ok {
			flush()
			current = &med
			currentKnown = known
			continue
		}
		if current == nil {
			continue
		}
		if cont, ok := continuationFields(line); ok {
			merge(current, cont)
		}
	}
	flush()

	extractMetadata(text, &result)

	if len(result.Medications) == 0 {
		result.Confidence = 0
		result.Warnings = append(result.Warnings, WarnNoMedications)
		return result
	}

	sum := 0.0
	low := false
	for _, m := range result.Medications {
		sum += m.Confidence
		if m.Confidence < lowConfidenceThreshold {
			low = true
		}
	}
	result.Confidence = sum / float64(len(result.Medications))
	if low {
		result.Warnings = append(result.Warnings, WarnLowConfidence)
	}
	return result
}

// extractMetadata pulls document-level fields from the whole text. The
// expiry date is matched before the prescribed date so that the bare "date"
// label cannot claim the expiry line's date for the prescribed field.
func extractMetadata(text string, result *ParsedPrescription) {
	if m, ok := lexicon.PrescriptionNumber(text); ok {
		result.PrescriptionNumber = m.Value
	}
	if m, ok := lexicon.DoctorName(text); ok {
		result.PrescribingDoctor = m.Value
	}

	expiry, hasExpiry := lexicon.ExpiryDate(text)
	if hasExpiry {
		t := expiry.Time
		result.ExpiryDate = &t
	}
	if prescribed, ok := lexicon.PrescribedDate(text); ok {
		if !(hasExpiry && prescribed.Start == expiry.Start) {
			t := prescribed.Time
			result.PrescribedDate = &t
		}
	}

	seen := map[string]struct{}{}
	for _, m := range lexicon.ICD10All(text) {
		if _, dup := seen[m.Value]; dup {
			continue
		}
		seen[m.Value] = struct{}{}
		code := ICD10Code{Code: m.Value}
		if entry, ok := knowledge.ICD10Lookup(m.Value); ok {
			code.Description = entry.Description
			code.Category = entry.Category
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf(WarnUnknownICD10Fmt, m.Value))
		}
		result.ICD10Codes = append(result.ICD10Codes, code)
	}
}
