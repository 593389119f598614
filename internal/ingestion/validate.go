package ingestion

import (
	"fmt"
	"regexp"

	"github.com/meditrack/rxpipeline/internal/knowledge"
	"github.com/meditrack/rxpipeline/internal/lexicon"
)

var (
	strengthFormatRe = buildStrengthFormatRe()
	icd10FormatRe    = regexp.MustCompile(`^[A-Z]\d{2}(\.\d{1,2})?$`)
)

func buildStrengthFormatRe() *regexp.Regexp {
	alt := ""
	for i, u := range lexicon.StrengthUnits {
		if i > 0 {
			alt += "|"
		}
		alt += regexp.QuoteMeta(u)
	}
	return regexp.MustCompile(`(?i)^\d+(\.\d+)?\s*(` + alt + `)(/(ml|dose|actuation))?$`)
}

// validate checks one medication's fields against the static validators.
// Every failure is reported; validation does not stop at the first problem.
func validate(index int, med MedicationInput) []ProcessingError {
	var errs []ProcessingError

	if med.Name == "" {
		errs = append(errs, ProcessingError{
			Index:      index,
			Medication: med.Name,
			Field:      "name",
			Code:       CodeMissingMedicationName,
			Message:    "medication name is required",
		})
	}
	if med.Strength != "" && !strengthFormatRe.MatchString(med.Strength) {
		errs = append(errs, ProcessingError{
			Index:      index,
			Medication: med.Name,
			Field:      "strength",
			Code:       CodeInvalidStrength,
			Message:    fmt.Sprintf("strength %q is not a number followed by a recognised unit", med.Strength),
		})
	}
	if med.Manufacturer != "" && !knowledge.KnownManufacturer(med.Manufacturer) {
		errs = append(errs, ProcessingError{
			Index:      index,
			Medication: med.Name,
			Field:      "manufacturer",
			Code:       CodeUnknownManufacturer,
			Message:    fmt.Sprintf("manufacturer %q is not on the recognised list", med.Manufacturer),
		})
	}
	return errs
}

// validateICD10 checks code shape only; unknown-but-well-formed codes are a
// warning elsewhere, not an error here.
func validateICD10(code string) bool {
	return icd10FormatRe.MatchString(code)
}
