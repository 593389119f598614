package parser

import (
	"strings"

	"github.com/meditrack/rxpipeline/internal/knowledge"
	"github.com/meditrack/rxpipeline/internal/lexicon"
)

// WarnUnknownName is appended to a medication when its name resolves in
// neither the brand table nor the generic index.
const WarnUnknownName = "Medication name not found in database"

// ParseLine extracts a single medication from one normalized line. It
// reports false when the line carries no medication-name candidate.
// Confidence penalties are applied to the result; callers assembling
// multi-line medication blocks use parseMedicationLine and apply penalties
// after the block is complete.
func ParseLine(line string, opts Options) (ParsedMedication, bool) {
	med, _, ok := parseMedicationLine(normalizeLine(line), opts)
	if !ok {
		return ParsedMedication{}, false
	}
	applyPenalties(&med)
	return med, true
}

// parseMedicationLine extracts a medication without applying confidence
// penalties. known reports whether the name resolved in the knowledge base.
func parseMedicationLine(line string, opts Options) (med ParsedMedication, known bool, ok bool) {
	name, found := lexicon.MedicationName(line)
	if !found {
		return ParsedMedication{}, false, false
	}

	med = ParsedMedication{Confidence: 1.0}
	known = resolveName(&med, name.Value, opts)
	extractFields(line, &med)
	return med, known, true
}

// resolveName sets Name and GenericName from the raw candidate per the
// parsing options. It reports whether the name is known to the knowledge
// base, as a brand or as a generic.
func resolveName(med *ParsedMedication, raw string, opts Options) bool {
	if entry, ok := knowledge.GenericName(raw); ok {
		if opts.IncludeGenericNames {
			med.GenericName = entry.Generic
		}
		if opts.ExpandAbbreviations {
			med.Name = entry.Generic
		} else {
			med.Name = titleCase(raw)
		}
		return true
	}
	if generic, ok := knowledge.CanonicalGeneric(raw); ok {
		med.Name = generic
		return true
	}

	med.Name = titleCase(raw)
	if opts.ValidateAgainstDatabase {
		med.Warnings = append(med.Warnings, WarnUnknownName)
	}
	return false
}

// extractFields runs every field matcher over the line and fills the fields
// that are still empty on med. Each matcher is independent; a failed match
// leaves its field untouched.
func extractFields(line string, med *ParsedMedication) bool {
	any := false

	if med.Strength == "" {
		if m, ok := lexicon.Strength(line); ok {
			med.Strength = m.Value
			any = true
		}
	}
	if med.DosageAmount == 0 {
		if m, ok := lexicon.Dosage(line); ok {
			med.DosageAmount = m.Amount
			med.DosageUnit = m.Unit
			any = true
		}
	}
	if med.Frequency == "" {
		if m, ok := lexicon.Frequency(line); ok {
			med.Frequency = normalizeFrequency(m.Value)
			any = true
		}
	}
	if med.Timing == "" {
		if m, ok := lexicon.Timing(line); ok {
			med.Timing = normalizeTiming(m.Value)
			any = true
		}
	}
	if med.Quantity == 0 {
		if m, ok := lexicon.Quantity(line); ok {
			med.Quantity = m.Count
			any = true
		}
	}
	if med.Repeats == 0 {
		if m, ok := lexicon.Repeats(line); ok {
			med.Repeats = m.Count
			any = true
		}
	}
	if med.Instructions == "" {
		if m, ok := lexicon.Instructions(line); ok {
			med.Instructions = m.Value
			any = true
		}
	}
	if med.MedicationType == "" {
		if t, ok := knowledge.ClassifyMedicationType(line); ok {
			med.MedicationType = t
			any = true
		}
	}
	if times := lexicon.ExplicitTimes(line); len(times) > 0 {
		med.CustomTimes = appendMissing(med.CustomTimes, times)
		any = true
	}

	return any
}

// continuationFields parses a nameless line as a continuation of the
// preceding medication block. It reports false when the line carries no
// recognisable medication fields.
func continuationFields(line string) (ParsedMedication, bool) {
	var med ParsedMedication
	if !extractFields(line, &med) {
		return ParsedMedication{}, false
	}
	return med, true
}

// merge fills the fields still missing on med from a continuation line.
// Populated fields are never overwritten; custom times accumulate.
func merge(med *ParsedMedication, cont ParsedMedication) {
	if med.Strength == "" {
		med.Strength = cont.Strength
	}
	if med.DosageAmount == 0 {
		med.DosageAmount = cont.DosageAmount
		med.DosageUnit = cont.DosageUnit
	}
	if med.Frequency == "" {
		med.Frequency = cont.Frequency
	}
	if med.Timing == "" {
		med.Timing = cont.Timing
	}
	if med.Quantity == 0 {
		med.Quantity = cont.Quantity
	}
	if med.Repeats == 0 {
		med.Repeats = cont.Repeats
	}
	if med.Instructions == "" {
		med.Instructions = cont.Instructions
	}
	if med.MedicationType == "" {
		med.MedicationType = cont.MedicationType
	}
	med.CustomTimes = appendMissing(med.CustomTimes, cont.CustomTimes)
}

// normalizeFrequency maps a matched phrase to its canonical form, keeping
// the original text when no mapping exists.
func normalizeFrequency(phrase string) string {
	if canon, ok := knowledge.NormalizeFrequency(phrase); ok {
		return canon
	}
	return phrase
}

func normalizeTiming(phrase string) string {
	if canon, ok := knowledge.NormalizeTiming(phrase); ok {
		return canon
	}
	return phrase
}

func normalizeLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func appendMissing(dst []string, src []string) []string {
	for _, s := range src {
		seen := false
		for _, d := range dst {
			if d == s {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, s)
		}
	}
	return dst
}
