package parser

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

func hasWarning(warnings []string, want string) bool {
	for _, w := range warnings {
		if w == want {
			return true
		}
	}
	return false
}

func TestParseMultiLineMedicationBlock(t *testing.T) {
	text := "METFORMIN 500mg tablets\nTake 1 tablet twice daily with meals\nQuantity: 60 tablets\n+ 5 repeats"

	result := Parse(text, DefaultOptions())
	if len(result.Medications) != 1 {
		t.Fatalf("got %d medications, want 1", len(result.Medications))
	}

	med := result.Medications[0]
	if med.Name != "Metformin" {
		t.Errorf("name = %q, want Metformin", med.Name)
	}
	if med.Strength != "500mg" {
		t.Errorf("strength = %q, want 500mg", med.Strength)
	}
	if med.Frequency != "twice daily" {
		t.Errorf("frequency = %q, want twice daily", med.Frequency)
	}
	if med.Timing != "with meals" {
		t.Errorf("timing = %q, want with meals", med.Timing)
	}
	if med.Quantity != 60 {
		t.Errorf("quantity = %d, want 60", med.Quantity)
	}
	if med.Repeats != 5 {
		t.Errorf("repeats = %d, want 5", med.Repeats)
	}
	if med.MedicationType != "tablet" {
		t.Errorf("type = %q, want tablet", med.MedicationType)
	}
	if med.Confidence <= 0.8 {
		t.Errorf("confidence = %v, want > 0.8", med.Confidence)
	}
}

func TestParseEmptyInput(t *testing.T) {
	result := Parse("", DefaultOptions())
	if len(result.Medications) != 0 {
		t.Fatalf("got %d medications, want 0", len(result.Medications))
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", result.Confidence)
	}
	if !hasWarning(result.Warnings, WarnNoMedications) {
		t.Errorf("warnings = %v, want %q", result.Warnings, WarnNoMedications)
	}
}

func TestParseExpandsBrandNames(t *testing.T) {
	text := "LANTUS 100units/ml injection\nInject 20 units once daily at night"

	result := Parse(text, DefaultOptions())
	if len(result.Medications) != 1 {
		t.Fatalf("got %d medications, want 1", len(result.Medications))
	}

	med := result.Medications[0]
	if med.Name != "Insulin glargine" {
		t.Errorf("name = %q, want Insulin glargine", med.Name)
	}
	if med.Strength != "100units/ml" {
		t.Errorf("strength = %q, want 100units/ml", med.Strength)
	}
	if med.DosageAmount != 20 || med.DosageUnit != "units" {
		t.Errorf("dosage = %v %q, want 20 units", med.DosageAmount, med.DosageUnit)
	}
	if med.Timing != "night" {
		t.Errorf("timing = %q, want night", med.Timing)
	}
	if med.MedicationType != "injection" {
		t.Errorf("type = %q, want injection", med.MedicationType)
	}
}

func TestParseKeepsBrandNameWithoutExpansion(t *testing.T) {
	opts := DefaultOptions()
	opts.ExpandAbbreviations = false

	result := Parse("LANTUS 100units/ml injection", opts)
	if len(result.Medications) != 1 {
		t.Fatalf("got %d medications, want 1", len(result.Medications))
	}
	med := result.Medications[0]
	if med.Name != "Lantus" {
		t.Errorf("name = %q, want Lantus", med.Name)
	}
	if med.GenericName != "Insulin glargine" {
		t.Errorf("generic = %q, want Insulin glargine", med.GenericName)
	}
}

func TestParseExtractsICD10Codes(t *testing.T) {
	text := "GLUCOPHAGE 850mg tablets\nTake 1 tablet twice daily\nDiagnosis: E11.9, I10"

	result := Parse(text, DefaultOptions())
	if len(result.ICD10Codes) != 2 {
		t.Fatalf("got %d codes, want 2: %+v", len(result.ICD10Codes), result.ICD10Codes)
	}
	if result.ICD10Codes[0].Code != "E11" || result.ICD10Codes[0].Description == "" {
		t.Errorf("code 0 = %+v, want E11 with description", result.ICD10Codes[0])
	}
	if result.ICD10Codes[1].Code != "I10" || result.ICD10Codes[1].Description != "Essential (primary) hypertension" {
		t.Errorf("code 1 = %+v", result.ICD10Codes[1])
	}
}

func TestParseWarnsOnUnknownICD10Code(t *testing.T) {
	result := Parse("PANADO two tablets daily\nDiagnosis: Q99", DefaultOptions())
	if len(result.ICD10Codes) != 1 || result.ICD10Codes[0].Code != "Q99" {
		t.Fatalf("codes = %+v, want [Q99]", result.ICD10Codes)
	}
	if result.ICD10Codes[0].Description != "" {
		t.Errorf("unknown code should carry no description: %+v", result.ICD10Codes[0])
	}
	if !hasWarning(result.Warnings, "Unknown ICD-10 code: Q99") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestParseDocumentMetadata(t *testing.T) {
	text := strings.Join([]string{
		"Rx No: 12345",
		"Dr. Sarah Naidoo",
		"Date prescribed: 15/03/2026",
		"Expiry date: 15/09/2026",
		"",
		"GLUCOPHAGE 850mg tablets",
		"Take 1 tablet twice daily",
	}, "\n")

	result := Parse(text, DefaultOptions())
	if result.PrescriptionNumber != "12345" {
		t.Errorf("number = %q, want 12345", result.PrescriptionNumber)
	}
	if result.PrescribingDoctor != "Sarah Naidoo" {
		t.Errorf("doctor = %q, want Sarah Naidoo", result.PrescribingDoctor)
	}
	if result.PrescribedDate == nil || result.PrescribedDate.Month() != time.March {
		t.Errorf("prescribed date = %v, want March 2026", result.PrescribedDate)
	}
	if result.ExpiryDate == nil || result.ExpiryDate.Month() != time.September {
		t.Errorf("expiry date = %v, want September 2026", result.ExpiryDate)
	}
}

func TestParseExpiryOnlyDocument(t *testing.T) {
	// The bare "date" label alternative must not claim the expiry line's
	// date for the prescribed field.
	result := Parse("PANADO 500mg tablets\nExpiry date: 15/09/2026", DefaultOptions())
	if result.ExpiryDate == nil {
		t.Fatal("expected expiry date")
	}
	if result.PrescribedDate != nil {
		t.Errorf("prescribed date = %v, want absent", result.PrescribedDate)
	}
}

func TestParsePreservesLineOrder(t *testing.T) {
	text := strings.Join([]string{
		"GLUCOPHAGE 850mg tablets",
		"Take 1 tablet twice daily",
		"LANTUS 100units/ml injection",
		"Inject 10 units once daily",
		"PANADO 500mg tablets",
	}, "\n")

	result := Parse(text, DefaultOptions())
	want := []string{"Metformin", "Insulin glargine", "Paracetamol"}
	if len(result.Medications) != len(want) {
		t.Fatalf("got %d medications, want %d", len(result.Medications), len(want))
	}
	for i, name := range want {
		if result.Medications[i].Name != name {
			t.Errorf("medication %d = %q, want %q", i, result.Medications[i].Name, name)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	text := "GLUCOPHAGE 850mg tablets\nTake 1 tablet twice daily\nDiagnosis: E11.9"
	first := Parse(text, DefaultOptions())
	second := Parse(text, DefaultOptions())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"   \n\n\t ",
		"this is not a prescription at all",
		"!!! ??? ### 12345",
		strings.Repeat("x", 10000),
	}
	for _, in := range inputs {
		result := Parse(in, DefaultOptions())
		if result.Medications == nil {
			t.Errorf("Parse(%.20q): medications must never be nil", in)
		}
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("Parse(%.20q): confidence %v out of range", in, result.Confidence)
		}
	}
}

func TestConfidencePenalties(t *testing.T) {
	// Name only: both penalty rules fire, in order.
	result := Parse("GLUCOPHAGE", DefaultOptions())
	if len(result.Medications) != 1 {
		t.Fatalf("got %d medications, want 1", len(result.Medications))
	}
	med := result.Medications[0]
	if math.Abs(med.Confidence-0.72) > 1e-9 {
		t.Errorf("confidence = %v, want 0.72", med.Confidence)
	}
	if !hasWarning(med.Warnings, WarnNoDosage) || !hasWarning(med.Warnings, WarnNoFrequency) {
		t.Errorf("warnings = %v", med.Warnings)
	}

	// Strength present and frequency present: no penalty.
	result = Parse("GLUCOPHAGE 850mg twice daily", DefaultOptions())
	if got := result.Medications[0].Confidence; got != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got)
	}

	// Frequency missing only.
	result = Parse("GLUCOPHAGE 850mg tablets", DefaultOptions())
	med = result.Medications[0]
	if med.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", med.Confidence)
	}
	if hasWarning(med.Warnings, WarnNoDosage) {
		t.Errorf("unexpected dosage warning: %v", med.Warnings)
	}
}

func TestConfidenceIsMeanOfMedications(t *testing.T) {
	text := "GLUCOPHAGE 850mg tablets twice daily\nPANADO"
	result := Parse(text, DefaultOptions())
	if len(result.Medications) != 2 {
		t.Fatalf("got %d medications, want 2", len(result.Medications))
	}
	want := (result.Medications[0].Confidence + result.Medications[1].Confidence) / 2
	if result.Confidence != want {
		t.Errorf("confidence = %v, want %v", result.Confidence, want)
	}
}

func TestParseUnknownNameWarning(t *testing.T) {
	result := Parse("OBSCURIDONE 10mg tablets once daily", DefaultOptions())
	if len(result.Medications) != 1 {
		t.Fatalf("got %d medications, want 1", len(result.Medications))
	}
	med := result.Medications[0]
	if med.Name != "Obscuridone" {
		t.Errorf("name = %q", med.Name)
	}
	if !hasWarning(med.Warnings, WarnUnknownName) {
		t.Errorf("warnings = %v, want unknown-name warning", med.Warnings)
	}
}

func TestStrictModeDropsUnknownNames(t *testing.T) {
	opts := DefaultOptions()
	opts.StrictMode = true

	text := "OBSCURIDONE 10mg tablets once daily\nGLUCOPHAGE 850mg tablets twice daily"
	result := Parse(text, opts)
	if len(result.Medications) != 1 {
		t.Fatalf("got %d medications, want 1", len(result.Medications))
	}
	if result.Medications[0].Name != "Metformin" {
		t.Errorf("name = %q, want Metformin", result.Medications[0].Name)
	}
}

func TestParseCustomTimes(t *testing.T) {
	text := "GLUCOPHAGE 850mg tablets\nTake 1 tablet twice daily at 08:00 and at 18h00"
	result := Parse(text, DefaultOptions())
	if len(result.Medications) != 1 {
		t.Fatalf("got %d medications, want 1", len(result.Medications))
	}
	times := result.Medications[0].CustomTimes
	if len(times) != 2 || times[0] != "08:00" || times[1] != "18:00" {
		t.Errorf("custom times = %v, want [08:00 18:00]", times)
	}
}

func TestParseLine(t *testing.T) {
	med, ok := ParseLine("VENTOLIN inhaler 2 puffs as needed", DefaultOptions())
	if !ok {
		t.Fatal("expected a medication")
	}
	if med.Name != "Salbutamol" {
		t.Errorf("name = %q, want Salbutamol", med.Name)
	}
	if med.Timing != "as needed" {
		t.Errorf("timing = %q, want as needed", med.Timing)
	}
	if med.MedicationType != "inhaler" {
		t.Errorf("type = %q, want inhaler", med.MedicationType)
	}

	if _, ok := ParseLine("Take 1 tablet twice daily", DefaultOptions()); ok {
		t.Error("instruction line should not yield a medication")
	}
}

func TestValidateMedicationName(t *testing.T) {
	v := ValidateMedicationName("Lantus")
	if !v.IsValid || v.ExpandedName != "Insulin glargine" {
		t.Errorf("got %+v, want valid Insulin glargine", v)
	}

	v = ValidateMedicationName("metformin")
	if !v.IsValid || v.ExpandedName != "Metformin" {
		t.Errorf("got %+v, want valid Metformin", v)
	}

	v = ValidateMedicationName("GLUCOPHAG")
	if v.IsValid {
		t.Fatal("misspelled brand should be invalid")
	}
	found := false
	for _, s := range v.Suggestions {
		if s == "Glucophage" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions = %v, want Glucophage included", v.Suggestions)
	}

	v = ValidateMedicationName("ZZZZZZ")
	if v.IsValid || len(v.Suggestions) != 0 {
		t.Errorf("got %+v, want invalid with no suggestions", v)
	}

	if ValidateMedicationName("  ").IsValid {
		t.Error("blank name must be invalid")
	}

	v = ValidateMedicationName("A")
	if len(v.Suggestions) > maxSuggestions {
		t.Errorf("got %d suggestions, cap is %d", len(v.Suggestions), maxSuggestions)
	}
}
