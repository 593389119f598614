// Package knowledge holds the static medication knowledge base: brand to
// generic name mappings, medication-type keywords, frequency and timing
// phrase normalisation, diagnosis code descriptions and the recognised
// manufacturer list.
//
// All tables are built once at package initialisation and never mutated, so
// concurrent readers need no locking. Lookups are exact-match on uppercased
// keys; a missing key means "no mapping" and the caller keeps its original
// text. Fuzzy suggestion is deliberately not done here (see the parser's
// name validation).
package knowledge

import (
	"sort"
	"strings"
)

// GenericName resolves a brand name to its generic equivalent. The lookup is
// exact on the uppercased, whitespace-trimmed name.
func GenericName(brand string) (Entry, bool) {
	e, ok := brandGenerics[normaliseKey(brand)]
	return e, ok
}

// genericNames indexes the generic side of the brand table so generic names
// entered directly ("Metformin 500mg") validate without a brand lookup.
var genericNames = func() map[string]string {
	idx := make(map[string]string, len(brandGenerics))
	for _, e := range brandGenerics {
		idx[normaliseKey(e.Generic)] = e.Generic
	}
	return idx
}()

// CanonicalGeneric resolves a generic name to its canonical casing.
func CanonicalGeneric(name string) (string, bool) {
	g, ok := genericNames[normaliseKey(name)]
	return g, ok
}

// BrandNames returns a sorted copy of every brand key in the knowledge base.
func BrandNames() []string {
	names := make([]string, 0, len(brandGenerics))
	for k := range brandGenerics {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// medicationTypes is checked in declaration order so the classification is
// deterministic when a line mentions more than one form.
var medicationTypes = []struct {
	name     string
	keywords []string
}{
	{"tablet", []string{"tablet", "tablets", "tab", "tabs"}},
	{"capsule", []string{"capsule", "capsules", "cap", "caps"}},
	{"liquid", []string{"syrup", "suspension", "solution", "liquid", "elixir"}},
	{"injection", []string{"injection", "inject", "pen", "vial", "ampoule", "syringe"}},
	{"inhaler", []string{"inhaler", "inhale", "puff", "puffs", "aerosol", "nebule"}},
	{"cream", []string{"cream", "ointment", "gel", "lotion"}},
	{"patch", []string{"patch", "patches", "transdermal"}},
	{"drops", []string{"drop", "drops", "instil"}},
}

// ClassifyMedicationType returns the dose form implied by the text's
// keywords, or ok=false when none apply.
func ClassifyMedicationType(text string) (string, bool) {
	lower := strings.ToLower(text)
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		words[w] = struct{}{}
	}
	for _, t := range medicationTypes {
		for _, kw := range t.keywords {
			if _, ok := words[kw]; ok {
				return t.name, true
			}
		}
	}
	return "", false
}

var frequencyNormalisation = map[string]string{
	"ONCE DAILY":       "once daily",
	"ONCE A DAY":       "once daily",
	"ONCE PER DAY":     "once daily",
	"DAILY":            "once daily",
	"EVERY DAY":        "once daily",
	"EVERY MORNING":    "once daily",
	"EVERY NIGHT":      "once daily",
	"OD":               "once daily",
	"MANE":             "once daily",
	"NOCTE":            "once daily",
	"EEN KEER PER DAG": "once daily",
	"DAAGLIKS":         "once daily",

	"TWICE DAILY":       "twice daily",
	"TWICE A DAY":       "twice daily",
	"TWICE PER DAY":     "twice daily",
	"TWO TIMES A DAY":   "twice daily",
	"TWO TIMES DAILY":   "twice daily",
	"TWO TIMES PER DAY": "twice daily",
	"BD":                "twice daily",
	"BID":               "twice daily",
	"TWEE KEER PER DAG": "twice daily",

	"THREE TIMES DAILY":   "three times daily",
	"THREE TIMES A DAY":   "three times daily",
	"THREE TIMES PER DAY": "three times daily",
	"TDS":                 "three times daily",
	"TID":                 "three times daily",
	"DRIE KEER PER DAG":   "three times daily",

	"FOUR TIMES DAILY":   "four times daily",
	"FOUR TIMES A DAY":   "four times daily",
	"FOUR TIMES PER DAY": "four times daily",
	"QID":                "four times daily",
	"QDS":                "four times daily",
	"VIER KEER PER DAG":  "four times daily",

	"EVERY SECOND DAY":    "every other day",
	"EVERY OTHER DAY":     "every other day",
	"EVERY ALTERNATE DAY": "every other day",

	"WEEKLY":      "weekly",
	"ONCE WEEKLY": "weekly",
	"A WEEK":      "weekly",
	"ONCE A WEEK": "weekly",
	"PER WEEK":    "weekly",

	"MONTHLY":      "monthly",
	"ONCE MONTHLY": "monthly",
	"A MONTH":      "monthly",
	"ONCE A MONTH": "monthly",
	"PER MONTH":    "monthly",
}

// NormalizeFrequency maps a raw frequency phrase to its canonical form.
func NormalizeFrequency(phrase string) (string, bool) {
	c, ok := frequencyNormalisation[normaliseKey(phrase)]
	return c, ok
}

var timingNormalisation = map[string]string{
	"WITH BREAKFAST": "morning",
	"IN THE MORNING": "morning",
	"MORNING":        "morning",
	"MANE":           "morning",
	"SOGGENS":        "morning",

	"AT NOON":      "noon",
	"NOON":         "noon",
	"MIDDAY":       "noon",
	"AT MIDDAY":    "noon",
	"AT LUNCHTIME": "noon",

	"AT NIGHT":       "night",
	"NIGHT":          "night",
	"EVENING":        "night",
	"IN THE EVENING": "night",
	"AT BEDTIME":     "night",
	"BEDTIME":        "night",
	"BEFORE BED":     "night",
	"BEFORE SLEEP":   "night",
	"NOCTE":          "night",
	"SAANS":          "night",

	"WITH MEALS": "with meals",
	"WITH FOOD":  "with meals",

	"BEFORE MEALS":        "before meals",
	"BEFORE FOOD":         "before meals",
	"BEFORE BREAKFAST":    "before meals",
	"ON AN EMPTY STOMACH": "before meals",

	"AFTER MEALS": "after meals",
	"AFTER FOOD":  "after meals",

	"AS NEEDED":     "as needed",
	"WHEN REQUIRED": "as needed",
	"PRN":           "as needed",
}

// NormalizeTiming maps a raw timing phrase to its canonical form.
func NormalizeTiming(phrase string) (string, bool) {
	c, ok := timingNormalisation[normaliseKey(phrase)]
	return c, ok
}

func normaliseKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
