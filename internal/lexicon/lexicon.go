// Package lexicon provides the pattern matchers used to pull structured
// fields out of free-text prescription lines. Every matcher is a pure
// function: it takes a string, returns the first match in scan order plus
// the matched span, and never errors. Unmatched input is reported with
// ok=false.
package lexicon

import (
	"regexp"
	"strconv"
	"strings"
)

// Match is a single lexical match with its span in the scanned text.
// Start and End are byte offsets into the input string.
type Match struct {
	Value string
	Start int
	End   int
}

// AmountMatch is a match carrying a parsed numeric value.
type AmountMatch struct {
	Match
	Amount float64
	Unit   string
}

// CountMatch is a match carrying a parsed integer value.
type CountMatch struct {
	Match
	Count int
}

// StrengthUnits is the closed set of units accepted in strength and dosage
// expressions.
var StrengthUnits = []string{
	"mg", "mcg", "g", "ml", "units", "iu", "meq", "mmol", "%",
	"tablets", "capsules", "puffs", "drops",
}

const unitAlternation = `mg|mcg|g|ml|units?|iu|meq|mmol|%|tablets?|capsules?|puffs?|drops?`

var (
	strengthRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(` + unitAlternation + `)(\s*/\s*(?:ml|dose|actuation))?`)
	dosageRe   = regexp.MustCompile(`(?i)\b(?:take|inject|apply|use|inhale|chew|give|instil|drink)\s+(\d+(?:\.\d+)?)\s*(` + unitAlternation + `)?\b`)

	quantityRe = regexp.MustCompile(`(?i)\b(?:quantity|qty)\s*[:\-]?\s*(\d+)\b|\bx\s*(\d+)\b|\bpack of\s+(\d+)\b|\bbox of\s+(\d+)\b`)
	repeatsRe  = regexp.MustCompile(`(?i)\+?\s*(\d+)\s*(?:repeats?|refills?|renewals?)\b`)

	// The lookup rule keeps only the letter-plus-two-digits base code; a
	// trailing .n or .nn suffix is consumed but dropped.
	icd10Re = regexp.MustCompile(`(?i)\b([a-z]\d{2})(?:\.\d{1,2})?\b`)

	rxNumberRe = regexp.MustCompile(`(?i)\b(?:prescription|rx|script)\s*(?:no|number|num|#)\s*[:.]?\s*([a-z0-9][a-z0-9\-/]*)`)
	doctorRe   = regexp.MustCompile(`(?i)\bdr\.?\s+([a-z][a-z\-']*(?:\s+[a-z][a-z\-']*){0,2})`)

	clockTimeRe = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	hTimeRe     = regexp.MustCompile(`(?i)\bat\s+([01]?\d|2[0-3])h([0-5]\d)\b`)
)

// Strength matches a number-plus-unit expression such as "500mg" or
// "100units/ml". The returned value is the matched text with internal
// whitespace removed and the unit lowercased.
func Strength(s string) (Match, bool) {
	loc := strengthRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return Match{}, false
	}
	raw := s[loc[0]:loc[1]]
	value := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	return Match{Value: value, Start: loc[0], End: loc[1]}, true
}

// Dosage matches an administration amount such as "Take 1 tablet" or
// "Inject 20 units". The unit may be empty when the text gives only a bare
// number.
func Dosage(s string) (AmountMatch, bool) {
	loc := dosageRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return AmountMatch{}, false
	}
	amount, err := strconv.ParseFloat(s[loc[2]:loc[3]], 64)
	if err != nil {
		return AmountMatch{}, false
	}
	unit := ""
	if loc[4] >= 0 {
		unit = canonicalUnit(s[loc[4]:loc[5]])
	}
	return AmountMatch{
		Match:  Match{Value: s[loc[0]:loc[1]], Start: loc[0], End: loc[1]},
		Amount: amount,
		Unit:   unit,
	}, true
}

// Quantity matches the dispense quantity forms "Quantity: N", "x N",
// "pack of N" and "box of N".
func Quantity(s string) (CountMatch, bool) {
	loc := quantityRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return CountMatch{}, false
	}
	for g := 1; g <= 4; g++ {
		if loc[2*g] < 0 {
			continue
		}
		n, err := strconv.Atoi(s[loc[2*g]:loc[2*g+1]])
		if err != nil {
			return CountMatch{}, false
		}
		return CountMatch{
			Match: Match{Value: s[loc[0]:loc[1]], Start: loc[0], End: loc[1]},
			Count: n,
		}, true
	}
	return CountMatch{}, false
}

// Repeats matches repeat/refill/renewal counts such as "+ 5 repeats" or
// "2 refills".
func Repeats(s string) (CountMatch, bool) {
	loc := repeatsRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return CountMatch{}, false
	}
	n, err := strconv.Atoi(s[loc[2]:loc[3]])
	if err != nil {
		return CountMatch{}, false
	}
	return CountMatch{
		Match: Match{Value: s[loc[0]:loc[1]], Start: loc[0], End: loc[1]},
		Count: n,
	}, true
}

// ICD10 matches the first diagnosis code in the text. The value is the
// uppercased base code (letter plus two digits); any decimal suffix is
// dropped.
func ICD10(s string) (Match, bool) {
	loc := icd10Re.FindStringSubmatchIndex(s)
	if loc == nil {
		return Match{}, false
	}
	return Match{
		Value: strings.ToUpper(s[loc[2]:loc[3]]),
		Start: loc[0],
		End:   loc[1],
	}, true
}

// ICD10All returns every diagnosis code in the text, in scan order, with
// decimal suffixes dropped. Duplicate base codes are kept; de-duplication is
// the caller's concern.
func ICD10All(s string) []Match {
	locs := icd10Re.FindAllStringSubmatchIndex(s, -1)
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{
			Value: strings.ToUpper(s[loc[2]:loc[3]]),
			Start: loc[0],
			End:   loc[1],
		})
	}
	return matches
}

// PrescriptionNumber matches labelled prescription identifiers such as
// "Rx No: 12345" or "Prescription #: A-991".
func PrescriptionNumber(s string) (Match, bool) {
	loc := rxNumberRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return Match{}, false
	}
	return Match{
		Value: strings.ToUpper(s[loc[2]:loc[3]]),
		Start: loc[0],
		End:   loc[1],
	}, true
}

// DoctorName matches a "Dr." honorific followed by up to three name words.
func DoctorName(s string) (Match, bool) {
	loc := doctorRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return Match{}, false
	}
	return Match{
		Value: titleCaseWords(s[loc[2]:loc[3]]),
		Start: loc[0],
		End:   loc[1],
	}, true
}

// ExplicitTimes returns all explicit clock times in the text ("08:00",
// "at 18h00"), normalised to HH:MM, in scan order.
func ExplicitTimes(s string) []string {
	var times []string
	for _, m := range clockTimeRe.FindAllStringSubmatch(s, -1) {
		times = append(times, pad2(m[1])+":"+m[2])
	}
	for _, m := range hTimeRe.FindAllStringSubmatch(s, -1) {
		times = append(times, pad2(m[1])+":"+m[2])
	}
	return times
}

func canonicalUnit(u string) string {
	u = strings.ToLower(u)
	switch u {
	case "unit":
		return "units"
	case "tablet":
		return "tablets"
	case "capsule":
		return "capsules"
	case "puff":
		return "puffs"
	case "drop":
		return "drops"
	}
	return u
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
