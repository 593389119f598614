package lexicon

import (
	"regexp"
	"strings"
)

// Words that can never start a medication name. A line opening with one of
// these is an instruction, metadata or continuation line rather than a new
// medication.
var nameStopwords = map[string]struct{}{
	"take": {}, "inject": {}, "apply": {}, "use": {}, "inhale": {},
	"chew": {}, "swallow": {}, "dissolve": {}, "insert": {}, "instil": {},
	"spray": {}, "drink": {}, "give": {}, "dispense": {}, "mitte": {},
	"sig": {}, "quantity": {}, "qty": {}, "repeats": {}, "refills": {},
	"renewals": {}, "diagnosis": {}, "dx": {}, "dr": {}, "doctor": {},
	"patient": {}, "date": {}, "prescribed": {}, "issued": {}, "expiry": {},
	"expires": {}, "valid": {}, "rx": {}, "prescription": {}, "script": {},
	"instructions": {}, "directions": {}, "at": {}, "with": {}, "before": {},
	"after": {}, "as": {}, "per": {}, "for": {}, "and": {}, "then": {},
	"if": {}, "when": {}, "stop": {}, "continue": {}, "repeat": {},
}

// Dose-form words trimmed off the end of a name candidate ("METFORMIN
// tablets" names the drug, not the form).
var formWords = map[string]struct{}{
	"tablet": {}, "tablets": {}, "tab": {}, "tabs": {},
	"capsule": {}, "capsules": {}, "cap": {}, "caps": {},
	"syrup": {}, "suspension": {}, "solution": {}, "liquid": {},
	"injection": {}, "pen": {}, "vial": {}, "ampoule": {},
	"inhaler": {}, "cream": {}, "ointment": {}, "gel": {}, "patch": {},
	"patches": {}, "drops": {}, "suppository": {}, "sachet": {}, "sachets": {},
}

var nameRe = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z\-']+(?:[ \t]+[A-Za-z][A-Za-z\-']+)*)`)

// MedicationName matches a medication name candidate at the start of a line.
// The candidate is the leading run of alphabetic words, stopped at the first
// digit and with trailing dose-form words trimmed. Lines opening with an
// instruction verb or metadata label yield no candidate.
func MedicationName(line string) (Match, bool) {
	loc := nameRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}

	raw := line[loc[2]:loc[3]]
	words := strings.Fields(raw)
	if len(words) == 0 {
		return Match{}, false
	}
	if _, stop := nameStopwords[strings.ToLower(words[0])]; stop {
		return Match{}, false
	}

	// Trim trailing dose-form words but keep at least the first word.
	for len(words) > 1 {
		if _, isForm := formWords[strings.ToLower(words[len(words)-1])]; !isForm {
			break
		}
		words = words[:len(words)-1]
	}

	value := strings.Join(words, " ")
	if len(value) < 3 {
		return Match{}, false
	}

	end := loc[2] + len(value)
	return Match{Value: value, Start: loc[2], End: end}, true
}
