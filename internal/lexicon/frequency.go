package lexicon

import "regexp"

// Frequency phrase patterns in scan-priority order. The first pattern that
// matches wins; more specific phrasings are listed before the bare "daily"
// fallback so "twice daily" is never reported as "daily".
var frequencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfour times (?:daily|a day|per day)\b`),
	regexp.MustCompile(`(?i)\bthree times (?:daily|a day|per day)\b`),
	regexp.MustCompile(`(?i)\b(?:twice|two times) (?:daily|a day|per day)\b`),
	regexp.MustCompile(`(?i)\bonce (?:daily|a day|per day)\b`),
	regexp.MustCompile(`(?i)\bevery\s+\d+\s+hours?\b`),
	regexp.MustCompile(`(?i)\bevery (?:second|alternate|other) day\b`),
	regexp.MustCompile(`(?i)\b(?:once )?(?:weekly|a week|per week)\b`),
	regexp.MustCompile(`(?i)\b(?:once )?(?:monthly|a month|per month)\b`),
	regexp.MustCompile(`(?i)\b(?:qid|qds)\b`),
	regexp.MustCompile(`(?i)\b(?:tds|tid)\b`),
	regexp.MustCompile(`(?i)\b(?:bd|bid)\b`),
	regexp.MustCompile(`(?i)\b(?:od|mane|nocte)\b`),
	regexp.MustCompile(`(?i)\bvier keer per dag\b`),
	regexp.MustCompile(`(?i)\bdrie keer per dag\b`),
	regexp.MustCompile(`(?i)\btwee keer per dag\b`),
	regexp.MustCompile(`(?i)\b(?:een keer per dag|daagliks)\b`),
	regexp.MustCompile(`(?i)\bevery night\b`),
	regexp.MustCompile(`(?i)\bevery morning\b`),
	regexp.MustCompile(`(?i)\bdaily\b`),
}

// Frequency matches a dosing-frequency phrase. The returned value is the raw
// matched phrase; normalisation to a canonical frequency is the knowledge
// base's concern.
func Frequency(s string) (Match, bool) {
	return firstPattern(s, frequencyPatterns)
}

// Timing phrase patterns, specific phrases before single keywords.
var timingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bas needed\b`),
	regexp.MustCompile(`(?i)\bwhen required\b`),
	regexp.MustCompile(`(?i)\bprn\b`),
	regexp.MustCompile(`(?i)\bwith breakfast\b`),
	regexp.MustCompile(`(?i)\bwith (?:meals|food)\b`),
	regexp.MustCompile(`(?i)\bbefore (?:meals|food|breakfast)\b`),
	regexp.MustCompile(`(?i)\bafter (?:meals|food)\b`),
	regexp.MustCompile(`(?i)\bon an empty stomach\b`),
	regexp.MustCompile(`(?i)\bat (?:night|bedtime)\b`),
	regexp.MustCompile(`(?i)\bbefore (?:bed|sleep)\b`),
	regexp.MustCompile(`(?i)\bin the morning\b`),
	regexp.MustCompile(`(?i)\bin the evening\b`),
	regexp.MustCompile(`(?i)\bat (?:noon|midday|lunchtime)\b`),
	regexp.MustCompile(`(?i)\bsoggens\b`),
	regexp.MustCompile(`(?i)\bsaans\b`),
	regexp.MustCompile(`(?i)\bmorning\b`),
	regexp.MustCompile(`(?i)\bnocte\b`),
	regexp.MustCompile(`(?i)\bbedtime\b`),
	regexp.MustCompile(`(?i)\bnight\b`),
	regexp.MustCompile(`(?i)\bevening\b`),
	regexp.MustCompile(`(?i)\bnoon\b`),
	regexp.MustCompile(`(?i)\bmidday\b`),
}

// Timing matches an administration-timing phrase, raw form.
func Timing(s string) (Match, bool) {
	return firstPattern(s, timingPatterns)
}

// firstPattern applies patterns in order and, among all matching patterns,
// returns the match that starts earliest in the text; pattern order breaks
// position ties. This keeps first-match-wins anchored to scan order rather
// than to pattern declaration order.
func firstPattern(s string, patterns []*regexp.Regexp) (Match, bool) {
	best := Match{Start: -1}
	for _, re := range patterns {
		loc := re.FindStringIndex(s)
		if loc == nil {
			continue
		}
		if best.Start < 0 || loc[0] < best.Start {
			best = Match{Value: s[loc[0]:loc[1]], Start: loc[0], End: loc[1]}
		}
	}
	if best.Start < 0 {
		return Match{}, false
	}
	return best, true
}
