package lexicon

import "regexp"

var (
	instructionStartRe = regexp.MustCompile(`(?i)\b(?:take|inject|apply|use|inhale|chew|swallow|dissolve|insert|instil|spray|drink|give)\b`)

	// Structural keywords that terminate a free-text instruction.
	instructionStopRe = regexp.MustCompile(`(?i)\b(?:quantity|qty|pack of|box of)\b|\+?\s*\d+\s*(?:repeats?|refills?|renewals?)\b`)
)

// Instructions matches free-text administration instructions: greedy text
// from an instruction verb up to the next recognised structural keyword or
// the end of the line.
func Instructions(s string) (Match, bool) {
	start := instructionStartRe.FindStringIndex(s)
	if start == nil {
		return Match{}, false
	}

	end := len(s)
	if stop := instructionStopRe.FindStringIndex(s[start[0]:]); stop != nil {
		end = start[0] + stop[0]
	}

	value := s[start[0]:end]
	// Trim trailing separators left behind by the cut.
	for len(value) > 0 {
		c := value[len(value)-1]
		if c == ' ' || c == ',' || c == ';' || c == '.' || c == '-' {
			value = value[:len(value)-1]
			continue
		}
		break
	}
	if value == "" {
		return Match{}, false
	}

	return Match{Value: value, Start: start[0], End: start[0] + len(value)}, true
}
