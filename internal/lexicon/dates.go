package lexicon

import (
	"regexp"
	"strings"
	"time"
)

var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`), "2006-01-02"},
	{regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`), "2/1/2006"},
	{regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{4})\b`), "2-1-2006"},
	{regexp.MustCompile(`(?i)\b(\d{1,2} (?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* \d{4})\b`), "2 Jan 2006"},
}

var (
	prescribedLabelRe = regexp.MustCompile(`(?i)\b(?:date prescribed|prescribed|issued|date)\s*[:\-]?\s*`)
	expiryLabelRe     = regexp.MustCompile(`(?i)\b(?:expiry date|expiry|expires|valid until)\s*[:\-]?\s*`)
)

// DateMatch is a matched calendar date.
type DateMatch struct {
	Match
	Time time.Time
}

// Date matches the first recognisable date in the text. Day-first ordering is
// assumed for slash and dash forms.
func Date(s string) (DateMatch, bool) {
	best := DateMatch{Match: Match{Start: -1}}
	for _, p := range datePatterns {
		loc := p.re.FindStringSubmatchIndex(s)
		if loc == nil {
			continue
		}
		if best.Start >= 0 && loc[0] >= best.Start {
			continue
		}
		raw := s[loc[2]:loc[3]]
		t, err := parseDate(raw, p.layout)
		if err != nil {
			continue
		}
		best = DateMatch{
			Match: Match{Value: raw, Start: loc[0], End: loc[1]},
			Time:  t,
		}
	}
	if best.Start < 0 {
		return DateMatch{}, false
	}
	return best, true
}

// PrescribedDate matches a date preceded by a prescribed/issued/date label.
func PrescribedDate(s string) (DateMatch, bool) {
	return labelledDate(s, prescribedLabelRe)
}

// ExpiryDate matches a date preceded by an expiry/valid-until label.
func ExpiryDate(s string) (DateMatch, bool) {
	return labelledDate(s, expiryLabelRe)
}

func labelledDate(s string, label *regexp.Regexp) (DateMatch, bool) {
	loc := label.FindStringIndex(s)
	if loc == nil {
		return DateMatch{}, false
	}
	d, ok := Date(s[loc[1]:])
	if !ok || d.Start != 0 {
		return DateMatch{}, false
	}
	d.Start += loc[1]
	d.End += loc[1]
	return d, true
}

func parseDate(raw, layout string) (time.Time, error) {
	// Month names are matched case-insensitively but time.Parse is not.
	if strings.ContainsAny(raw, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		fields := strings.Fields(raw)
		if len(fields) == 3 {
			m := strings.ToUpper(fields[1][:1]) + strings.ToLower(fields[1][1:])
			if len(m) > 3 {
				m = m[:3]
			}
			raw = fields[0] + " " + m + " " + fields[2]
		}
	}
	return time.Parse(layout, raw)
}
