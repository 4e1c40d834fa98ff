package event

import (
	"cmp"
	"strings"
	"unicode/utf8"
)

// Resolver turns one raw match into a candidate event, inferring title
// and location from a bounded context window around the match. It
// performs no I/O and never fails: missing optional fields degrade to
// the documented defaults.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

func (r *Resolver) Run(match RawMatch, text string) (Candidate, bool) {
	// Defensive: the matcher already discards date-less matches.
	if match.Date == "" {
		return Candidate{}, false
	}

	window := contextWindow(text, match.Start, match.Start+len(match.Text))

	return Candidate{
		Title:       resolveTitle(window),
		Date:        match.Date,
		Time:        cmp.Or(match.Time, DefaultTime),
		Description: strings.TrimSpace(window),
		Location:    resolveLocation(window),
	}, true
}

// contextWindow returns up to ContextRadius bytes either side of the
// [start, end) span, clamped to the text bounds and snapped outward to
// rune boundaries.
func contextWindow(text string, start, end int) string {
	lo := max(0, start-ContextRadius)
	hi := min(len(text), end+ContextRadius)

	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}

	return text[lo:hi]
}

func resolveTitle(window string) string {
	for _, p := range titlePatterns {
		if m := p.re.FindStringSubmatch(window); m != nil {
			if title := strings.TrimSpace(m[1]); title != "" {
				return title
			}
		}
	}
	return DefaultTitle
}

func resolveLocation(window string) string {
	for _, p := range locationPatterns {
		if m := p.re.FindStringSubmatch(window); m != nil {
			if location := strings.TrimSpace(m[1]); location != "" {
				return location
			}
		}
	}
	return ""
}
