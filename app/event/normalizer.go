package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ordinalRe   = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)\b`)
	clockRe     = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?:\s*([AP]M))?`)
	componentRe = regexp.MustCompile(`(\w+),?\s+(\w+)\s+(\d{1,2}),?\s+(\d{4})`)
)

// dateStrategy is one link in the date-parsing chain. Strategies are
// tried in order; the first success wins.
type dateStrategy struct {
	name  string
	parse func(s string, loc *time.Location) (time.Time, error)
}

var dateStrategies = []dateStrategy{
	{"general", parseGeneralDate},
	{"layout", parseLayoutDate},
	{"components", parseComponentDate},
}

// parseGeneralDate delegates to the dateparse library's fuzzy parser.
func parseGeneralDate(s string, loc *time.Location) (time.Time, error) {
	return dateparse.ParseIn(s, loc)
}

var dateLayouts = []string{
	"Monday, January 2, 2006",
	"Monday January 2, 2006",
	"Monday, January 2 2006",
	"January 2, 2006",
	"Monday, Jan 2, 2006",
	"Jan 2, 2006",
}

func parseLayoutDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", s)
}

// parseComponentDate extracts weekday/month/day/year with a fixed pattern
// and rebuilds the date from the components. The weekday is captured but
// not trusted; the month/day/year decide the date.
func parseComponentDate(s string, loc *time.Location) (time.Time, error) {
	m := componentRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("no date components in %q", s)
	}

	month, ok := monthIndex(m[2])
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q", m[2])
	}

	day, err := strconv.Atoi(m[3])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day %q", m[3])
	}

	year, err := strconv.Atoi(m[4])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year %q", m[4])
	}

	return time.Date(year, month, day, 0, 0, 0, 0, loc), nil
}

var monthCaser = cases.Title(language.English)

// monthIndex resolves a month name (any casing, full or abbreviated) to
// its index.
func monthIndex(name string) (time.Month, bool) {
	name = monthCaser.String(strings.ToLower(name))
	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, name); err == nil {
			return t.Month(), true
		}
	}
	return 0, false
}

// Normalizer converts a candidate's free-form date/time strings into a
// concrete start/end timestamp pair in the configured location.
// Normalization operates in local wall-clock terms; the timezone
// identifier is recorded for the calendar-creation boundary, not used
// for conversion.
type Normalizer struct {
	loc      *time.Location
	timeZone string
	duration time.Duration
}

func NewNormalizer(loc *time.Location, timeZone string, durationMinutes int) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	return &Normalizer{
		loc:      loc,
		timeZone: timeZone,
		duration: time.Duration(durationMinutes) * time.Minute,
	}
}

// Run normalizes one candidate. A date that defeats every parsing
// strategy is an error scoped to this candidate; callers keep processing
// the rest of the batch.
func (n *Normalizer) Run(c Candidate) (Event, error) {
	day, err := n.parseDate(c.Date)
	if err != nil {
		return Event{}, err
	}

	hour, minute := n.clock(c.Time)
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, n.loc)

	return Event{
		Summary:     c.Title,
		Description: c.Description,
		Location:    c.Location,
		Start:       start,
		End:         start.Add(n.duration),
		TimeZone:    n.timeZone,
		Reminders:   DefaultReminders(),
	}, nil
}

func (n *Normalizer) parseDate(s string) (time.Time, error) {
	cleaned := strings.TrimSpace(ordinalRe.ReplaceAllString(s, "$1"))

	for _, strategy := range dateStrategies {
		if t, err := strategy.parse(cleaned, n.loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// clock returns the hour/minute for a candidate time string. A malformed
// string counts as "no time given" and yields the default time.
func (n *Normalizer) clock(s string) (int, int) {
	if hour, minute, ok := parseClock(s); ok {
		return hour, minute
	}
	hour, minute, _ := parseClock(DefaultTime)
	return hour, minute
}

func parseClock(s string) (int, int, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if minute > 59 {
		return 0, 0, false
	}

	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 {
		return 0, 0, false
	}

	return hour, minute, true
}
