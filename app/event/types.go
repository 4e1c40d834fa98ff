package event

import (
	"time"
)

// Extraction pipeline types. Each stage consumes its input and produces
// new values; nothing is mutated in place.

// Default values applied when a candidate lacks the corresponding field.
const (
	DefaultTitle           = "Event from Email"
	DefaultTime            = "9:00 AM"
	DefaultDurationMinutes = 60
)

// ContextRadius is the number of bytes taken on each side of a match
// when building the context window.
const ContextRadius = 100

// RawMatch is a single phrase-template hit in the scanned text.
type RawMatch struct {
	Template string // tag of the template that produced the match
	Text     string // full matched substring
	Start    int    // byte offset of the match in the source text
	Date     string // captured date expression
	Time     string // captured time expression, empty when absent
}

// Candidate is an extracted event prior to deduplication and
// date/time resolution. Date is always non-empty.
type Candidate struct {
	Title       string
	Date        string
	Time        string
	Description string
	Location    string
}

// Reminder is a single notification override attached to a normalized event.
type Reminder struct {
	Method  string // "email" or "popup"
	Minutes int64  // minutes before the event start
}

// Event is a fully resolved calendar event, ready for calendar-entry
// creation. End is always after Start.
type Event struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string // IANA timezone identifier recorded alongside the instants
	Reminders   []Reminder
}

// DefaultReminders returns the fixed reminder policy: one email reminder
// a day before and one popup reminder 30 minutes before.
func DefaultReminders() []Reminder {
	return []Reminder{
		{Method: "email", Minutes: 24 * 60},
		{Method: "popup", Minutes: 30},
	}
}

// Failure records a candidate that could not be normalized. Failures are
// scoped per candidate; the rest of the batch is unaffected.
type Failure struct {
	Candidate Candidate
	Reason    string
}

// Result is the outcome of a single scan.
type Result struct {
	Events      []Event
	Failures    []Failure
	Fingerprint string
	Unchanged   bool // true when the text matched the previous fingerprint
}
