package event

import "regexp"

// The pattern set is a small grammar: phrase templates bind a trigger
// keyword to a date expression and an optional time expression, built from
// the shared fragments below. Template order is part of the contract
// (scan order, not precedence; overlaps are resolved by deduplication).
const (
	// <Weekday>, <Month> <Day>[st|nd|rd|th], <Year>
	dateExpr = `(\w+day,?\s+\w+\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})`
	// optional " at <Hour>:<Minute>[ AM|PM]"
	timeExpr = `(?:\s+(?:at\s+)?(\d{1,2}:\d{2}(?:\s*[AP]M)?))?`
)

// PhraseTemplate is one tagged phrase pattern. Group 1 captures the date
// expression, group 2 the time expression (may be absent).
type PhraseTemplate struct {
	Name string
	re   *regexp.Regexp
}

func newTriggerTemplate(name, trigger, connector string) PhraseTemplate {
	expr := `(?i)\b` + trigger + `\s+(?:` + connector + `\s+)?` + dateExpr + timeExpr
	return PhraseTemplate{Name: name, re: regexp.MustCompile(expr)}
}

var phraseTemplates = []PhraseTemplate{
	newTriggerTemplate("meeting", "meeting", "on"),
	newTriggerTemplate("appointment", "appointment", "on"),
	newTriggerTemplate("event", "event", "on"),
	newTriggerTemplate("conference", "conference", "on"),
	newTriggerTemplate("scheduled", "scheduled", "for"),
	// bare date+time, matched last
	{Name: "datetime", re: regexp.MustCompile(`(?i)` + dateExpr + timeExpr)},
}

type contextPattern struct {
	Name string
	re   *regexp.Regexp
}

// Title sub-patterns, tried in order against the context window.
var titlePatterns = []contextPattern{
	{"keyword_connector", regexp.MustCompile(`(?i)\b(?:meeting|appointment|event|conference)\s+(?:about|regarding|for)\s*[:\-]?\s*([^.!?\n]{10,80})`)},
	{"subject", regexp.MustCompile(`(?i)\bsubject:\s*([^.!?\n]{10,80})`)},
	{"title", regexp.MustCompile(`(?i)\btitle:\s*([^.!?\n]{10,80})`)},
	{"leading_phrase", regexp.MustCompile(`(?i)([^.!?\n]{10,80})\s+(?:meeting|appointment|event|conference)\b`)},
}

// Location sub-patterns, tried in order. Triggers are word-bounded so
// prepositions are not picked up inside other words.
var locationPatterns = []contextPattern{
	{"preposition", regexp.MustCompile(`(?i)\b(?:at|in|location)\b:?\s*([^.!?\n,]{5,50})`)},
	{"room", regexp.MustCompile(`(?i)\b(?:room|office|building)\b\s*[:\-]?\s*([^.!?\n,]{5,50})`)},
}
