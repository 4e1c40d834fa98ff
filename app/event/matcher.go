package event

// Matcher applies the ordered phrase templates against a full message
// body and collects every hit. Overlapping and identical spans from
// different templates are expected; the deduplicator resolves them.
type Matcher struct {
	templates []PhraseTemplate
}

func NewMatcher() *Matcher {
	return &Matcher{templates: phraseTemplates}
}

func (m *Matcher) Run(text string) []RawMatch {
	var matches []RawMatch

	for _, tpl := range m.templates {
		for _, idx := range tpl.re.FindAllStringSubmatchIndex(text, -1) {
			match := RawMatch{
				Template: tpl.Name,
				Text:     text[idx[0]:idx[1]],
				Start:    idx[0],
			}
			if idx[2] >= 0 {
				match.Date = text[idx[2]:idx[3]]
			}
			if idx[4] >= 0 {
				match.Time = text[idx[4]:idx[5]]
			}

			// A match without a date capture is useless downstream.
			if match.Date == "" {
				continue
			}

			matches = append(matches, match)
		}
	}

	return matches
}
