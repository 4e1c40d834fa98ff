package event

import "fmt"

// Deduplicator collapses candidates that share an identical
// (date, time, title) key, keeping the first-seen instance. Keys use the
// raw, unnormalized strings: "Jan 15, 2024" and "January 15th, 2024" are
// deliberately kept apart rather than risking a false merge.
type Deduplicator struct{}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

func (d *Deduplicator) Run(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		key := dedupKey(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	return unique
}

func dedupKey(c Candidate) string {
	return fmt.Sprintf("%s|%s|%s", c.Date, c.Time, c.Title)
}
