package event

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

// Scanner composes the extraction pipeline:
// text -> raw matches -> candidates -> deduplicated candidates -> events.
// It holds no mutable state across invocations; the "have I seen this
// text" fingerprint is caller-owned and passed in per call.
type Scanner struct {
	matcher      *Matcher
	resolver     *Resolver
	deduplicator *Deduplicator
	normalizer   *Normalizer
}

func NewScanner(normalizer *Normalizer) *Scanner {
	return &Scanner{
		matcher:      NewMatcher(),
		resolver:     NewResolver(),
		deduplicator: NewDeduplicator(),
		normalizer:   normalizer,
	}
}

// Fingerprint returns the equality token for a message body.
func (s *Scanner) Fingerprint(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// Run scans one plain-text message body. When previousFingerprint matches
// the text, the scan is skipped and Unchanged is set. Run never fails the
// batch: candidates that cannot be normalized are reported as Failures
// while the rest proceed.
func (s *Scanner) Run(text string, previousFingerprint string) *Result {
	fingerprint := s.Fingerprint(text)
	if previousFingerprint != "" && previousFingerprint == fingerprint {
		return &Result{Fingerprint: fingerprint, Unchanged: true}
	}

	var candidates []Candidate
	for _, match := range s.matcher.Run(text) {
		if candidate, ok := s.resolver.Run(match, text); ok {
			candidates = append(candidates, candidate)
		}
	}

	result := &Result{Fingerprint: fingerprint}
	for _, candidate := range s.deduplicator.Run(candidates) {
		ev, err := s.normalizer.Run(candidate)
		if err != nil {
			slog.Debug("Candidate normalization failed", "date", candidate.Date, "error", err)
			result.Failures = append(result.Failures, Failure{Candidate: candidate, Reason: err.Error()})
			continue
		}
		result.Events = append(result.Events, ev)
	}

	return result
}
