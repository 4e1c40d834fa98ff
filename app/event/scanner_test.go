package event

import (
	"strings"
	"testing"
	"time"
)

func newTestScanner() *Scanner {
	return NewScanner(NewNormalizer(time.UTC, "UTC", 60))
}

func TestScannerFullSentence(t *testing.T) {
	scanner := newTestScanner()

	text := "Let's have a meeting on Monday, January 15th, 2024 at 2:00 PM in Room 204 about budget planning."
	result := scanner.Run(text, "")

	if result.Unchanged {
		t.Fatal("Expected a fresh scan")
	}
	if len(result.Failures) != 0 {
		t.Fatalf("Expected no failures, got %d", len(result.Failures))
	}
	// The meeting template and the bare datetime template both hit the
	// same span; one event survives deduplication.
	if len(result.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(result.Events))
	}

	ev := result.Events[0]
	expectedStart := time.Date(2024, time.January, 15, 14, 0, 0, 0, time.UTC)
	if !ev.Start.Equal(expectedStart) {
		t.Errorf("Expected start %v, got %v", expectedStart, ev.Start)
	}
	if !ev.End.Equal(expectedStart.Add(time.Hour)) {
		t.Errorf("Expected end %v, got %v", expectedStart.Add(time.Hour), ev.End)
	}
	if !strings.Contains(ev.Location, "Room 204") {
		t.Errorf("Expected location containing 'Room 204', got '%s'", ev.Location)
	}
	if ev.Summary == "" {
		t.Error("Expected non-empty summary")
	}
	if !strings.Contains(ev.Description, "meeting on Monday") {
		t.Errorf("Expected description to carry the context window, got '%s'", ev.Description)
	}
}

func TestScannerNoTriggers(t *testing.T) {
	scanner := newTestScanner()

	result := scanner.Run("Just a plain status update, nothing planned.", "")

	if len(result.Events) != 0 {
		t.Errorf("Expected no events, got %d", len(result.Events))
	}
	if len(result.Failures) != 0 {
		t.Errorf("Expected no failures, got %d", len(result.Failures))
	}
	if result.Fingerprint == "" {
		t.Error("Expected a fingerprint even for an empty scan")
	}
}

func TestScannerFingerprintShortCircuit(t *testing.T) {
	scanner := newTestScanner()

	text := "Team meeting on Monday, January 15, 2024 at 2:00 PM."

	first := scanner.Run(text, "")
	if first.Unchanged {
		t.Fatal("Expected first scan to run")
	}
	if len(first.Events) != 1 {
		t.Fatalf("Expected 1 event from first scan, got %d", len(first.Events))
	}

	second := scanner.Run(text, first.Fingerprint)
	if !second.Unchanged {
		t.Error("Expected second scan to be skipped")
	}
	if len(second.Events) != 0 {
		t.Errorf("Expected no events from skipped scan, got %d", len(second.Events))
	}
	if second.Fingerprint != first.Fingerprint {
		t.Error("Expected stable fingerprint for identical text")
	}

	changed := scanner.Run(text+" Bring slides.", first.Fingerprint)
	if changed.Unchanged {
		t.Error("Expected changed text to be rescanned")
	}
}

func TestScannerFailureIsolation(t *testing.T) {
	scanner := newTestScanner()

	text := "There is a meeting on Monday, January 15th, 2024 at 2:00 PM. " +
		"Another meeting on Badday, Smarch 99, 2024 at 3:00 PM."
	result := scanner.Run(text, "")

	if len(result.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(result.Events))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(result.Failures))
	}
	if result.Failures[0].Candidate.Date != "Badday, Smarch 99, 2024" {
		t.Errorf("Expected the bad date in the failure record, got '%s'", result.Failures[0].Candidate.Date)
	}

	expectedStart := time.Date(2024, time.January, 15, 14, 0, 0, 0, time.UTC)
	if !result.Events[0].Start.Equal(expectedStart) {
		t.Errorf("Expected the valid event to survive with start %v, got %v", expectedStart, result.Events[0].Start)
	}
}

func TestScannerBareDateGetsDefaults(t *testing.T) {
	scanner := newTestScanner()

	result := scanner.Run("Friday, March 1, 2024", "")

	if len(result.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(result.Events))
	}

	ev := result.Events[0]
	if ev.Summary != DefaultTitle {
		t.Errorf("Expected default summary '%s', got '%s'", DefaultTitle, ev.Summary)
	}
	if ev.Start.Hour() != 9 {
		t.Errorf("Expected default 9:00 start, got hour %d", ev.Start.Hour())
	}
}

func TestScannerMultipleDistinctEvents(t *testing.T) {
	scanner := newTestScanner()

	text := "Kickoff meeting on Monday, January 15, 2024 at 9:30 AM. " +
		"Conference on Friday, March 1, 2024 at 1:00 PM."
	result := scanner.Run(text, "")

	if len(result.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(result.Events))
	}
	if result.Events[0].Start.Equal(result.Events[1].Start) {
		t.Error("Expected distinct start times")
	}
}

func TestScannerFingerprintFormat(t *testing.T) {
	scanner := newTestScanner()

	fp := scanner.Fingerprint("hello")
	if len(fp) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(fp))
	}
	if fp == scanner.Fingerprint("hello world") {
		t.Error("Expected different fingerprints for different texts")
	}
}
