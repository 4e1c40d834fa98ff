package event

import (
	"testing"
)

func TestMatcherTriggerPhrase(t *testing.T) {
	matcher := NewMatcher()

	text := "Team meeting on Monday, January 15th, 2024 at 2:00 PM"
	matches := matcher.Run(text)

	if len(matches) == 0 {
		t.Fatal("Expected at least one match")
	}

	var meeting *RawMatch
	for i := range matches {
		if matches[i].Template == "meeting" {
			meeting = &matches[i]
		}
	}

	if meeting == nil {
		t.Fatal("Expected a match from the meeting template")
	}
	if meeting.Date != "Monday, January 15th, 2024" {
		t.Errorf("Expected date 'Monday, January 15th, 2024', got '%s'", meeting.Date)
	}
	if meeting.Time != "2:00 PM" {
		t.Errorf("Expected time '2:00 PM', got '%s'", meeting.Time)
	}
}

func TestMatcherOptionalTime(t *testing.T) {
	matcher := NewMatcher()

	text := "There is a meeting on Monday, January 15, 2024 somewhere"
	matches := matcher.Run(text)

	if len(matches) == 0 {
		t.Fatal("Expected at least one match")
	}

	for _, m := range matches {
		if m.Date != "Monday, January 15, 2024" {
			t.Errorf("Expected date 'Monday, January 15, 2024', got '%s'", m.Date)
		}
		if m.Time != "" {
			t.Errorf("Expected empty time, got '%s'", m.Time)
		}
	}
}

func TestMatcherScheduledTemplate(t *testing.T) {
	matcher := NewMatcher()

	text := "The review is scheduled for Friday, March 1, 2024 at 10:30 AM"
	matches := matcher.Run(text)

	var scheduled *RawMatch
	for i := range matches {
		if matches[i].Template == "scheduled" {
			scheduled = &matches[i]
		}
	}

	if scheduled == nil {
		t.Fatal("Expected a match from the scheduled template")
	}
	if scheduled.Date != "Friday, March 1, 2024" {
		t.Errorf("Expected date 'Friday, March 1, 2024', got '%s'", scheduled.Date)
	}
	if scheduled.Time != "10:30 AM" {
		t.Errorf("Expected time '10:30 AM', got '%s'", scheduled.Time)
	}
}

func TestMatcherBareDatetime(t *testing.T) {
	matcher := NewMatcher()

	text := "Friday, March 1, 2024 at 10:00 AM"
	matches := matcher.Run(text)

	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Template != "datetime" {
		t.Errorf("Expected datetime template, got '%s'", matches[0].Template)
	}
}

func TestMatcherNoTriggers(t *testing.T) {
	matcher := NewMatcher()

	text := "Nothing about schedules here, just ordinary prose without any dates."
	matches := matcher.Run(text)

	if len(matches) != 0 {
		t.Errorf("Expected no matches, got %d", len(matches))
	}
}

func TestMatcherOverlappingTemplates(t *testing.T) {
	matcher := NewMatcher()

	// Both the meeting template and the bare datetime template hit this
	// span; the deduplicator collapses them later.
	text := "meeting on Monday, January 15, 2024 at 2:00 PM"
	matches := matcher.Run(text)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 overlapping matches, got %d", len(matches))
	}
	if matches[0].Template != "meeting" || matches[1].Template != "datetime" {
		t.Errorf("Expected meeting then datetime, got '%s' then '%s'", matches[0].Template, matches[1].Template)
	}
}
