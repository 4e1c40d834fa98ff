package event

import (
	"strings"
	"testing"
	"time"

	"mailcal/app/database"
)

func TestGeneratorRun(t *testing.T) {
	generator := NewGenerator()

	start := time.Date(2024, time.January, 15, 14, 0, 0, 0, time.UTC)
	events := []database.Event{
		{
			ID:          "abc-123",
			Summary:     "Budget review",
			Description: "quarterly planning",
			Location:    "Room 204",
			StartAt:     start,
			EndAt:       start.Add(time.Hour),
			CreatedAt:   time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC),
		},
	}

	ical, err := generator.Run(events)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(ical, "BEGIN:VCALENDAR") || !strings.Contains(ical, "END:VCALENDAR") {
		t.Error("Expected a VCALENDAR envelope")
	}
	if !strings.Contains(ical, "BEGIN:VEVENT") {
		t.Error("Expected a VEVENT block")
	}
	if !strings.Contains(ical, "UID:abc-123@mailcal") {
		t.Error("Expected namespaced UID")
	}
	if !strings.Contains(ical, "SUMMARY:Budget review") {
		t.Error("Expected summary property")
	}
	if !strings.Contains(ical, "LOCATION:Room 204") {
		t.Error("Expected location property")
	}
	if !strings.Contains(ical, "20240115T140000Z") {
		t.Error("Expected UTC start timestamp")
	}
}

func TestGeneratorEmptyFieldsOmitted(t *testing.T) {
	generator := NewGenerator()

	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	events := []database.Event{
		{
			ID:        "def-456",
			Summary:   "Event from Email",
			StartAt:   start,
			EndAt:     start.Add(time.Hour),
			CreatedAt: start,
		},
	}

	ical, err := generator.Run(events)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if strings.Contains(ical, "LOCATION:") {
		t.Error("Expected no location property for an empty location")
	}
	if strings.Contains(ical, "DESCRIPTION:") {
		t.Error("Expected no description property for an empty description")
	}
}

func TestGeneratorNoEvents(t *testing.T) {
	generator := NewGenerator()

	ical, err := generator.Run(nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(ical, "BEGIN:VCALENDAR") {
		t.Error("Expected a valid empty calendar")
	}
	if strings.Contains(ical, "BEGIN:VEVENT") {
		t.Error("Expected no VEVENT blocks")
	}
}
