package event

import (
	"testing"
)

func TestDeduplicatorCollapsesIdenticalKeys(t *testing.T) {
	deduplicator := NewDeduplicator()

	candidates := []Candidate{
		{Title: "Budget review", Date: "Monday, January 15, 2024", Time: "2:00 PM", Description: "first"},
		{Title: "Budget review", Date: "Monday, January 15, 2024", Time: "2:00 PM", Description: "second"},
	}

	unique := deduplicator.Run(candidates)

	if len(unique) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(unique))
	}
	// First-seen wins.
	if unique[0].Description != "first" {
		t.Errorf("Expected first-seen candidate to survive, got '%s'", unique[0].Description)
	}
}

func TestDeduplicatorKeepsDistinctCandidates(t *testing.T) {
	deduplicator := NewDeduplicator()

	candidates := []Candidate{
		{Title: "Budget review", Date: "Monday, January 15, 2024", Time: "2:00 PM"},
		{Title: "Budget review", Date: "Monday, January 15, 2024", Time: "3:00 PM"},
		{Title: "Planning", Date: "Monday, January 15, 2024", Time: "2:00 PM"},
	}

	unique := deduplicator.Run(candidates)

	if len(unique) != 3 {
		t.Errorf("Expected 3 candidates, got %d", len(unique))
	}
}

func TestDeduplicatorTextualVariantsStayApart(t *testing.T) {
	deduplicator := NewDeduplicator()

	// Same calendar day written two ways; the key uses raw strings so no
	// merge happens here.
	candidates := []Candidate{
		{Title: "Budget review", Date: "Monday, January 15th, 2024", Time: "2:00 PM"},
		{Title: "Budget review", Date: "Monday, January 15, 2024", Time: "2:00 PM"},
	}

	unique := deduplicator.Run(candidates)

	if len(unique) != 2 {
		t.Errorf("Expected 2 candidates, got %d", len(unique))
	}
}

func TestDeduplicatorIdempotent(t *testing.T) {
	deduplicator := NewDeduplicator()

	candidates := []Candidate{
		{Title: "A", Date: "Monday, January 15, 2024", Time: "2:00 PM"},
		{Title: "A", Date: "Monday, January 15, 2024", Time: "2:00 PM"},
		{Title: "B", Date: "Friday, March 1, 2024", Time: "9:00 AM"},
	}

	once := deduplicator.Run(candidates)
	twice := deduplicator.Run(once)

	if len(once) != len(twice) {
		t.Errorf("Expected idempotent dedup, got %d then %d", len(once), len(twice))
	}
}

func TestDeduplicatorEmptyInput(t *testing.T) {
	deduplicator := NewDeduplicator()

	unique := deduplicator.Run(nil)
	if len(unique) != 0 {
		t.Errorf("Expected no candidates, got %d", len(unique))
	}
}
