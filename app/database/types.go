package database

import (
	"time"
)

type Source struct {
	ID            string // Database UUID
	Name          string // Source identifier derived from config filename
	URL           string // Feed URL of the watched mailing-list archive
	Title         string
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Message struct {
	ID          string
	SourceID    string
	GUID        string
	Subject     string
	Body        string // plain text, post extraction
	PublishedAt *time.Time
	Fingerprint string // fingerprint of the body at the last scan
	ScannedAt   *time.Time
	CreatedAt   time.Time
}

type Event struct {
	ID           string
	MessageID    string
	Summary      string
	Description  string
	Location     string
	StartAt      time.Time
	EndAt        time.Time
	TimeZone     string
	DedupKey     string
	Status       string // detected, pushed, failed
	PushedAt     *time.Time
	CalendarLink string
	PushError    string
	CreatedAt    time.Time
}
