package database

import (
	"time"
)

// NewMessage is the input shape for storing a fetched message.
type NewMessage struct {
	GUID        string
	Subject     string
	Body        string
	PublishedAt *time.Time
}

// NewEvent is the input shape for storing a detected event.
type NewEvent struct {
	Summary     string
	Description string
	Location    string
	StartAt     time.Time
	EndAt       time.Time
	TimeZone    string
	DedupKey    string
}

type SourceRepository interface {
	UpsertSource(name, url string) (string, error)
	GetSource(name string) (*Source, error)
	GetSources() ([]Source, error)
	GetSourceCount() (int, error)
	UpdateSourceMetadata(name, title string, nextFetch time.Time) error
}

type MessageRepository interface {
	UpsertMessage(sourceID string, msg NewMessage) (*Message, error)
	MarkScanned(messageID, fingerprint string) error
	GetMessage(id string) (*Message, error)
	GetMessages(sourceName string, limit int) ([]Message, error)
	GetMessageCount() (int, error)
}

type EventRepository interface {
	InsertEvent(messageID string, ev NewEvent) (bool, error)
	GetEvent(id string) (*Event, error)
	GetEvents(limit int) ([]Event, error)
	GetEventsByMessage(messageID string) ([]Event, error)
	GetEventStats() (total, pushed, failed int, err error)
	UpdateEventPushStatus(id, status, calendarLink, pushError string) error
	DeleteEventsForMessage(messageID string) error
}
