package source

import (
	"time"
)

// Source processing types

// Metadata describes the watched archive feed itself.
type Metadata struct {
	Title       string
	Link        string
	Description string
}

// Message is one email-like entry pulled from a source feed. Body may be
// HTML as delivered; it is reduced to plain text before scanning.
type Message struct {
	GUID        string
	Subject     string
	Body        string
	PublishedAt *time.Time
}

// Configuration types

type Config struct {
	Name     string // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	MaxMessages     int  `yaml:"max_messages"`
	Timeout         int  `yaml:"timeout"` // seconds
}
