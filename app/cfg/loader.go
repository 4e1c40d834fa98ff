package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	DBPath            string `long:"db-path" env:"DB_PATH" default:"./mailcal.db" description:"Path to the SQLite database file"`
	SourcesDir        string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source configuration files"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://mailcal.example.com)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for source processing"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"30" description:"Scheduler interval in seconds"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Extraction configuration
	DefaultDurationMinutes int `long:"default-duration" env:"DEFAULT_DURATION_MINUTES" default:"60" description:"Default duration in minutes for events without an explicit end"`

	// Google Calendar configuration
	GoogleClientID     string `long:"google-client-id" env:"GOOGLE_CLIENT_ID" description:"Google OAuth client ID (optional, enables calendar push)"`
	GoogleClientSecret string `long:"google-client-secret" env:"GOOGLE_CLIENT_SECRET" description:"Google OAuth client secret"`
	GoogleTokenFile    string `long:"google-token-file" env:"GOOGLE_TOKEN_FILE" default:"token.json" description:"Path to the stored Google OAuth token"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"mailcal/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:                 raw.DBPath,
		SourcesDir:             raw.SourcesDir,
		Port:                   raw.Port,
		BaseUrl:                raw.BaseUrl,
		WorkerCount:            raw.WorkerCount,
		SchedulerInterval:      raw.SchedulerInterval,
		APIAccessKey:           raw.APIAccessKey,
		DefaultDurationMinutes: raw.DefaultDurationMinutes,
		GoogleClientID:         raw.GoogleClientID,
		GoogleClientSecret:     raw.GoogleClientSecret,
		GoogleTokenFile:        raw.GoogleTokenFile,
		UserAgent:              raw.UserAgent,
		Timezone:               raw.Timezone,
		Debug:                  raw.Debug,
		Version:                GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
