package cfg

type Cfg struct {
	// Application configuration
	DBPath            string
	SourcesDir        string
	Port              string
	BaseUrl           string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Extraction configuration
	DefaultDurationMinutes int

	// Google Calendar configuration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleTokenFile    string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
