package cfg

type Cfg struct {
	// Input configuration
	SourcesFile string
	CuratedFile string

	// Output configuration
	OutputDir    string
	PreviewLimit int

	// Fetch configuration
	FetchTimeout int
	FetchRetries int
	BackoffUnit  int

	// Application configuration
	Port        string
	WorkerCount int
	Schedule    string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
