package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	CategoriesFile   string
	Port             string
	BaseUrl          string
	APIAccessKey     string
	FetchTimeout     int
	MaxContentLength int

	// Text generation service configuration
	OpenAIAPIKey      string
	OpenAIBaseUrl     string
	OpenAIModel       string
	OpenAITemperature float64
	OpenAIMaxTokens   int
	OpenAITimeout     int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
