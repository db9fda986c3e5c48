package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./linkstash.db" description:"Path to the SQLite database file"`

	// Application configuration
	CategoriesFile   string `long:"categories-file" env:"CATEGORIES_FILE" default:"./categories.yml" description:"YAML file with the active category list"`
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl          string `long:"base-url" env:"BASE_URL" default:"http://localhost:8080" description:"Public base URL for the service (used to build confirm links)"`
	APIAccessKey     string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the confirmation endpoints (optional)"`
	FetchTimeout     int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"Page fetch timeout in seconds"`
	MaxContentLength int    `long:"max-content-length" env:"MAX_CONTENT_LENGTH" default:"5000" description:"Maximum extracted content length in characters"`

	// Text generation service configuration
	OpenAIAPIKey      string  `long:"openai-api-key" env:"OPENAI_API_KEY" description:"Text generation service API key"`
	OpenAIBaseUrl     string  `long:"openai-base-url" env:"OPENAI_BASE_URL" description:"Text generation service base URL (optional, for OpenAI-compatible APIs)"`
	OpenAIModel       string  `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"Model name"`
	OpenAITemperature float64 `long:"openai-temperature" env:"OPENAI_TEMPERATURE" default:"0.3" description:"Sampling temperature"`
	OpenAIMaxTokens   int     `long:"openai-max-tokens" env:"OPENAI_MAX_TOKENS" default:"1000" description:"Maximum completion tokens"`
	OpenAITimeout     int     `long:"openai-timeout" env:"OPENAI_TIMEOUT" default:"30" description:"Model call timeout in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"LinkStash/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	// Optional .env file, OS environment wins
	_ = godotenv.Load()

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
		DBPath:            raw.DBPath,
		CategoriesFile:    raw.CategoriesFile,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		APIAccessKey:      raw.APIAccessKey,
		FetchTimeout:      raw.FetchTimeout,
		MaxContentLength:  raw.MaxContentLength,
		OpenAIAPIKey:      raw.OpenAIAPIKey,
		OpenAIBaseUrl:     raw.OpenAIBaseUrl,
		OpenAIModel:       raw.OpenAIModel,
		OpenAITemperature: raw.OpenAITemperature,
		OpenAIMaxTokens:   raw.OpenAIMaxTokens,
		OpenAITimeout:     raw.OpenAITimeout,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
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
