// Package config centralizes application configuration: YAML config file,
// environment variables, and .env loading, with defaults for every knob.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	Apify   Apify   `mapstructure:"apify"`
	Sources Sources `mapstructure:"sources"`
	Context Context `mapstructure:"context"`
	Drive   Drive   `mapstructure:"drive"`
}

// App holds general application configuration.
type App struct {
	Debug   bool   `mapstructure:"debug"`
	DataDir string `mapstructure:"data_dir"`
}

// AI holds AI/LLM configuration.
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
	Timeout     string  `mapstructure:"timeout"`
}

// Apify holds scraping platform configuration.
type Apify struct {
	Token   string `mapstructure:"token"`
	Timeout string `mapstructure:"timeout"`
}

// Sources holds per-source ingestion configuration.
type Sources struct {
	Instagram InstagramSource `mapstructure:"instagram"`
	X         XSource         `mapstructure:"x"`
	Reddit    RedditSource    `mapstructure:"reddit"`
	News      NewsSource      `mapstructure:"news"`
	Trends    TrendsSource    `mapstructure:"trends"`
}

// InstagramSource lists the creators and hashtags scraped each week.
type InstagramSource struct {
	Creators      []string `mapstructure:"creators"`
	Hashtags      []string `mapstructure:"hashtags"`
	CreatorLimit  int      `mapstructure:"creator_limit"`
	HashtagLimit  int      `mapstructure:"hashtag_limit"`
	NewerThanDays int      `mapstructure:"newer_than_days"`
}

// XSource configures the X search scrape.
type XSource struct {
	SearchTerms   []string `mapstructure:"search_terms"`
	TweetLanguage string   `mapstructure:"tweet_language"`
	DaysBack      int      `mapstructure:"days_back"`
	MaxItems      int      `mapstructure:"max_items"`
	Sort          string   `mapstructure:"sort"`
}

// RedditSource lists the subreddits polled via their public RSS feeds.
type RedditSource struct {
	Subreddits []string `mapstructure:"subreddits"`
	Limit      int      `mapstructure:"limit"`
}

// NewsSource lists the news RSS feeds.
type NewsSource struct {
	RSS []string `mapstructure:"rss"`
}

// TrendsSource configures the search-interest scrape.
type TrendsSource struct {
	Terms     []string `mapstructure:"terms"`
	Geo       string   `mapstructure:"geo"`
	TimeRange string   `mapstructure:"time_range"`
	Actor     string   `mapstructure:"actor"`
}

// Context configures the context-preparation stages.
type Context struct {
	PerPlatform int `mapstructure:"per_platform"`
	SlangTopK   int `mapstructure:"slang_top_k"`
	SlangMinLen int `mapstructure:"slang_min_len"`
}

// Drive holds the optional Google Drive upload configuration.
type Drive struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	FolderID        string `mapstructure:"folder_id"`
}

var globalConfig *Config

// Load loads the configuration from the config file, environment variables,
// and an optional .env in the working directory.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".trendbrief")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the loaded configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.data_dir", "data")

	viper.SetDefault("ai.gemini.model", "gemini-1.5-flash")
	viper.SetDefault("ai.gemini.max_tokens", 6000)
	viper.SetDefault("ai.gemini.temperature", 0.7)
	viper.SetDefault("ai.gemini.timeout", "120s")

	viper.SetDefault("apify.timeout", "300s")

	viper.SetDefault("sources.instagram.creator_limit", 30)
	viper.SetDefault("sources.instagram.hashtag_limit", 50)
	viper.SetDefault("sources.instagram.newer_than_days", 14)
	viper.SetDefault("sources.x.tweet_language", "en")
	viper.SetDefault("sources.x.days_back", 7)
	viper.SetDefault("sources.x.max_items", 150)
	viper.SetDefault("sources.x.sort", "Latest")
	viper.SetDefault("sources.reddit.limit", 50)
	viper.SetDefault("sources.trends.geo", "US")
	viper.SetDefault("sources.trends.time_range", "now 7-d")
	viper.SetDefault("sources.trends.actor", "emastra~google-trends-scraper")

	viper.SetDefault("context.per_platform", 60)
	viper.SetDefault("context.slang_top_k", 50)
	viper.SetDefault("context.slang_min_len", 3)
}

// bindEnvironmentVariables sets up flexible environment variable binding.
func bindEnvironmentVariables() {
	bindEnvKeys("apify.token", []string{
		"APIFY_TOKEN",
		"APIFY_API_TOKEN",
	})

	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("drive.credentials_file", []string{
		"GOOGLE_APPLICATION_CREDENTIALS",
		"DRIVE_CREDENTIALS_FILE",
	})

	bindEnvKeys("drive.folder_id", []string{
		"DRIVE_FOLDER_ID",
	})
}

// bindEnvKeys binds multiple environment variable names to a config key.
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}
