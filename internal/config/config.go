package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "HIDDENLIGHT_CONFIG"
	databasePathEnv  = "HIDDENLIGHT_DB_PATH"
	geminiAPIKeyEnv  = "GEMINI_API_KEY"
	geminiModelEnv   = "GEMINI_MODEL"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database      DatabaseConfig     `yaml:"database"`
	Logging       LoggingConfig      `yaml:"logging"`
	Assistant     AssistantConfig    `yaml:"assistant"`
	Notifications NotificationConfig `yaml:"notifications"`
	Search        SearchConfig       `yaml:"search"`
	Cache         CacheConfig        `yaml:"cache"`
	Preferences   PreferencesConfig  `yaml:"preferences"`
	DailyDigest   DailyDigestConfig  `yaml:"dailyDigest"`
}

// DatabaseConfig locates the embedded record store. An empty path runs the
// app without persistence.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig tunes the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AssistantConfig defines how to contact the Gemini API.
type AssistantConfig struct {
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float32 `yaml:"temperature"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SearchConfig tunes the search engine defaults.
type SearchConfig struct {
	DefaultLimit int `yaml:"defaultLimit"`
}

// CacheConfig sets how long service caches may serve stale listings.
type CacheConfig struct {
	ListMinutes      int `yaml:"listMinutes"`
	AggregateMinutes int `yaml:"aggregateMinutes"`
}

// ListTTL resolves the listing cache lifetime.
func (c CacheConfig) ListTTL() time.Duration {
	return time.Duration(c.ListMinutes) * time.Minute
}

// AggregateTTL resolves the aggregate cache lifetime.
func (c CacheConfig) AggregateTTL() time.Duration {
	return time.Duration(c.AggregateMinutes) * time.Minute
}

// PreferencesConfig locates the preference file.
type PreferencesConfig struct {
	Path string `yaml:"path"`
}

// DailyDigestConfig controls the recurring hadith delivery.
type DailyDigestConfig struct {
	Enabled       bool `yaml:"enabled"`
	IntervalHours int  `yaml:"intervalHours"`
}

// Interval resolves the delivery interval.
func (d DailyDigestConfig) Interval() time.Duration {
	return time.Duration(d.IntervalHours) * time.Hour
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Assistant.APIKey = v
	}

	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Assistant.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Assistant.Model != "" {
		base.Assistant.Model = override.Assistant.Model
	}
	if override.Assistant.APIKey != "" {
		base.Assistant.APIKey = override.Assistant.APIKey
	}
	if override.Assistant.Temperature != 0 {
		base.Assistant.Temperature = override.Assistant.Temperature
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Search.DefaultLimit > 0 {
		base.Search.DefaultLimit = override.Search.DefaultLimit
	}

	if override.Cache.ListMinutes > 0 {
		base.Cache.ListMinutes = override.Cache.ListMinutes
	}
	if override.Cache.AggregateMinutes > 0 {
		base.Cache.AggregateMinutes = override.Cache.AggregateMinutes
	}

	if override.Preferences.Path != "" {
		base.Preferences = override.Preferences
	}

	if override.DailyDigest.Enabled {
		base.DailyDigest.Enabled = true
	}
	if override.DailyDigest.IntervalHours > 0 {
		base.DailyDigest.IntervalHours = override.DailyDigest.IntervalHours
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database:    DatabaseConfig{Path: "hiddenlight.db"},
		Logging:     LoggingConfig{Level: "info"},
		Assistant:   AssistantConfig{Model: "gemini-2.5-flash", Temperature: 0.7},
		Search:      SearchConfig{DefaultLimit: 10},
		Cache:       CacheConfig{ListMinutes: 5, AggregateMinutes: 10},
		Preferences: PreferencesConfig{Path: "preferences.json"},
		DailyDigest: DailyDigestConfig{Enabled: true, IntervalHours: 24},
	}
}
