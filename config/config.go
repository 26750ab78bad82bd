package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Conversation state.
	StateBackend    string `mapstructure:"STATE_BACKEND"`
	StateTTLMinutes int    `mapstructure:"STATE_TTL_MINUTES"`

	// Redis configuration, used when STATE_BACKEND=redis.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisStateDB  int    `mapstructure:"REDIS_STATE_DB"`

	// Reference timezone. When empty it is resolved from the org coordinates.
	Timezone     string  `mapstructure:"TIMEZONE"`
	OrgLatitude  float64 `mapstructure:"ORG_LATITUDE"`
	OrgLongitude float64 `mapstructure:"ORG_LONGITUDE"`

	// Calendar capability.
	CalendarBackend          string `mapstructure:"CALENDAR_BACKEND"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	GoogleCalendarID         string `mapstructure:"GOOGLE_CALENDAR_ID"`
	ICalPath                 string `mapstructure:"ICAL_PATH"`

	// Slot extractor.
	ExtractorProvider       string `mapstructure:"EXTRACTOR_PROVIDER"`
	GeminiAPIKey            string `mapstructure:"GOOGLE_GEMINI_API_KEY"`
	GeminiModel             string `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey            string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel             string `mapstructure:"OPENAI_MODEL"`
	ExtractorTimeoutSeconds int    `mapstructure:"EXTRACTOR_TIMEOUT_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	viper.SetDefault("STATE_BACKEND", "memory")
	viper.SetDefault("STATE_TTL_MINUTES", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_STATE_DB", 0)

	viper.SetDefault("TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("ORG_LATITUDE", 0.0)
	viper.SetDefault("ORG_LONGITUDE", 0.0)

	viper.SetDefault("CALENDAR_BACKEND", "google")
	viper.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "service_account.json")
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	viper.SetDefault("ICAL_PATH", "bookings.ics")

	viper.SetDefault("EXTRACTOR_PROVIDER", "gemini")
	viper.SetDefault("GOOGLE_GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-2.0-flash")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("EXTRACTOR_TIMEOUT_SECONDS", 10)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
