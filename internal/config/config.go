package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Catalog and persistence paths.
	SchemesPath string
	CropsPath   string
	DBPath      string

	// Session settings.
	JWTSigningKey string
	SessionTTL    time.Duration

	// OpenWeather forecast configuration. Without a key the service runs on
	// deterministic estimates only.
	OpenWeatherAPIKey string
	WeatherEnabled    bool
	WeatherTimeout    time.Duration

	// Nominatim reverse-geocoding configuration.
	GeocoderEnabled  bool
	GeocoderTimeout  time.Duration
	GeocodeCacheSize int

	// Kafka high-risk alert publishing (optional).
	AlertsEnabled bool
	KafkaBrokers  []string
	AlertsTopic   string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	sessionTTL, err := parseDuration("SESSION_TTL", "24h")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("OPENWEATHER_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	geocoderTimeout, err := parseDuration("NOMINATIM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	weatherEnabled := apiKey != ""
	if v := os.Getenv("WEATHER_ENABLED"); v != "" {
		weatherEnabled = v == "true"
	}

	geocoderEnabled := true
	if v := os.Getenv("GEOCODER_ENABLED"); v != "" {
		geocoderEnabled = v == "true"
	}

	brokers := splitCSV(os.Getenv("KAFKA_BROKERS"))
	alertsEnabled := len(brokers) > 0
	if v := os.Getenv("ALERTS_ENABLED"); v != "" {
		alertsEnabled = v == "true"
	}

	jwtKey := envOrDefault("JWT_SIGNING_KEY", "dev-secret-change-in-production")

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SchemesPath: envOrDefault("SCHEMES_PATH", "data/schemes.json"),
		CropsPath:   envOrDefault("CROPS_PATH", "data/crops.json"),
		DBPath:      envOrDefault("DB_PATH", "croppilot.db"),

		JWTSigningKey: jwtKey,
		SessionTTL:    sessionTTL,

		OpenWeatherAPIKey: apiKey,
		WeatherEnabled:    weatherEnabled,
		WeatherTimeout:    weatherTimeout,

		GeocoderEnabled:  geocoderEnabled,
		GeocoderTimeout:  geocoderTimeout,
		GeocodeCacheSize: parseCacheSize(),

		AlertsEnabled: alertsEnabled,
		KafkaBrokers:  brokers,
		AlertsTopic:   envOrDefault("KAFKA_ALERTS_TOPIC", "weather-risk-alerts"),
	}

	if cfg.WeatherEnabled && cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("WEATHER_ENABLED is true but OPENWEATHER_API_KEY is not set")
	}
	if cfg.AlertsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.SchemesPath == "" || cfg.CropsPath == "" {
		return nil, errors.New("SCHEMES_PATH and CROPS_PATH are required")
	}
	if cfg.SessionTTL < time.Minute {
		return nil, errors.New("SESSION_TTL must be at least 1m")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseCacheSize() int {
	if s := os.Getenv("GEOCODE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
