package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Wardrobe   WardrobeConfig   `yaml:"wardrobe"`
	Events     EventsConfig     `yaml:"events"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Images     ImagesConfig     `yaml:"images"`
	Forecast   ForecastConfig   `yaml:"forecast"`
	Stylist    StylistConfig    `yaml:"stylist"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// AuthConfig controls the optional bearer-token middleware.
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`
	JWTSecret string `yaml:"jwtSecret"`
	Issuer    string `yaml:"issuer"`
}

// WardrobeConfig selects the wardrobe persistence backend.
type WardrobeConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// EventsConfig controls the recommendation event log.
type EventsConfig struct {
	Valkey   ValkeyConfig  `yaml:"valkey"`
	EventTTL time.Duration `yaml:"eventTtl"`
}

// ValkeyConfig contains connection information for the event log.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// SimilarityConfig tunes the wardrobe similarity index.
type SimilarityConfig struct {
	EmbeddingDim int `yaml:"embeddingDim"`
	TopK         int `yaml:"topK"`
}

// ImagesConfig contains S3-compatible object storage settings.
type ImagesConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	PublicURL string `yaml:"publicUrl"`
}

// ForecastConfig controls the weather provider.
type ForecastConfig struct {
	BaseURL         string `yaml:"baseUrl"`
	DefaultLocation string `yaml:"defaultLocation"`
}

// StylistConfig tunes the recommendation engine.
type StylistConfig struct {
	TopN int `yaml:"topN"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTrue(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = isTrue(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		cfg.Auth.Enabled = isTrue(v)
	}
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("AUTH_ISSUER"); v != "" {
		cfg.Auth.Issuer = v
	}
	if v := os.Getenv("WARDROBE_POSTGRES_DSN"); v != "" {
		cfg.Wardrobe.Postgres.DSN = v
	}
	if v := os.Getenv("WARDROBE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Wardrobe.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("WARDROBE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Wardrobe.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("EVENTS_VALKEY_ENABLED"); v != "" {
		cfg.Events.Valkey.Enabled = isTrue(v)
	}
	if v := os.Getenv("EVENTS_VALKEY_ADDR"); v != "" {
		cfg.Events.Valkey.Addr = v
	}
	if v := os.Getenv("EVENTS_VALKEY_PREFIX"); v != "" {
		cfg.Events.Valkey.Prefix = v
	}
	if v := os.Getenv("EVENTS_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Events.EventTTL = parsed
		}
	}
	if v := os.Getenv("SIMILARITY_EMBEDDING_DIM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Similarity.EmbeddingDim = parsed
		}
	}
	if v := os.Getenv("SIMILARITY_TOP_K"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Similarity.TopK = parsed
		}
	}
	if v := os.Getenv("IMAGES_ENABLED"); v != "" {
		cfg.Images.Enabled = isTrue(v)
	}
	if v := os.Getenv("IMAGES_ENDPOINT"); v != "" {
		cfg.Images.Endpoint = v
	}
	if v := os.Getenv("IMAGES_ACCESS_KEY"); v != "" {
		cfg.Images.AccessKey = v
	}
	if v := os.Getenv("IMAGES_SECRET_KEY"); v != "" {
		cfg.Images.SecretKey = v
	}
	if v := os.Getenv("IMAGES_BUCKET"); v != "" {
		cfg.Images.Bucket = v
	}
	if v := os.Getenv("IMAGES_PUBLIC_URL"); v != "" {
		cfg.Images.PublicURL = v
	}
	if v := os.Getenv("FORECAST_BASE_URL"); v != "" {
		cfg.Forecast.BaseURL = v
	}
	if v := os.Getenv("FORECAST_DEFAULT_LOCATION"); v != "" {
		cfg.Forecast.DefaultLocation = v
	}
	if v := os.Getenv("STYLIST_TOP_N"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Stylist.TopN = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/wardrobe/items/batch",
				},
			},
		},
		Auth: AuthConfig{
			Enabled: false,
			Issuer:  "outfit-concierge",
		},
		Wardrobe: WardrobeConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Events: EventsConfig{
			Valkey: ValkeyConfig{
				Prefix: "outfit",
			},
			EventTTL: 72 * time.Hour,
		},
		Similarity: SimilarityConfig{
			EmbeddingDim: 64,
			TopK:         5,
		},
		Forecast: ForecastConfig{
			DefaultLocation: "Singapore",
		},
		Stylist: StylistConfig{
			TopN: 3,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.Auth.Enabled && strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwtSecret cannot be empty when auth is enabled")
	}
	if c.Events.Valkey.Enabled && strings.TrimSpace(c.Events.Valkey.Addr) == "" {
		return errors.New("events.valkey.addr cannot be empty when the valkey event log is enabled")
	}
	if c.Events.EventTTL < 0 {
		return errors.New("events.eventTtl cannot be negative")
	}
	if c.Similarity.EmbeddingDim <= 0 {
		return errors.New("similarity.embeddingDim must be positive")
	}
	if c.Similarity.TopK <= 0 {
		return errors.New("similarity.topK must be positive")
	}
	if c.Images.Enabled {
		if strings.TrimSpace(c.Images.Endpoint) == "" {
			return errors.New("images.endpoint cannot be empty when image storage is enabled")
		}
		if strings.TrimSpace(c.Images.Bucket) == "" {
			return errors.New("images.bucket cannot be empty when image storage is enabled")
		}
	}
	if c.Stylist.TopN <= 0 {
		return errors.New("stylist.topN must be positive")
	}
	return nil
}

func isTrue(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
