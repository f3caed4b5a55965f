package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Tutor engine
	OpenAI  OpenAIConfig
	Cache   CacheConfig
	Session SessionConfig
	Retry   RetryConfig

	// Optional infrastructure
	Redis   RedisConfig
	ConvLog ConvLogConfig

	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// OpenAIConfig configures the completion and vision clients.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	VisionModel string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	TTL          time.Duration
	MaxSizeBytes int64
}

// SessionConfig configures the session store and its sweeper.
type SessionConfig struct {
	MaxAge          time.Duration
	SweepInterval   time.Duration
	MaxImageContext int
}

// RetryConfig configures the retry/fallback policy for completion calls.
type RetryConfig struct {
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// RedisConfig configures the optional Redis byte cache for synthesized audio.
// Leaving Addr empty disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ConvLogConfig configures the SQLite conversation log.
// Leaving Path empty disables it.
type ConvLogConfig struct {
	Path string
}

type RateLimitConfig struct {
	RequestsPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.OpenAI.APIKey = viper.GetString("openai.api_key")
	cfg.OpenAI.Model = viper.GetString("openai.model")
	cfg.OpenAI.VisionModel = viper.GetString("openai.vision_model")
	cfg.OpenAI.BaseURL = viper.GetString("openai.base_url")
	cfg.OpenAI.Temperature = viper.GetFloat64("openai.temperature")
	cfg.OpenAI.MaxTokens = viper.GetInt("openai.max_tokens")
	cfg.OpenAI.Timeout = viper.GetDuration("openai.timeout")
	if key := viper.GetString("openai_api_key"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	cfg.Cache.MaxSizeBytes = viper.GetInt64("cache.max_size_mb") * 1024 * 1024

	cfg.Session.MaxAge = viper.GetDuration("session.max_age")
	cfg.Session.SweepInterval = viper.GetDuration("session.sweep_interval")
	cfg.Session.MaxImageContext = viper.GetInt("session.max_image_context")

	cfg.Retry.MaxRetries = viper.GetInt("retry.max_retries")
	cfg.Retry.BaseDelay = viper.GetDuration("retry.base_delay")
	cfg.Retry.MaxDelay = viper.GetDuration("retry.max_delay")
	cfg.Retry.BackoffMultiplier = viper.GetFloat64("retry.backoff_multiplier")

	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.TTL = viper.GetDuration("redis.ttl")
	if addr := viper.GetString("redis_addr"); addr != "" {
		cfg.Redis.Addr = addr
	}

	cfg.ConvLog.Path = viper.GetString("convlog.path")

	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai.api_key is required - set OPENAI_API_KEY or add it to config.yaml")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.vision_model", "gpt-4o")
	viper.SetDefault("openai.temperature", 0.3)
	viper.SetDefault("openai.max_tokens", 700)
	viper.SetDefault("openai.timeout", "60s")

	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.max_size_mb", 100)

	viper.SetDefault("session.max_age", "1h")
	viper.SetDefault("session.sweep_interval", "10m")
	viper.SetDefault("session.max_image_context", 5)

	viper.SetDefault("retry.max_retries", 3)
	viper.SetDefault("retry.base_delay", "1s")
	viper.SetDefault("retry.max_delay", "10s")
	viper.SetDefault("retry.backoff_multiplier", 2.0)

	viper.SetDefault("redis.ttl", "1h")

	viper.SetDefault("rate_limit.requests_per_min", 60)
}
