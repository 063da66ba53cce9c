package config

import "time"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type StorageConfig struct {
	// Driver selects the order/transaction store: "memory" (default,
	// process-lifetime only) or "sqlite".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type WebhookConfig struct {
	TestSecret     string `mapstructure:"test_secret"`
	LiveSecret     string `mapstructure:"live_secret"`
	MaxRetries     int    `mapstructure:"max_retries"`
	AttemptTimeout int    `mapstructure:"attempt_timeout_seconds"`
	BackoffBaseMS  int    `mapstructure:"backoff_base_ms"`
	BackoffMaxMS   int    `mapstructure:"backoff_max_ms"`
	BackoffJitter  int    `mapstructure:"backoff_jitter_ms"`
}

// AttemptTimeoutDuration returns the per-attempt HTTP timeout.
func (w WebhookConfig) AttemptTimeoutDuration() time.Duration {
	return time.Duration(w.AttemptTimeout) * time.Second
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Limit         int  `mapstructure:"limit"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
