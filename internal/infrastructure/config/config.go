package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/sandpay-io/sandpay/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Storage   sharedConfig.StorageConfig   `mapstructure:"storage"`
	Webhook   sharedConfig.WebhookConfig   `mapstructure:"webhook"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is not an error; defaults plus SANDPAY_*
// environment variables are enough to run the gateway.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("SANDPAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Storage defaults
	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("storage.dsn", "sandpay.db")

	// Webhook defaults. The fallback secrets are acceptable only because
	// this gateway simulates payments; override them via
	// SANDPAY_WEBHOOK_TEST_SECRET / SANDPAY_WEBHOOK_LIVE_SECRET.
	viper.SetDefault("webhook.test_secret", "sandpay_test_webhook_secret")
	viper.SetDefault("webhook.live_secret", "sandpay_live_webhook_secret")
	viper.SetDefault("webhook.max_retries", 5)
	viper.SetDefault("webhook.attempt_timeout_seconds", 15)
	viper.SetDefault("webhook.backoff_base_ms", 1000)
	viper.SetDefault("webhook.backoff_max_ms", 30000)
	viper.SetDefault("webhook.backoff_jitter_ms", 300)

	// Rate limit defaults (requires redis when enabled)
	viper.SetDefault("ratelimit.enabled", false)
	viper.SetDefault("ratelimit.limit", 100)
	viper.SetDefault("ratelimit.window_seconds", 60)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
}
