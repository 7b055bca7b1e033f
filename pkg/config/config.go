package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"phonefmt/pkg/locale"
	"phonefmt/pkg/logger"
	"phonefmt/pkg/sanitizer"
)

type Config struct {
	Port string

	HomeRegion   string
	MaxBatchSize int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	FormatRequestsTopic string
	FormatResultsTopic  string
	FormatDLQTopic      string
	FormatConsumerGroup string

	Log *logger.Logger
}

// Load reads an optional .env file from the working directory, then the
// environment. Variables already set in the environment win.
func Load(serviceName string) *Config {
	dotenvErr := godotenv.Load()
	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
		Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
		AddSource: true,
		Service:   serviceName,
	})

	if dotenvErr != nil && !os.IsNotExist(dotenvErr) {
		cfg.Log.Warn("Failed to read .env file", "error", dotenvErr)
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv reads the configuration without building a logger or validating.
func FromEnv() *Config {
	return &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		HomeRegion:   sanitizer.NormalizeRegion(getEnvStr(EnvHomeRegion, DefaultHomeRegion)),
		MaxBatchSize: getEnvNum(EnvMaxBatchSize, DefaultMaxBatchSize),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		FormatRequestsTopic: getEnvStr(EnvFormatRequestsTopic, DefaultFormatRequestsTopic),
		FormatResultsTopic:  getEnvStr(EnvFormatResultsTopic, DefaultFormatResultsTopic),
		FormatDLQTopic:      getEnvStr(EnvFormatDLQTopic, DefaultFormatDLQTopic),
		FormatConsumerGroup: getEnvStr(EnvFormatConsumerGroup, DefaultFormatConsumerGroup),
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if !locale.IsSupportedRegion(cfg.HomeRegion) {
		errors = append(errors, fmt.Sprintf("HomeRegion must be a region known to the numbering plan, got: %q", cfg.HomeRegion))
	}
	if cfg.MaxBatchSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxBatchSize must be positive, got: %d", cfg.MaxBatchSize))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.FormatRequestsTopic == "" {
		errors = append(errors, "FormatRequestsTopic cannot be empty")
	}
	if cfg.FormatResultsTopic == "" {
		errors = append(errors, "FormatResultsTopic cannot be empty")
	}
	if cfg.FormatRequestsTopic != "" && cfg.FormatRequestsTopic == cfg.FormatResultsTopic {
		errors = append(errors, fmt.Sprintf("FormatResultsTopic must differ from FormatRequestsTopic, both are: %s", cfg.FormatRequestsTopic))
	}
	if cfg.FormatConsumerGroup == "" {
		errors = append(errors, "FormatConsumerGroup cannot be empty")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"home_region", cfg.HomeRegion,
		"home_country", locale.CountryName(cfg.HomeRegion),
		"max_batch_size", cfg.MaxBatchSize,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"format_requests_topic", cfg.FormatRequestsTopic,
		"format_results_topic", cfg.FormatResultsTopic,
		"format_dlq_topic", cfg.FormatDLQTopic,
		"format_consumer_group", cfg.FormatConsumerGroup,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
