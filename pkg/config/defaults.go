package config

import "time"

const (
	DefaultPort = "8080"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultHomeRegion   = "CA"
	DefaultMaxBatchSize = 100

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRequestSize = 256 * 1024 // 256KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultFormatRequestsTopic = "phone-format-requests"
	DefaultFormatResultsTopic  = "phone-format-results"
	DefaultFormatDLQTopic      = "dlq-phone-format"
	DefaultFormatConsumerGroup = "phone-formatter"
)
