package config

const (
	EnvPort = "PORT"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvHomeRegion   = "HOME_REGION"
	EnvMaxBatchSize = "MAX_BATCH_SIZE"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvFormatRequestsTopic = "FORMAT_REQUESTS_TOPIC"
	EnvFormatResultsTopic  = "FORMAT_RESULTS_TOPIC"
	EnvFormatDLQTopic      = "FORMAT_DLQ_TOPIC"
	EnvFormatConsumerGroup = "FORMAT_CONSUMER_GROUP"
)
