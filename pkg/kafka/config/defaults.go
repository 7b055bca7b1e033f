package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	// Result publishing. Publish is synchronous so a failed write surfaces
	// as a retryable handler error.
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 5 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"

	// A new consumer group starts at the earliest retained request so work
	// queued before the first deploy is still formatted.
	DefaultConsumerStartOffset       = StartOffsetEarliest
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 1024 * 1024
	DefaultConsumerMaxWait           = 250 * time.Millisecond
	DefaultConsumerCommitInterval    = 0
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 10 * time.Second
	DefaultConsumerRebalanceTimeout  = 30 * time.Second

	DefaultConsumerMaxRetries      = 3
	DefaultConsumerRetryBackoff    = 200 * time.Millisecond
	DefaultConsumerRetryMaxBackoff = 5 * time.Second

	DefaultDLQMaxAttempts = 5

	DefaultEnableMiddleware = true
)

const (
	StartOffsetEarliest = "earliest"
	StartOffsetLatest   = "latest"
)
