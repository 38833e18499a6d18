package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long a writer buffers messages before flushing,
	// in milliseconds. Zero uses the kafka-go default.
	BatchTimeoutMs int
}
