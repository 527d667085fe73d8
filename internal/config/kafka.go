package config

import "github.com/segmentio/kafka-go"

var defaultKafkaBrokerURLs = []string{"localhost:9092", "localhost:9093", "localhost:9094"}

func (k Kafka) brokerURLs() []string {
	if len(k.Brokers) == 0 {
		return defaultKafkaBrokerURLs
	}
	return k.Brokers
}

// Enabled reports whether brokers were configured explicitly.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

func NewKafkaWriter(k Kafka) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(k.brokerURLs()...),
		Topic:                  k.UserTopic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaReader(k Kafka) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokerURLs(),
		GroupID:  k.GroupID,
		Topic:    k.UserTopic,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
}
