package kafka

import (
	"github.com/Shopify/sarama"
)

// NewProducer 连接Kafka集群并返回同步生产者.
func NewProducer(cfg *Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Brokers, NewConfig(cfg))
}
