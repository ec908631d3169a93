// Package kafka publishes payment events to Kafka using a sarama SyncProducer.
package kafka
