package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/service"
)

// DefaultTopic receives payment charged events when no topic is configured.
const DefaultTopic = "payment.charged"

// EventTypePaymentCharged is the event_type header of payment charged events.
const EventTypePaymentCharged = "payment.charged"

// PaymentChargedEvent is the message body published for a stored payment.
type PaymentChargedEvent struct {
	PaymentID   string    `json:"paymentId"`
	CustomerID  string    `json:"customerId"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// PaymentPublisher publishes payment charged events.
type PaymentPublisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
	logger   *slog.Logger
}

var _ service.PaymentEventPublisher = (*PaymentPublisher)(nil)

// NewSaramaConfig returns the producer configuration used for payment events.
func NewSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_3_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Retry.Max = 0
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

// NewSyncProducer connects a SyncProducer to the brokers.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}
	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka: failed to create producer: %w", err)
	}
	return producer, nil
}

// NewPaymentPublisher creates a PaymentPublisher writing to topic.
// An empty topic selects DefaultTopic; a nil logger selects the default logger.
func NewPaymentPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *PaymentPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentPublisher{
		producer: producer,
		topic:    topic,
		now:      time.Now,
		logger:   logger.With("component", "kafka_payment_publisher", "topic", topic),
	}
}

// PublishPaymentCharged implements service.PaymentEventPublisher.PublishPaymentCharged
// The payment ID is the message key, so events for one payment share a partition.
func (p *PaymentPublisher) PublishPaymentCharged(ctx context.Context, payment *domain.Payment) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	event := PaymentChargedEvent{
		PaymentID:   payment.ID.String(),
		CustomerID:  payment.CustomerID.String(),
		Amount:      payment.Amount.StringFixed(payment.Currency.MinorUnits()),
		Currency:    payment.Currency.String(),
		Description: payment.Description,
		Timestamp:   p.now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal payment event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PaymentID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(EventTypePaymentCharged),
			},
		},
		Timestamp: event.Timestamp,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("kafka: failed to publish payment event: %w", err)
	}

	log.Debug("published payment event",
		"payment_id", event.PaymentID,
		"partition", partition,
		"offset", offset)
	return nil
}

// Close closes the underlying producer.
func (p *PaymentPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("kafka: failed to close producer: %w", err)
	}
	return nil
}
