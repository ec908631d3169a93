package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/store"
)

// PaymentStore is a thread-safe in-memory store.PaymentStore.
type PaymentStore struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]domain.Payment
	newID    func() uuid.UUID
	logger   *slog.Logger
}

var _ store.PaymentStore = (*PaymentStore)(nil)

// NewPaymentStore creates an empty PaymentStore.
// If logger is nil, the default logger is used.
func NewPaymentStore(logger *slog.Logger) *PaymentStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &PaymentStore{
		payments: make(map[uuid.UUID]domain.Payment),
		newID:    uuid.New,
		logger:   logger.With(slog.String("component", "memory_payment_store")),
	}
}

// GetByID implements store.PaymentStore.GetByID
func (s *PaymentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, store.ErrPaymentNotFound
	}

	return &payment, nil
}

// Save implements store.PaymentStore.Save
// Missing fields are reported as not-null violations; any other domain
// validation failure is returned as store.ErrInvalidEntity.
func (s *PaymentStore) Save(ctx context.Context, payment *domain.Payment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if payment.CustomerID == uuid.Nil {
		return store.NotNullViolation("payment", "customerId")
	}
	if payment.Amount.IsZero() {
		return store.NotNullViolation("payment", "amount")
	}
	if payment.Currency == "" {
		return store.NotNullViolation("payment", "currency")
	}
	if payment.Source == "" {
		return store.NotNullViolation("payment", "source")
	}
	if err := payment.ValidateForStorage(); err != nil {
		log.Debug("payment rejected by validation", slog.String("error", err.Error()))
		return store.InvalidEntity("payment", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if payment.ID == uuid.Nil {
		payment.ID = s.newID()
	}

	s.payments[payment.ID] = *payment

	log.Debug("payment saved",
		slog.String("payment_id", payment.ID.String()),
		slog.String("customer_id", payment.CustomerID.String()))
	return nil
}
