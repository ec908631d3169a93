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

// CustomerStore is a thread-safe in-memory store.CustomerStore.
type CustomerStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.Customer
	byPhone map[string]uuid.UUID
	logger  *slog.Logger
}

var _ store.CustomerStore = (*CustomerStore)(nil)

// NewCustomerStore creates an empty CustomerStore.
// If logger is nil, the default logger is used.
func NewCustomerStore(logger *slog.Logger) *CustomerStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &CustomerStore{
		byID:    make(map[uuid.UUID]domain.Customer),
		byPhone: make(map[string]uuid.UUID),
		logger:  logger.With(slog.String("component", "memory_customer_store")),
	}
}

// GetByPhoneNumber implements store.CustomerStore.GetByPhoneNumber
func (s *CustomerStore) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPhone[phoneNumber]
	if !ok {
		return nil, store.ErrCustomerNotFound
	}

	customer := s.byID[id]
	return &customer, nil
}

// GetByID implements store.CustomerStore.GetByID
func (s *CustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.byID[id]
	if !ok {
		return nil, store.ErrCustomerNotFound
	}

	return &customer, nil
}

// Save implements store.CustomerStore.Save. Records are insert-only: both the
// ID and the phone number must be unused.
func (s *CustomerStore) Save(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if customer.ID == uuid.Nil {
		return store.NotNullViolation("customer", "id")
	}
	if customer.Name == "" {
		return store.NotNullViolation("customer", "name")
	}
	if customer.PhoneNumber == "" {
		return store.NotNullViolation("customer", "phoneNumber")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[customer.ID]; exists {
		log.Debug("customer id already stored", slog.String("customer_id", customer.ID.String()))
		return store.ErrCustomerIDExists
	}
	if _, taken := s.byPhone[customer.PhoneNumber]; taken {
		log.Debug("phone number already stored", slog.String("customer_id", customer.ID.String()))
		return store.ErrPhoneNumberExists
	}

	s.byID[customer.ID] = *customer
	s.byPhone[customer.PhoneNumber] = customer.ID

	log.Debug("customer saved", slog.String("customer_id", customer.ID.String()))
	return nil
}
