package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/store"
)

// CustomerRegistrationRequest carries the customer to register.
type CustomerRegistrationRequest struct {
	Customer *domain.Customer `json:"customer"`
}

// CustomerRegistrationService admits or rejects customer registrations.
type CustomerRegistrationService interface {
	// RegisterNewCustomer registers req.Customer, deduplicating on phone number.
	// Re-registering a phone number under the same name is a no-op; a
	// different name fails with ErrPhoneNumberTaken. On success the request's
	// customer carries the stored identity.
	RegisterNewCustomer(ctx context.Context, req CustomerRegistrationRequest) error
}

// IDGenerator produces identities for new customers.
type IDGenerator func() uuid.UUID

// RegistrationOption configures a CustomerRegistrationService.
type RegistrationOption func(*customerRegistrationServiceImpl)

// WithPhoneNumberValidator enables a phone number policy that runs before the
// deduplication lookup. A nil validator disables the check.
func WithPhoneNumberValidator(v domain.PhoneNumberValidator) RegistrationOption {
	return func(s *customerRegistrationServiceImpl) {
		s.validatePhone = v
	}
}

// WithIDGenerator replaces uuid.New as the source of new customer identities.
func WithIDGenerator(gen IDGenerator) RegistrationOption {
	return func(s *customerRegistrationServiceImpl) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithRegistrationMetrics records registration outcomes to m.
func WithRegistrationMetrics(m RegistrationMetrics) RegistrationOption {
	return func(s *customerRegistrationServiceImpl) {
		if m != nil {
			s.metrics = m
		}
	}
}

type customerRegistrationServiceImpl struct {
	customers     store.CustomerStore
	validatePhone domain.PhoneNumberValidator
	newID         IDGenerator
	metrics       RegistrationMetrics
	logger        *slog.Logger
}

// NewCustomerRegistrationService creates a CustomerRegistrationService.
// It returns an error if the customer store is nil.
func NewCustomerRegistrationService(
	customers store.CustomerStore,
	logger *slog.Logger,
	opts ...RegistrationOption,
) (CustomerRegistrationService, error) {
	if customers == nil {
		return nil, &ServiceError{
			Service:   "customer_registration",
			Operation: "create_service",
			Message:   "customer store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &customerRegistrationServiceImpl{
		customers: customers,
		newID:     uuid.New,
		metrics:   noopMetrics{},
		logger:    logger.With("component", "customer_registration_service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// RegisterNewCustomer implements CustomerRegistrationService.RegisterNewCustomer
func (s *customerRegistrationServiceImpl) RegisterNewCustomer(
	ctx context.Context,
	req CustomerRegistrationRequest,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if req.Customer == nil {
		return fmt.Errorf("%w: customer is required", domain.ErrValidation)
	}
	customer := req.Customer
	phone := customer.PhoneNumber

	if s.validatePhone != nil && !s.validatePhone(phone) {
		log.Debug("phone number rejected by policy")
		s.metrics.RegistrationCompleted(OutcomeInvalidPhone)
		return invalidPhoneNumber(phone)
	}

	existing, err := s.customers.GetByPhoneNumber(ctx, phone)
	switch {
	case err == nil:
		if existing.Name == customer.Name {
			log.Debug("customer already registered",
				"customer_id", existing.ID)
			customer.ID = existing.ID
			s.metrics.RegistrationCompleted(OutcomeAlreadyRegistered)
			return nil
		}
		log.Debug("phone number registered under a different name",
			"customer_id", existing.ID)
		s.metrics.RegistrationCompleted(OutcomePhoneTaken)
		return phoneNumberTaken(phone)
	case !store.IsNotFoundError(err):
		log.Error("failed to look up customer by phone number", "error", err)
		s.metrics.RegistrationCompleted(OutcomeError)
		return NewServiceError("customer_registration", "register", "failed to look up customer", err)
	}

	if !customer.HasID() {
		customer.ID = s.newID()
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		switch {
		case errors.Is(err, store.ErrPhoneNumberExists):
			// Lost a concurrent registration race for the same number
			s.metrics.RegistrationCompleted(OutcomePhoneTaken)
			return phoneNumberTaken(phone)
		case errors.Is(err, store.ErrCustomerIDExists):
			log.Debug("customer id already stored", "customer_id", customer.ID)
			s.metrics.RegistrationCompleted(OutcomeIDTaken)
			return customerIDTaken(customer.ID.String())
		}
		log.Error("failed to save customer",
			"error", err,
			"customer_id", customer.ID)
		s.metrics.RegistrationCompleted(OutcomeError)
		return NewServiceError("customer_registration", "register", "failed to save customer", err)
	}

	log.Info("customer registered", "customer_id", customer.ID)
	s.metrics.RegistrationCompleted(OutcomeRegistered)
	return nil
}
