package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/service"
)

// mockRegistrationService is a mock implementation of service.CustomerRegistrationService
type mockRegistrationService struct {
	registerFn func(ctx context.Context, req service.CustomerRegistrationRequest) error
	calls      int
}

func (m *mockRegistrationService) RegisterNewCustomer(
	ctx context.Context,
	req service.CustomerRegistrationRequest,
) error {
	m.calls++
	return m.registerFn(ctx, req)
}

// mockPaymentService is a mock implementation of service.PaymentService
type mockPaymentService struct {
	chargeFn     func(ctx context.Context, customerID uuid.UUID, req service.PaymentRequest) (*domain.Payment, error)
	getPaymentFn func(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	chargeCalls  int
}

func (m *mockPaymentService) ChargeCard(
	ctx context.Context,
	customerID uuid.UUID,
	req service.PaymentRequest,
) (*domain.Payment, error) {
	m.chargeCalls++
	return m.chargeFn(ctx, customerID, req)
}

func (m *mockPaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return m.getPaymentFn(ctx, id)
}

var (
	_ service.CustomerRegistrationService = (*mockRegistrationService)(nil)
	_ service.PaymentService              = (*mockPaymentService)(nil)
)
