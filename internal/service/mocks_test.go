package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCustomerStore mocks the store.CustomerStore interface
type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) GetByPhoneNumber(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	customer, _ := args.Get(0).(*domain.Customer)
	return customer, args.Error(1)
}

func (m *MockCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	customer, _ := args.Get(0).(*domain.Customer)
	return customer, args.Error(1)
}

func (m *MockCustomerStore) Save(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockPaymentStore mocks the store.PaymentStore interface
type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	payment, _ := args.Get(0).(*domain.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentStore) Save(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockCardCharger mocks the CardCharger interface
type MockCardCharger struct {
	mock.Mock
}

func (m *MockCardCharger) ChargeCard(
	ctx context.Context,
	source string,
	amount decimal.Decimal,
	currency domain.Currency,
	description string,
) (domain.CardCharge, error) {
	args := m.Called(ctx, source, amount, currency, description)
	return args.Get(0).(domain.CardCharge), args.Error(1)
}

// MockPaymentEventPublisher mocks the PaymentEventPublisher interface
type MockPaymentEventPublisher struct {
	mock.Mock
}

func (m *MockPaymentEventPublisher) PublishPaymentCharged(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// recordingMetrics captures reported outcomes
type recordingMetrics struct {
	outcomes     []string
	gatewayCalls int
}

func (r *recordingMetrics) RegistrationCompleted(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingMetrics) ChargeCompleted(outcome string, _ string) {
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingMetrics) GatewayCallObserved(time.Duration) {
	r.gatewayCalls++
}
