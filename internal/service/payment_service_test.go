package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/store"
	"github.com/phrazzld/paycore-api/internal/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	customers *MockCustomerStore
	payments  *MockPaymentStore
	charger   *MockCardCharger
	svc       PaymentService
}

func newPaymentFixture(t *testing.T, opts ...PaymentOption) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		customers: &MockCustomerStore{},
		payments:  &MockPaymentStore{},
		charger:   &MockCardCharger{},
	}
	svc, err := NewPaymentService(f.customers, f.payments, f.charger, nil, opts...)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func donation(currency domain.Currency) PaymentRequest {
	return PaymentRequest{Payment: domain.Payment{
		Amount:      decimal.RequireFromString("100.00"),
		Currency:    currency,
		Source:      "card123xx",
		Description: "Donation",
	}}
}

func TestNewPaymentService_RequiredDependencies(t *testing.T) {
	customers := &MockCustomerStore{}
	payments := &MockPaymentStore{}
	charger := &MockCardCharger{}

	tests := []struct {
		name      string
		customers store.CustomerStore
		payments  store.PaymentStore
		charger   CardCharger
		message   string
	}{
		{"nil customers", nil, payments, charger, "customer store cannot be nil"},
		{"nil payments", customers, nil, charger, "payment store cannot be nil"},
		{"nil charger", customers, payments, nil, "card charger cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewPaymentService(tt.customers, tt.payments, tt.charger, nil)
			assert.Nil(t, svc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestChargeCard_ApprovedChargeIsPersisted(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	customerID := uuid.New()
	req := donation(domain.CurrencyUSD)

	f.customers.On("GetByID", mock.Anything, customerID).
		Return(&domain.Customer{ID: customerID, Name: "Ramona", PhoneNumber: "000099"}, nil)
	f.charger.On("ChargeCard", mock.Anything, "card123xx", req.Payment.Amount, domain.CurrencyUSD, "Donation").
		Return(domain.CardCharge{Success: true}, nil)
	f.payments.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.CustomerID == customerID &&
			p.Amount.Equal(decimal.RequireFromString("100.00")) &&
			p.Currency == domain.CurrencyUSD &&
			p.Source == "card123xx" &&
			p.Description == "Donation"
	})).Return(nil)

	payment, err := f.svc.ChargeCard(ctx, customerID, req)

	require.NoError(t, err)
	assert.Equal(t, customerID, payment.CustomerID)
	assert.Equal(t, uuid.Nil, req.Payment.CustomerID, "request payment must not be mutated")
	f.payments.AssertNumberOfCalls(t, "Save", 1)
	f.customers.AssertExpectations(t)
	f.charger.AssertExpectations(t)
	f.payments.AssertExpectations(t)
}

func TestChargeCard_CustomerNotFound(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	customerID := uuid.New()

	f.customers.On("GetByID", mock.Anything, customerID).Return(nil, store.ErrCustomerNotFound)

	payment, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))

	assert.Nil(t, payment)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.EqualError(t, err, "Customer with id ["+customerID.String()+"] not found")
	f.charger.AssertNotCalled(t, "ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestChargeCard_CurrencyNotSupported(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	customerID := uuid.New()

	f.customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)

	payment, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyEUR))

	assert.Nil(t, payment)
	assert.ErrorIs(t, err, ErrCurrencyNotSupported)
	assert.Contains(t, err.Error(), "Currency[EUR] not supported")
	f.charger.AssertNotCalled(t, "ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChargeCard_GBPIsAccepted(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	customerID := uuid.New()

	f.customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	f.charger.On("ChargeCard", mock.Anything, mock.Anything, mock.Anything, domain.CurrencyGBP, mock.Anything).
		Return(domain.CardCharge{Success: true}, nil)
	f.payments.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyGBP))

	require.NoError(t, err)
}

func TestChargeCard_Declined(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	customerID := uuid.New()

	f.customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	f.charger.On("ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.CardCharge{Success: false}, nil)

	payment, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))

	assert.Nil(t, payment)
	assert.ErrorIs(t, err, ErrChargeDeclined)
	assert.EqualError(t, err, "Card not debited for customer "+customerID.String())
	f.customers.AssertNumberOfCalls(t, "GetByID", 1)
	f.charger.AssertNumberOfCalls(t, "ChargeCard", 1)
	f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChargeCard_GatewayError(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	customerID := uuid.New()
	gatewayErr := errors.New("gateway unavailable")

	f.customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	f.charger.On("ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.CardCharge{}, gatewayErr)

	_, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))

	assert.ErrorIs(t, err, gatewayErr)
	assert.NotErrorIs(t, err, ErrChargeDeclined)
	f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChargeCard_CustomerLookupError(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	customerID := uuid.New()
	dbErr := errors.New("connection reset")

	f.customers.On("GetByID", mock.Anything, customerID).Return(nil, dbErr)

	_, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrCustomerNotFound)
	f.charger.AssertNotCalled(t, "ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChargeCard_SaveIntegrityViolation(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	customerID := uuid.New()

	f.customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	f.charger.On("ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.CardCharge{Success: true}, nil)
	f.payments.On("Save", mock.Anything, mock.Anything).
		Return(store.NotNullViolation("payment", "source"))

	_, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	var svcErr *ServiceError
	assert.True(t, errors.As(err, &svcErr))
}

func TestChargeCard_InvalidPaymentRejectedBeforeCollaborators(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(p *domain.Payment)
		cause  error
	}{
		{"negative over precise amount", func(p *domain.Payment) { p.Amount = decimal.RequireFromString("-100.005") }, domain.ErrNonPositiveAmount},
		{"negative amount", func(p *domain.Payment) { p.Amount = decimal.RequireFromString("-100.00") }, domain.ErrNonPositiveAmount},
		{"zero amount", func(p *domain.Payment) { p.Amount = decimal.Zero }, domain.ErrNonPositiveAmount},
		{"over precise amount", func(p *domain.Payment) { p.Amount = decimal.RequireFromString("100.005") }, domain.ErrAmountPrecision},
		{"missing currency", func(p *domain.Payment) { p.Currency = "" }, domain.ErrEmptyCurrency},
		{"missing source", func(p *domain.Payment) { p.Source = "" }, domain.ErrEmptySource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &recordingMetrics{}
			f := newPaymentFixture(t, WithPaymentMetrics(metrics))
			req := donation(domain.CurrencyUSD)
			tt.mutate(&req.Payment)

			payment, err := f.svc.ChargeCard(ctx, uuid.New(), req)

			assert.Nil(t, payment)
			assert.ErrorIs(t, err, tt.cause)
			assert.ErrorIs(t, err, domain.ErrValidation)
			f.customers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			f.charger.AssertNotCalled(t, "ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			assert.Equal(t, []string{OutcomeInvalidPayment}, metrics.outcomes)
			assert.Zero(t, metrics.gatewayCalls)
		})
	}
}

func TestChargeCard_InvalidPaymentNotStored(t *testing.T) {
	ctx := context.Background()
	customers := memory.NewCustomerStore(nil)
	payments := memory.NewPaymentStore(nil)
	customerID := uuid.New()
	require.NoError(t, customers.Save(ctx, &domain.Customer{ID: customerID, Name: "Abel", PhoneNumber: "0000"}))

	charger := &MockCardCharger{}
	svc, err := NewPaymentService(customers, payments, charger, nil)
	require.NoError(t, err)

	req := donation(domain.CurrencyUSD)
	req.Payment.Amount = decimal.RequireFromString("-100.005")

	payment, err := svc.ChargeCard(ctx, customerID, req)

	assert.Nil(t, payment)
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)
	charger.AssertNotCalled(t, "ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChargeCard_AcceptedCurrenciesOption(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, WithAcceptedCurrencies(domain.CurrencyEUR))
	customerID := uuid.New()

	f.customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	f.charger.On("ChargeCard", mock.Anything, mock.Anything, mock.Anything, domain.CurrencyEUR, mock.Anything).
		Return(domain.CardCharge{Success: true}, nil)
	f.payments.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyEUR))
	require.NoError(t, err)

	_, err = f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))
	assert.ErrorIs(t, err, ErrCurrencyNotSupported)
}

func TestChargeCard_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	setup := func(t *testing.T, publishErr error) (*paymentFixture, *MockPaymentEventPublisher) {
		publisher := &MockPaymentEventPublisher{}
		publisher.On("PublishPaymentCharged", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.CustomerID == customerID
		})).Return(publishErr)

		f := newPaymentFixture(t, WithEventPublisher(publisher))
		f.customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
		f.charger.On("ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.CardCharge{Success: true}, nil)
		f.payments.On("Save", mock.Anything, mock.Anything).Return(nil)
		return f, publisher
	}

	t.Run("published after save", func(t *testing.T) {
		f, publisher := setup(t, nil)

		_, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))

		require.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("publish failure does not fail the charge", func(t *testing.T) {
		f, publisher := setup(t, errors.New("broker down"))

		payment, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))

		require.NoError(t, err)
		assert.NotNil(t, payment)
		publisher.AssertExpectations(t)
	})

	t.Run("declined charges are not published", func(t *testing.T) {
		publisher := &MockPaymentEventPublisher{}
		f := newPaymentFixture(t, WithEventPublisher(publisher))
		f.customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
		f.charger.On("ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.CardCharge{Success: false}, nil)

		_, err := f.svc.ChargeCard(ctx, customerID, donation(domain.CurrencyUSD))

		assert.ErrorIs(t, err, ErrChargeDeclined)
		publisher.AssertNotCalled(t, "PublishPaymentCharged", mock.Anything, mock.Anything)
	})
}

func TestChargeCard_RecordsOutcomes(t *testing.T) {
	ctx := context.Background()
	metrics := &recordingMetrics{}
	f := newPaymentFixture(t, WithPaymentMetrics(metrics))
	known := uuid.New()
	unknown := uuid.New()

	f.customers.On("GetByID", mock.Anything, known).Return(&domain.Customer{ID: known}, nil)
	f.customers.On("GetByID", mock.Anything, unknown).Return(nil, store.ErrCustomerNotFound)
	f.charger.On("ChargeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.CardCharge{Success: true}, nil)
	f.payments.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, _ = f.svc.ChargeCard(ctx, unknown, donation(domain.CurrencyUSD))
	_, _ = f.svc.ChargeCard(ctx, known, donation(domain.CurrencyEUR))
	_, _ = f.svc.ChargeCard(ctx, known, donation(domain.CurrencyUSD))

	assert.Equal(t, []string{OutcomeCustomerNotFound, OutcomeCurrencyNotSupported, OutcomeApproved}, metrics.outcomes)
	assert.Equal(t, 1, metrics.gatewayCalls)
}

func TestGetPayment(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	id := uuid.New()
	stored := &domain.Payment{ID: id, CustomerID: uuid.New()}

	f.payments.On("GetByID", mock.Anything, id).Return(stored, nil)
	f.payments.On("GetByID", mock.Anything, mock.Anything).Return(nil, store.ErrPaymentNotFound)

	got, err := f.svc.GetPayment(ctx, id)
	require.NoError(t, err)
	assert.Same(t, stored, got)

	_, err = f.svc.GetPayment(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
