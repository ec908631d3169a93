package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/store"
	"github.com/shopspring/decimal"
)

// DefaultAcceptedCurrencies is the currency set charged when no other set is configured.
var DefaultAcceptedCurrencies = []domain.Currency{domain.CurrencyUSD, domain.CurrencyGBP}

// CardCharger is the external card charge gateway. One call is one
// synchronous charge attempt.
type CardCharger interface {
	ChargeCard(
		ctx context.Context,
		source string,
		amount decimal.Decimal,
		currency domain.Currency,
		description string,
	) (domain.CardCharge, error)
}

// PaymentEventPublisher announces payments that were charged and stored.
type PaymentEventPublisher interface {
	PublishPaymentCharged(ctx context.Context, payment *domain.Payment) error
}

// PaymentRequest carries the payment to charge.
type PaymentRequest struct {
	Payment domain.Payment `json:"payment"`
}

// PaymentService authorizes card charges and records the resulting payments.
type PaymentService interface {
	// ChargeCard charges req.Payment for the customer and persists the payment
	// with the customer id attached once the gateway approves it. A payment
	// failing domain.Payment.Validate is rejected before any collaborator call.
	ChargeCard(ctx context.Context, customerID uuid.UUID, req PaymentRequest) (*domain.Payment, error)

	// GetPayment retrieves a stored payment by its ID.
	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
}

// PaymentOption configures a PaymentService.
type PaymentOption func(*paymentServiceImpl)

// WithAcceptedCurrencies replaces the accepted currency set. An empty list
// keeps the default set.
func WithAcceptedCurrencies(currencies ...domain.Currency) PaymentOption {
	return func(s *paymentServiceImpl) {
		if len(currencies) == 0 {
			return
		}
		s.accepted = make(map[domain.Currency]struct{}, len(currencies))
		for _, c := range currencies {
			s.accepted[c] = struct{}{}
		}
	}
}

// WithEventPublisher publishes a payment charged event after each stored payment.
func WithEventPublisher(p PaymentEventPublisher) PaymentOption {
	return func(s *paymentServiceImpl) {
		s.publisher = p
	}
}

// WithPaymentMetrics records charge outcomes to m.
func WithPaymentMetrics(m PaymentMetrics) PaymentOption {
	return func(s *paymentServiceImpl) {
		if m != nil {
			s.metrics = m
		}
	}
}

type paymentServiceImpl struct {
	customers store.CustomerStore
	payments  store.PaymentStore
	charger   CardCharger
	accepted  map[domain.Currency]struct{}
	publisher PaymentEventPublisher
	metrics   PaymentMetrics
	logger    *slog.Logger
}

// NewPaymentService creates a PaymentService.
// It returns an error if any of the required dependencies are nil.
func NewPaymentService(
	customers store.CustomerStore,
	payments store.PaymentStore,
	charger CardCharger,
	logger *slog.Logger,
	opts ...PaymentOption,
) (PaymentService, error) {
	if customers == nil {
		return nil, newPaymentSetupError("customer store cannot be nil")
	}
	if payments == nil {
		return nil, newPaymentSetupError("payment store cannot be nil")
	}
	if charger == nil {
		return nil, newPaymentSetupError("card charger cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &paymentServiceImpl{
		customers: customers,
		payments:  payments,
		charger:   charger,
		metrics:   noopMetrics{},
		logger:    logger.With("component", "payment_service"),
	}
	WithAcceptedCurrencies(DefaultAcceptedCurrencies...)(s)
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func newPaymentSetupError(message string) error {
	return &ServiceError{
		Service:   "payment",
		Operation: "create_service",
		Message:   message,
	}
}

// ChargeCard implements PaymentService.ChargeCard
func (s *paymentServiceImpl) ChargeCard(
	ctx context.Context,
	customerID uuid.UUID,
	req PaymentRequest,
) (*domain.Payment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("customer_id", customerID)
	currency := req.Payment.Currency

	if err := req.Payment.Validate(); err != nil {
		log.Debug("payment rejected by validation", "error", err)
		s.metrics.ChargeCompleted(OutcomeInvalidPayment, currency.String())
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if store.IsNotFoundError(err) {
			s.metrics.ChargeCompleted(OutcomeCustomerNotFound, currency.String())
			return nil, customerNotFound(customerID.String())
		}
		log.Error("failed to look up customer", "error", err)
		s.metrics.ChargeCompleted(OutcomeError, currency.String())
		return nil, NewServiceError("payment", "charge_card", "failed to look up customer", err)
	}

	if _, ok := s.accepted[currency]; !ok {
		log.Debug("currency rejected", "currency", currency)
		s.metrics.ChargeCompleted(OutcomeCurrencyNotSupported, currency.String())
		return nil, currencyNotSupported(currency.String())
	}

	started := time.Now()
	charge, err := s.charger.ChargeCard(
		ctx,
		req.Payment.Source,
		req.Payment.Amount,
		currency,
		req.Payment.Description,
	)
	s.metrics.GatewayCallObserved(time.Since(started))
	if err != nil {
		log.Error("card charge gateway failed", "error", err)
		s.metrics.ChargeCompleted(OutcomeError, currency.String())
		return nil, NewServiceError("payment", "charge_card", "card charge gateway failed", err)
	}

	if !charge.Success {
		log.Info("card charge declined", "currency", currency)
		s.metrics.ChargeCompleted(OutcomeDeclined, currency.String())
		return nil, chargeDeclined(customerID.String())
	}

	payment := req.Payment.WithCustomer(customerID)
	if err := s.payments.Save(ctx, payment); err != nil {
		log.Error("failed to save charged payment", "error", err)
		s.metrics.ChargeCompleted(OutcomeError, currency.String())
		return nil, NewServiceError("payment", "charge_card", "failed to save payment", err)
	}

	log.Info("card charged",
		"payment_id", payment.ID,
		"currency", currency,
		"amount", payment.Amount.String())
	s.metrics.ChargeCompleted(OutcomeApproved, currency.String())

	if s.publisher != nil {
		if err := s.publisher.PublishPaymentCharged(ctx, payment); err != nil {
			// The charge is already stored; publishing is best effort.
			log.Warn("failed to publish payment charged event",
				"error", err,
				"payment_id", payment.ID)
		}
	}

	return payment, nil
}

// GetPayment implements PaymentService.GetPayment
func (s *paymentServiceImpl) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrPaymentNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get payment",
			"error", err,
			"payment_id", id)
		return nil, NewServiceError("payment", "get_payment", "failed to get payment", err)
	}
	return payment, nil
}
