package stripe

import (
	"context"
	"log/slog"

	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/service"
	"github.com/shopspring/decimal"
)

// ApprovingCharger approves every charge without contacting Stripe.
// It is wired in when Stripe is disabled in configuration.
type ApprovingCharger struct {
	logger *slog.Logger
}

var _ service.CardCharger = (*ApprovingCharger)(nil)

// NewApprovingCharger creates an ApprovingCharger.
func NewApprovingCharger(logger *slog.Logger) *ApprovingCharger {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApprovingCharger{logger: logger.With("component", "approving_charger")}
}

// ChargeCard implements service.CardCharger.ChargeCard
func (c *ApprovingCharger) ChargeCard(
	ctx context.Context,
	_ string,
	amount decimal.Decimal,
	currency domain.Currency,
	description string,
) (domain.CardCharge, error) {
	logger.FromContextOrDefault(ctx, c.logger).Info("charge approved without gateway",
		"amount", amount.String(),
		"currency", currency,
		"description", description)
	return domain.CardCharge{Success: true}, nil
}
