package stripe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/redact"
	"github.com/phrazzld/paycore-api/internal/service"
	"github.com/shopspring/decimal"
	stripego "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// ErrInvalidAmount is returned when the amount cannot be expressed in the
// currency's minor units.
var ErrInvalidAmount = errors.New("amount not representable in minor units")

// chargeCreator is the subset of the Stripe charges client used by Charger.
type chargeCreator interface {
	New(params *stripego.ChargeParams) (*stripego.Charge, error)
}

// Charger charges cards through the Stripe Charges API.
type Charger struct {
	charges chargeCreator
	logger  *slog.Logger
}

var _ service.CardCharger = (*Charger)(nil)

// NewCharger creates a Charger authenticated with apiKey.
// If logger is nil, the default logger is used.
func NewCharger(apiKey string, logger *slog.Logger) *Charger {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return newCharger(sc.Charges, logger)
}

func newCharger(charges chargeCreator, logger *slog.Logger) *Charger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Charger{
		charges: charges,
		logger:  logger.With("component", "stripe_charger"),
	}
}

// ChargeCard implements service.CardCharger.ChargeCard
func (c *Charger) ChargeCard(
	ctx context.Context,
	source string,
	amount decimal.Decimal,
	currency domain.Currency,
	description string,
) (domain.CardCharge, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	minor, err := ToMinorUnits(amount, currency)
	if err != nil {
		return domain.CardCharge{}, err
	}

	params := &stripego.ChargeParams{
		Amount:      stripego.Int64(minor),
		Currency:    stripego.String(strings.ToLower(currency.String())),
		Source:      &stripego.PaymentSourceSourceParams{Token: stripego.String(source)},
		Description: stripego.String(description),
	}
	params.Context = ctx

	charge, err := c.charges.New(params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripego.ErrorTypeCard {
			log.Info("stripe declined card",
				"decline_code", string(stripeErr.DeclineCode),
				"code", string(stripeErr.Code))
			return domain.CardCharge{Success: false}, nil
		}

		log.Error("stripe charge failed", "error", redact.Error(err))
		return domain.CardCharge{}, fmt.Errorf("stripe: failed to create charge: %w", err)
	}

	log.Debug("stripe charge created",
		"charge_id", charge.ID,
		"paid", charge.Paid,
		"status", string(charge.Status))
	return domain.CardCharge{Success: charge.Paid}, nil
}

// ToMinorUnits converts amount into an integer count of the currency's minor
// units (cents for USD). Amounts with more precision than the currency allows
// are rejected rather than rounded.
func ToMinorUnits(amount decimal.Decimal, currency domain.Currency) (int64, error) {
	shifted := amount.Shift(currency.MinorUnits())
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s %s", ErrInvalidAmount, amount.String(), currency)
	}
	if !shifted.IsPositive() {
		return 0, fmt.Errorf("%w: %s %s", ErrInvalidAmount, amount.String(), currency)
	}
	return shifted.IntPart(), nil
}
