package stripe

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripego "github.com/stripe/stripe-go/v78"
)

// fakeCharges records the params of the last charge request
type fakeCharges struct {
	params *stripego.ChargeParams
	charge *stripego.Charge
	err    error
	calls  int
}

func (f *fakeCharges) New(params *stripego.ChargeParams) (*stripego.Charge, error) {
	f.calls++
	f.params = params
	return f.charge, f.err
}

type ctxKey struct{}

func TestCharger_ChargeCard_Paid(t *testing.T) {
	fake := &fakeCharges{charge: &stripego.Charge{ID: "ch_1", Paid: true, Status: stripego.ChargeStatusSucceeded}}
	charger := newCharger(fake, nil)
	ctx := context.WithValue(context.Background(), ctxKey{}, "request")

	result, err := charger.ChargeCard(ctx, "card123xx", decimal.RequireFromString("100.00"), domain.CurrencyUSD, "Donation")

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, fake.params)
	assert.Equal(t, int64(10000), *fake.params.Amount)
	assert.Equal(t, "usd", *fake.params.Currency)
	assert.Equal(t, "card123xx", *fake.params.Source.Token)
	assert.Equal(t, "Donation", *fake.params.Description)
	assert.Equal(t, ctx, fake.params.Context)
}

func TestCharger_ChargeCard_NotPaid(t *testing.T) {
	fake := &fakeCharges{charge: &stripego.Charge{ID: "ch_2", Paid: false, Status: stripego.ChargeStatusFailed}}
	charger := newCharger(fake, nil)

	result, err := charger.ChargeCard(context.Background(), "card123xx", decimal.RequireFromString("1.50"), domain.CurrencyGBP, "")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, int64(150), *fake.params.Amount)
	assert.Equal(t, "gbp", *fake.params.Currency)
}

func TestCharger_ChargeCard_CardErrorIsDecline(t *testing.T) {
	fake := &fakeCharges{err: &stripego.Error{
		Type:        stripego.ErrorTypeCard,
		Code:        stripego.ErrorCodeCardDeclined,
		DeclineCode: stripego.DeclineCodeInsufficientFunds,
		Msg:         "Your card has insufficient funds.",
	}}
	charger := newCharger(fake, nil)

	result, err := charger.ChargeCard(context.Background(), "tok_chargeDeclined", decimal.RequireFromString("10"), domain.CurrencyUSD, "")

	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestCharger_ChargeCard_APIErrorIsReturned(t *testing.T) {
	apiErr := &stripego.Error{Type: stripego.ErrorTypeAPI, Msg: "internal"}
	fake := &fakeCharges{err: apiErr}
	charger := newCharger(fake, nil)

	_, err := charger.ChargeCard(context.Background(), "card123xx", decimal.RequireFromString("10"), domain.CurrencyUSD, "")

	require.Error(t, err)
	var stripeErr *stripego.Error
	assert.True(t, errors.As(err, &stripeErr))
	assert.Equal(t, stripego.ErrorTypeAPI, stripeErr.Type)
}

func TestCharger_ChargeCard_RejectsUnrepresentableAmount(t *testing.T) {
	fake := &fakeCharges{}
	charger := newCharger(fake, nil)

	_, err := charger.ChargeCard(context.Background(), "card123xx", decimal.RequireFromString("1.005"), domain.CurrencyUSD, "")

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 0, fake.calls)
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount  string
		want    int64
		wantErr bool
	}{
		{"100.00", 10000, false},
		{"0.01", 1, false},
		{"42", 4200, false},
		{"1.999", 0, true},
		{"0", 0, true},
		{"-5.00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := ToMinorUnits(decimal.RequireFromString(tt.amount), domain.CurrencyUSD)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApprovingCharger(t *testing.T) {
	charger := NewApprovingCharger(nil)

	result, err := charger.ChargeCard(context.Background(), "card123xx", decimal.RequireFromString("100.00"), domain.CurrencyUSD, "Donation")

	require.NoError(t, err)
	assert.True(t, result.Success)
}
