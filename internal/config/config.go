package config

import (
	"fmt"

	"github.com/phrazzld/paycore-api/internal/domain"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database" validate:"required"`
	Stripe       StripeConfig       `mapstructure:"stripe"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Payment      PaymentConfig      `mapstructure:"payment" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL    string `mapstructure:"url" validate:"required_if=Driver postgres,omitempty,url"`
}

// StripeConfig contains the card charge gateway settings.
// When disabled, every charge is approved without contacting Stripe.
type StripeConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key" validate:"required_if=Enabled true"`
}

// KafkaConfig contains the payment event publishing settings.
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers" validate:"required_if=Enabled true,dive,required"`
	Topic   string   `mapstructure:"topic" validate:"required"`
}

// RegistrationConfig contains customer registration policy settings.
type RegistrationConfig struct {
	ValidatePhoneNumber bool `mapstructure:"validate_phone_number"`
}

// PaymentConfig contains card payment policy settings.
type PaymentConfig struct {
	AcceptedCurrencies []string `mapstructure:"accepted_currencies" validate:"required,min=1,dive,len=3,alpha"`
}

// Currencies parses the accepted currency codes.
func (p PaymentConfig) Currencies() ([]domain.Currency, error) {
	currencies := make([]domain.Currency, 0, len(p.AcceptedCurrencies))
	for _, code := range p.AcceptedCurrencies {
		c, err := domain.ParseCurrency(code)
		if err != nil {
			return nil, fmt.Errorf("invalid accepted currency %q: %w", code, err)
		}
		currencies = append(currencies, c)
	}
	return currencies, nil
}
