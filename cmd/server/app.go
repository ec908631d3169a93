package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/paycore-api/internal/config"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/metrics"
	"github.com/phrazzld/paycore-api/internal/platform/kafka"
	"github.com/phrazzld/paycore-api/internal/platform/postgres"
	"github.com/phrazzld/paycore-api/internal/platform/stripe"
	"github.com/phrazzld/paycore-api/internal/service"
	"github.com/phrazzld/paycore-api/internal/store"
	"github.com/phrazzld/paycore-api/internal/store/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	registry    *prometheus.Registry
	httpMetrics *metrics.HTTPMetrics

	customerStore store.CustomerStore
	paymentStore  store.PaymentStore
	charger       service.CardCharger
	publisher     *kafka.PaymentPublisher

	registrationService service.CustomerRegistrationService
	paymentService      service.PaymentService
}

// newApplication creates a new application instance with all dependencies initialized.
// On error every resource opened so far is released.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(app.registry)
	app.httpMetrics = metrics.NewHTTPMetrics(app.registry)

	if err = app.setupStores(ctx); err != nil {
		return nil, err
	}

	if cfg.Stripe.Enabled {
		app.charger = stripe.NewCharger(cfg.Stripe.APIKey, logger)
		logger.Info("Stripe card charge gateway initialized")
	} else {
		app.charger = stripe.NewApprovingCharger(logger)
		logger.Warn("Stripe is disabled, all card charges will be approved")
	}

	if cfg.Kafka.Enabled {
		producer, perr := kafka.NewSyncProducer(cfg.Kafka.Brokers)
		if perr != nil {
			return nil, fmt.Errorf("failed to create kafka producer: %w", perr)
		}
		app.publisher = kafka.NewPaymentPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("Kafka payment event publisher initialized",
			"brokers", cfg.Kafka.Brokers,
			"topic", cfg.Kafka.Topic)
	}

	registrationOpts := []service.RegistrationOption{
		service.WithRegistrationMetrics(recorder),
	}
	if cfg.Registration.ValidatePhoneNumber {
		registrationOpts = append(registrationOpts,
			service.WithPhoneNumberValidator(domain.ValidPhoneNumber))
	}

	app.registrationService, err = service.NewCustomerRegistrationService(
		app.customerStore,
		logger,
		registrationOpts...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer registration service: %w", err)
	}

	currencies, cerr := cfg.Payment.Currencies()
	if cerr != nil {
		return nil, cerr
	}

	paymentOpts := []service.PaymentOption{
		service.WithAcceptedCurrencies(currencies...),
		service.WithPaymentMetrics(recorder),
	}
	if app.publisher != nil {
		paymentOpts = append(paymentOpts, service.WithEventPublisher(app.publisher))
	}

	app.paymentService, err = service.NewPaymentService(
		app.customerStore,
		app.paymentStore,
		app.charger,
		logger,
		paymentOpts...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"validate_phone_number", cfg.Registration.ValidatePhoneNumber,
		"accepted_currencies", cfg.Payment.AcceptedCurrencies)
	return app, nil
}

// setupStores selects the store implementations for the configured driver.
func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Database.Driver {
	case config.DriverMemory:
		app.customerStore = memory.NewCustomerStore(app.logger)
		app.paymentStore = memory.NewPaymentStore(app.logger)
		app.logger.Warn("Using in-memory stores, data will not survive a restart")
		return nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, app.config.Database.URL, app.logger)
		if err != nil {
			return err
		}
		app.db = db
		app.customerStore = postgres.NewPostgresCustomerStore(db, app.logger)
		app.paymentStore = postgres.NewPostgresPaymentStore(db, app.logger)
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("Error closing kafka producer", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
}
