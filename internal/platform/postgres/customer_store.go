package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/redact"
	"github.com/phrazzld/paycore-api/internal/store"
)

// PostgresCustomerStore implements the store.CustomerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCustomerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCustomerStore creates a new PostgreSQL implementation of the CustomerStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCustomerStore(db store.DBTX, logger *slog.Logger) *PostgresCustomerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCustomerStore{
		db:     db,
		logger: logger.With(slog.String("component", "customer_store")),
	}
}

// Ensure PostgresCustomerStore implements store.CustomerStore interface
var _ store.CustomerStore = (*PostgresCustomerStore)(nil)

// GetByPhoneNumber implements store.CustomerStore.GetByPhoneNumber
// Returns store.ErrCustomerNotFound if no customer has the phone number.
func (s *PostgresCustomerStore) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, phone_number
		FROM customers
		WHERE phone_number = $1
	`

	var customer domain.Customer
	err := s.db.QueryRowContext(ctx, query, phoneNumber).Scan(
		&customer.ID,
		&customer.Name,
		&customer.PhoneNumber,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer by phone number",
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("customer", "get_by_phone_number", "query failed", mapped)
	}

	return &customer, nil
}

// GetByID implements store.CustomerStore.GetByID
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving customer by ID", slog.String("customer_id", id.String()))

	query := `
		SELECT id, name, phone_number
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.PhoneNumber,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("customer not found", slog.String("customer_id", id.String()))
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer",
			slog.String("error", redact.Error(err)),
			slog.String("customer_id", id.String()))
		return nil, store.NewStoreError("customer", "get_by_id", "query failed", mapped)
	}

	return &customer, nil
}

// Save implements store.CustomerStore.Save
// Customers are insert-only. Returns store.ErrCustomerIDExists if the ID is
// already stored, store.ErrPhoneNumberExists if another customer has the
// phone number and store.ErrInvalidEntity if a required field is empty.
func (s *PostgresCustomerStore) Save(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO customers (id, name, phone_number)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		nullableUUID(customer.ID),
		customer.Name,
		customer.PhoneNumber,
	)
	if err != nil {
		mapped := MapUniqueViolation(err, customerUniqueConstraints)
		if store.IsDuplicateError(mapped) || errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("customer rejected by constraint",
				slog.String("error", redact.Error(err)),
				slog.String("column", violatedColumn(err)),
				slog.String("customer_id", customer.ID.String()))
			return mapped
		}

		log.Error("failed to save customer",
			slog.String("error", redact.Error(err)),
			slog.String("customer_id", customer.ID.String()))
		return store.NewStoreError("customer", "save", "insert failed", mapped)
	}

	log.Info("customer saved successfully",
		slog.String("customer_id", customer.ID.String()))
	return nil
}

// customerUniqueConstraints names the store error for each unique constraint
// on the customers table.
var customerUniqueConstraints = map[string]error{
	"customers_pkey":             store.ErrCustomerIDExists,
	"customers_phone_number_key": store.ErrPhoneNumberExists,
}

// nullableUUID binds uuid.Nil as SQL NULL.
func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
