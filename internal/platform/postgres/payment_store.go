package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/redact"
	"github.com/phrazzld/paycore-api/internal/store"
)

// PostgresPaymentStore implements the store.PaymentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPaymentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPaymentStore creates a new PostgreSQL implementation of the PaymentStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPaymentStore(db store.DBTX, logger *slog.Logger) *PostgresPaymentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPaymentStore{
		db:     db,
		logger: logger.With(slog.String("component", "payment_store")),
	}
}

// Ensure PostgresPaymentStore implements store.PaymentStore interface
var _ store.PaymentStore = (*PostgresPaymentStore)(nil)

// GetByID implements store.PaymentStore.GetByID
// Returns store.ErrPaymentNotFound if the payment does not exist.
func (s *PostgresPaymentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, customer_id, amount, currency, source, description
		FROM payments
		WHERE id = $1
	`

	var payment domain.Payment
	var currency string
	var description sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.CustomerID,
		&payment.Amount,
		&currency,
		&payment.Source,
		&description,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("payment not found", slog.String("payment_id", id.String()))
			return nil, store.ErrPaymentNotFound
		}
		log.Error("failed to get payment",
			slog.String("error", redact.Error(err)),
			slog.String("payment_id", id.String()))
		return nil, store.NewStoreError("payment", "get_by_id", "query failed", mapped)
	}

	payment.Currency = domain.Currency(currency)
	payment.Description = description.String
	return &payment, nil
}

// Save implements store.PaymentStore.Save
// A payment without an ID gets a new one. Returns store.ErrInvalidEntity if the
// payment fails domain validation or the customer does not exist.
func (s *PostgresPaymentStore) Save(ctx context.Context, payment *domain.Payment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := payment.ValidateForStorage(); err != nil {
		log.Warn("payment rejected by validation",
			slog.String("error", err.Error()),
			slog.String("customer_id", payment.CustomerID.String()))
		return store.InvalidEntity("payment", err)
	}

	assigned := false
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
		assigned = true
	}

	query := `
		INSERT INTO payments (id, customer_id, amount, currency, source, description)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		payment.ID,
		nullableUUID(payment.CustomerID),
		payment.Amount,
		string(payment.Currency),
		payment.Source,
		payment.Description,
	)
	if err != nil {
		if assigned {
			payment.ID = uuid.Nil
		}

		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) || store.IsDuplicateError(mapped) {
			log.Warn("payment rejected by constraint",
				slog.String("error", redact.Error(err)),
				slog.String("column", violatedColumn(err)),
				slog.String("customer_id", payment.CustomerID.String()))
			return mapped
		}

		log.Error("failed to save payment",
			slog.String("error", redact.Error(err)),
			slog.String("customer_id", payment.CustomerID.String()))
		return store.NewStoreError("payment", "save", "insert failed", mapped)
	}

	log.Info("payment saved successfully",
		slog.String("payment_id", payment.ID.String()),
		slog.String("customer_id", payment.CustomerID.String()))
	return nil
}
