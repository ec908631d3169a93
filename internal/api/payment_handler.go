package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/api/shared"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/redact"
	"github.com/phrazzld/paycore-api/internal/service"
)

// PaymentHandler handles card payment HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService, logger *slog.Logger) *PaymentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PaymentHandler")
	}

	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger.With(slog.String("component", "payment_handler")),
	}
}

// ChargeCard handles POST /api/v1/payment requests.
// On success it responds with the persisted payment and its identity.
func (h *PaymentHandler) ChargeCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PaymentBody
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	customerID, err := uuid.Parse(req.Payment.CustomerID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid customerId format")
		return
	}

	currency, err := domain.ParseCurrency(req.Payment.Currency)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	payment := domain.Payment{
		Amount:      req.Payment.Amount,
		Currency:    currency,
		Source:      req.Payment.Source,
		Description: req.Payment.Description,
	}
	if err := payment.Validate(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	stored, err := h.paymentService.ChargeCard(r.Context(), customerID, service.PaymentRequest{Payment: payment})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to charge card"
		}

		opts := []shared.ResponseOption{shared.WithLogAttrs(
			slog.String("customer_id", customerID.String()),
			slog.String("currency", currency.String()))}
		if statusCode == http.StatusPaymentRequired {
			opts = append(opts, shared.WithLogLevel(slog.LevelWarn))
		}

		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err, opts...)
		return
	}

	log.Debug("card charged",
		slog.String("payment_id", stored.ID.String()),
		slog.String("customer_id", customerID.String()),
		slog.String("currency", currency.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, paymentToResponse(stored))
}

// GetPayment handles GET /api/v1/payment/{id} requests.
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	paymentID, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid payment ID", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid payment ID", err)
		return
	}

	payment, err := h.paymentService.GetPayment(r.Context(), paymentID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to retrieve payment"
		}

		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, paymentToResponse(payment))
}
