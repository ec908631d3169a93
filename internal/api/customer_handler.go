package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/paycore-api/internal/api/shared"
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/redact"
	"github.com/phrazzld/paycore-api/internal/service"
)

// CustomerHandler handles customer registration HTTP requests
type CustomerHandler struct {
	registrationService service.CustomerRegistrationService
	logger              *slog.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	registrationService service.CustomerRegistrationService,
	logger *slog.Logger,
) *CustomerHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CustomerHandler")
	}

	return &CustomerHandler{
		registrationService: registrationService,
		logger:              logger.With(slog.String("component", "customer_handler")),
	}
}

// RegisterCustomer handles PUT /api/v1/customer-registration requests.
// Re-registering the same name and phone number succeeds and returns the
// existing identity.
func (h *CustomerHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CustomerRegistrationBody
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	id, err := parseOptionalUUID("id", req.Customer.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	customer := &domain.Customer{
		ID:          id,
		Name:        req.Customer.Name,
		PhoneNumber: req.Customer.PhoneNumber,
	}

	err = h.registrationService.RegisterNewCustomer(
		r.Context(),
		service.CustomerRegistrationRequest{Customer: customer},
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to register customer"
		}

		var opts []shared.ResponseOption
		if errors.Is(err, service.ErrCustomerIDTaken) {
			opts = append(opts,
				shared.WithLogLevel(slog.LevelWarn),
				shared.WithLogAttrs(slog.String("customer_id", customer.ID.String())))
		}

		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err, opts...)
		return
	}

	log.Debug("customer registered", slog.String("customer_id", customer.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, customerToResponse(customer))
}
