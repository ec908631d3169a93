package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters.
// It returns an error wrapping domain.ErrValidation when the parameter is
// missing and domain.ErrInvalidFormat when it is not a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a valid identifier", domain.ErrInvalidFormat, paramName)
	}

	return id, nil
}

// parseOptionalUUID parses a UUID supplied in a request body. An empty string
// yields uuid.Nil.
func parseOptionalUUID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a valid identifier", domain.ErrInvalidFormat, field)
	}
	return id, nil
}
