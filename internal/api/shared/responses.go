package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/paycore-api/internal/platform/logger"
	"github.com/phrazzld/paycore-api/internal/redact"
)

// ErrorResponse is the body of every error reply. Code is kept for logging
// only and never leaves the process.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"-"`
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption adjusts how an error reply is logged.
type ResponseOption func(*errorLogging)

type errorLogging struct {
	floor slog.Level
	attrs []slog.Attr
}

// WithLogLevel sets the lowest level an error reply is logged at. Declined
// charges and customer id collisions use slog.LevelWarn so they stay visible
// without debug logging.
func WithLogLevel(level slog.Level) ResponseOption {
	return func(l *errorLogging) {
		l.floor = level
	}
}

// WithLogAttrs attaches request facts such as the customer id or currency to
// the error log line.
func WithLogAttrs(attrs ...slog.Attr) ResponseOption {
	return func(l *errorLogging) {
		l.attrs = append(l.attrs, attrs...)
	}
}

// RespondWithJSON writes data as a JSON body with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes an error reply carrying message and the request's
// trace id.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorAndLog(w, r, status, message, nil)
}

// RespondWithErrorAndLog writes an error reply with userMessage and logs err
// in redacted form next to it. The raw error never reaches the client.
//
// Server errors log at ERROR and 429 at WARN. Everything else logs at DEBUG
// unless WithLogLevel raises it.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	ctx := r.Context()
	traceID := GetTraceID(ctx)

	cfg := errorLogging{floor: slog.LevelDebug}
	for _, opt := range opts {
		opt(&cfg)
	}

	attrs := append([]slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("user_message", userMessage),
	}, cfg.attrs...)
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	msg := "request rejected"
	if status >= http.StatusInternalServerError {
		msg = "request failed"
	}
	logger.FromContextOrDefault(ctx, slog.Default()).
		LogAttrs(ctx, errorLogLevel(status, cfg.floor), msg, attrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		Code:    status,
		TraceID: traceID,
	})
}

func errorLogLevel(status int, floor slog.Level) slog.Level {
	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	}
	if status >= http.StatusBadRequest && floor > level {
		level = floor
	}
	return level
}
