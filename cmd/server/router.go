package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/paycore-api/internal/api"
	apiMiddleware "github.com/phrazzld/paycore-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(app.httpMetrics.Middleware)

	customerHandler := api.NewCustomerHandler(app.registrationService, app.logger)
	paymentHandler := api.NewPaymentHandler(app.paymentService, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Put("/customer-registration", customerHandler.RegisterCustomer)

		r.Post("/payment", paymentHandler.ChargeCard)
		r.Get("/payment/{id}", paymentHandler.GetPayment)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
