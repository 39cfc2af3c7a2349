package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/order-payment/internal"
	"github.com/frahmantamala/order-payment/internal/order"
	"github.com/frahmantamala/order-payment/internal/payment"
	"github.com/frahmantamala/order-payment/internal/transport/middleware"
	"github.com/frahmantamala/order-payment/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, orderHandler *order.Handler, paymentHandler *payment.Handler, metrics internal.MetricsConfig, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	if metrics.Enabled {
		router.Use(middleware.Metrics)
		router.Handle(metrics.Path, promhttp.Handler())
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if orderHandler != nil {
			r.Route("/orders", func(or chi.Router) {
				or.Post("/", orderHandler.CreateOrder)  // POST /orders
				or.Get("/", orderHandler.GetAllOrders)  // GET /orders
				or.Route("/{orderId}", func(ir chi.Router) {
					ir.Get("/", orderHandler.GetOrder)       // GET /orders/:id
					ir.Put("/", orderHandler.UpdateOrder)    // PUT /orders/:id
					ir.Delete("/", orderHandler.DeleteOrder) // DELETE /orders/:id

					if paymentHandler != nil {
						ir.Route("/payments", func(pr chi.Router) {
							pr.Post("/", paymentHandler.CreatePayment)      // POST /orders/:id/payments
							pr.Get("/", paymentHandler.GetPayment)          // GET /orders/:id/payments
							pr.Post("/refund", paymentHandler.RefundPayment) // POST /orders/:id/payments/refund
						})
					}
				})
			})
		}
	})
}
