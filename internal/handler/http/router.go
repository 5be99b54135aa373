package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paperleaf/paperleaf/internal/service"
	"github.com/paperleaf/paperleaf/pkg/health"
	"github.com/paperleaf/paperleaf/pkg/middleware"
)

// NewRouter creates a chi router with all Paperleaf routes registered.
func NewRouter(
	authService *service.AuthService,
	bookService *service.BookService,
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("paperleaf"))

	// Liveness root, health, and metrics endpoints
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Paperleaf API is running"))
	})
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(authService, logger)
	bookHandler := NewBookHandler(bookService, logger)
	reviewHandler := NewReviewHandler(reviewService, logger)

	// Bearer tokens resolve to a live account; deleted accounts fail closed.
	requireAuth := middleware.Auth(authService.Authenticate)

	// Public auth endpoints
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	// Catalog reads are public
	r.Get("/books", bookHandler.List)
	r.Get("/books/{id}", bookHandler.Get)

	// Writes require a bearer token
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(requireAuth)

		r.Post("/books", bookHandler.Add)
		r.Post("/reviews/{bookId}", reviewHandler.Add)
	})

	return r
}
