package http

import (
	"net/http"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/groceryworks/catalog-service/internal/auth"
	"github.com/groceryworks/catalog-service/internal/observability"
	"github.com/groceryworks/catalog-service/internal/service"
)

// Server holds the HTTP handler dependencies
type Server struct {
	categories  service.CategoryService
	products    service.ProductService
	tokens      *auth.Issuer
	db          *pgxpool.Pool
	producer    sarama.SyncProducer
	metrics     *observability.Metrics
	logger      zerolog.Logger
	serviceName string
}

// NewServer creates a new HTTP server. producer may be nil when Kafka
// publishing is disabled.
func NewServer(
	categories service.CategoryService,
	products service.ProductService,
	tokens *auth.Issuer,
	db *pgxpool.Pool,
	producer sarama.SyncProducer,
	metrics *observability.Metrics,
	logger zerolog.Logger,
	serviceName string,
) *Server {
	return &Server{
		categories:  categories,
		products:    products,
		tokens:      tokens,
		db:          db,
		producer:    producer,
		metrics:     metrics,
		logger:      logger.With().Str("component", "http_server").Logger(),
		serviceName: serviceName,
	}
}

// Router builds the chi router with all routes and middleware attached
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(requestMetrics(s.metrics))
	r.Use(requestTracing(s.serviceName))
	r.Use(recoverPanics(s.logger))

	r.Get("/health", HealthHandler())
	r.Get("/ready", ReadyHandler(s.db, s.producer, s.logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/token/new", s.createToken)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Post("/", s.saveProduct)
			r.Put("/{id}", s.updateProduct)
			r.Delete("/{id}", s.deleteProduct)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.saveCategory)
			r.Put("/{id}", s.updateCategory)
			r.Delete("/{id}", s.deleteCategory)
		})
	})

	return r
}
