package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groceryworks/catalog-service/internal/auth"
	"github.com/groceryworks/catalog-service/internal/cache"
	"github.com/groceryworks/catalog-service/internal/config"
	httpHandler "github.com/groceryworks/catalog-service/internal/handler/http"
	"github.com/groceryworks/catalog-service/internal/messaging"
	"github.com/groceryworks/catalog-service/internal/models"
	"github.com/groceryworks/catalog-service/internal/observability"
	"github.com/groceryworks/catalog-service/internal/repository"
	"github.com/groceryworks/catalog-service/internal/service"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. Initialize logger
	logger := observability.NewLogger(observability.LoggerConfig{
		ServiceName: cfg.Service.Name,
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
	})
	logger.Info().
		Str("environment", cfg.Service.Environment).
		Msg("catalog-service starting")

	// 3. Initialize metrics
	metrics := observability.NewMetrics()

	// 4. Connect to PostgreSQL
	dbPool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping database")
	}
	logger.Info().Msg("database connection established")

	// 5. Initialize Kafka producer (optional). Outbox rows are written
	// either way; without a producer they stay queued in the table.
	var kafkaProducer sarama.SyncProducer
	if cfg.Kafka.Enabled {
		kafkaConfig := sarama.NewConfig()
		kafkaConfig.Producer.RequiredAcks = sarama.WaitForAll
		kafkaConfig.Producer.Return.Successes = true
		kafkaConfig.Producer.Retry.Max = 3
		kafkaConfig.Producer.Compression = sarama.CompressionSnappy

		kafkaProducer, err = sarama.NewSyncProducer(cfg.Kafka.Brokers, kafkaConfig)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create Kafka producer")
		}
		defer kafkaProducer.Close()
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("kafka producer initialized")
	} else {
		logger.Info().Msg("kafka publishing disabled")
	}

	// 6. Initialize repositories
	categoryRepo := repository.NewPostgresCategoryRepository(dbPool, logger)
	productRepo := repository.NewPostgresProductRepository(dbPool, logger)
	outboxRepo := repository.NewPostgresOutboxRepository(dbPool, logger)

	// 7. Initialize list caches and the service layer
	categoryCache := cache.New[[]models.Category](cfg.Cache.ListTTL)
	productCache := cache.New[[]models.Product](cfg.Cache.ListTTL)

	categoryService := service.NewCategoryService(
		dbPool,
		categoryRepo,
		outboxRepo,
		categoryCache,
		metrics,
		logger,
	)
	productService := service.NewProductService(
		dbPool,
		productRepo,
		categoryRepo,
		outboxRepo,
		productCache,
		metrics,
		logger,
	)

	// 8. Initialize token issuer
	tokenIssuer := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer, cfg.JWT.Audience)

	// 9. Create HTTP server
	server := httpHandler.NewServer(
		categoryService,
		productService,
		tokenIssuer,
		dbPool,
		kafkaProducer,
		metrics,
		logger,
		cfg.Service.Name,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 10. Start outbox publisher (background goroutine)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if kafkaProducer != nil {
		publisher := messaging.NewOutboxPublisher(outboxRepo, kafkaProducer, metrics, logger)
		go publisher.Start(ctx)
	}

	// 11. Start server
	go func() {
		logger.Info().Int("port", cfg.HTTP.Port).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// 12. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// 13. Graceful shutdown
	cancel() // Stop outbox publisher

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	logger.Info().Msg("HTTP server stopped")

	logger.Info().Msg("shutdown complete")
}
