package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/config"
	"github.com/edugrade/similarity-service/internal/delivery/httpd"
	"github.com/edugrade/similarity-service/internal/repository"
	"github.com/edugrade/similarity-service/internal/service"
	"github.com/edugrade/similarity-service/internal/service/analyzer"
	"github.com/edugrade/similarity-service/internal/service/integration"
	"github.com/edugrade/similarity-service/internal/worker"
	"github.com/edugrade/similarity-service/internal/worker/queue"
)

type App struct {
	server          *http.Server
	logger          zerolog.Logger
	config          *config.Config
	db              *sql.DB
	detectionWorker worker.DetectionWorker
	rabbitMQRepo    repository.RabbitMQRepository
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	rabbitMQRepo, err := repository.NewRabbitMQRepository(cfg.RabbitMQ.URL, log)
	if err != nil {
		return nil, err
	}

	if err := rabbitMQRepo.SetupTopology(
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.BatchQueue,
		cfg.RabbitMQ.BatchKey,
	); err != nil {
		return nil, err
	}

	publisher := queue.NewRabbitMQPublisher(rabbitMQRepo.Channel(), log)
	consumer := queue.NewRabbitMQConsumer(
		rabbitMQRepo.Channel(),
		cfg.RabbitMQ.BatchQueue,
		cfg.RabbitMQ.ConsumerTag,
		cfg.RabbitMQ.PrefetchCount,
		log,
	)
	messageHandler := queue.NewMessageHandler(log)

	resultRepo := repository.NewResultRepository(db, log)

	submissionClient := integration.NewSubmissionClient(
		cfg.Submissions.URL,
		cfg.Submissions.Endpoint,
		cfg.Submissions.Timeout,
		cfg.Submissions.RetryCount,
		cfg.Submissions.RetryDelay,
		log,
	)

	embeddingClient := integration.NewEmbeddingClient(
		cfg.Embedding.URL,
		cfg.Embedding.Model,
		cfg.Embedding.Timeout,
		log,
	)

	comparator := analyzer.NewComparator(
		analyzer.Config{
			MinimumTextLength:   cfg.Analysis.MinimumTextLength,
			ExactMatchThreshold: cfg.Analysis.ExactMatchThreshold,
			HighThreshold:       cfg.Analysis.HighThreshold,
			ModerateThreshold:   cfg.Analysis.ModerateThreshold,
			Weights: analyzer.Weights{
				Exact:    cfg.Analysis.ExactWeight,
				NGram:    cfg.Analysis.NGramWeight,
				Semantic: cfg.Analysis.SemanticWeight,
				Sequence: cfg.Analysis.SequenceWeight,
				Jaccard:  cfg.Analysis.JaccardWeight,
			},
			StyleWeight: cfg.Analysis.StyleWeight,
		},
		embeddingClient,
		analyzer.NewStyleProfiler(),
		log,
	)

	detectionService := service.NewDetectionService(
		submissionClient,
		comparator,
		resultRepo,
		publisher,
		service.DetectionConfig{
			MaxWorkers: cfg.Analysis.MaxWorkers,
			Exchange:   cfg.RabbitMQ.Exchange,
			BatchKey:   cfg.RabbitMQ.BatchKey,
			CaseKey:    cfg.RabbitMQ.CaseKey,
		},
		log,
	)

	reportService := service.NewReportService(resultRepo, log)

	pool := worker.NewPool(cfg.Analysis.MaxWorkers, log)
	detectionWorker := worker.NewDetectionWorker(pool, consumer, messageHandler, detectionService, log)

	handler := httpd.NewHandler(
		detectionService,
		reportService,
		&healthChecker{store: resultRepo, pool: pool},
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:          server,
		logger:          log,
		config:          cfg,
		db:              db,
		detectionWorker: detectionWorker,
		rabbitMQRepo:    rabbitMQRepo,
	}, nil
}

func (a *App) Run() error {
	if err := a.detectionWorker.Start(context.Background()); err != nil {
		a.logger.Error().Err(err).Msg("Failed to start detection worker")
		return err
	}

	a.logger.Info().Msgf("Starting similarity service on %s", a.config.Server.Address)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down similarity service...")

	if err := a.detectionWorker.Stop(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to stop detection worker")
	}

	if a.rabbitMQRepo != nil {
		if err := a.rabbitMQRepo.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		return err
	}

	a.logger.Info().Msg("Similarity service stopped")
	return nil
}

// healthChecker adapts the store and pool for the /status endpoint.
type healthChecker struct {
	store repository.ResultRepository
	pool  *worker.Pool
}

func (h *healthChecker) PingStore(r *http.Request) error {
	return h.store.Ping(r.Context())
}

func (h *healthChecker) WorkerStats() map[string]interface{} {
	return map[string]interface{}{
		"max_workers":  h.pool.MaxWorkers(),
		"queue_length": h.pool.QueueLength(),
	}
}
