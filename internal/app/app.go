package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/cricket-scoring/external/webhook"
	"github.com/riskibarqy/cricket-scoring/internal/config"
	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/standing"
	"github.com/riskibarqy/cricket-scoring/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cricket-scoring/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-scoring/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/cricket-scoring/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/cricket-scoring/internal/platform/cache"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/platform/metrics"
	"github.com/riskibarqy/cricket-scoring/internal/platform/resilience"
	"github.com/riskibarqy/cricket-scoring/internal/usecase"
)

type repositories struct {
	matches   match.Repository
	ledger    match.LedgerRepository
	standings standing.Repository
	close     func() error
}

// NewHTTPServer wires repositories, services and the router. The returned
// cleanup releases the database pool and must run after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var (
		metricsSvc     metrics.Metrics = metrics.NewNop()
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		metricsSvc = metrics.NewService(registry)
		metricsHandler = metrics.NewHandler(registry)
	}

	publisher, err := newEventPublisher(cfg, logger)
	if err != nil {
		return nil, nil, errors.Join(err, repos.close())
	}

	locks := &resilience.KeyedMutex{}
	standingSvc := usecase.NewStandingService(
		repos.matches,
		repos.ledger,
		repos.standings,
		publisher,
		metricsSvc,
		nil,
		usecase.StandingServiceConfig{
			Rules: standing.Rules{
				Points: standing.PointsTable{
					Win:      cfg.PointsWin,
					Tie:      cfg.PointsTie,
					Loss:     cfg.PointsLoss,
					NoResult: cfg.PointsNoResult,
				},
				AllOutUsesFullQuota: cfg.NRRAllOutUsesFullQuota,
			},
			RebuildWorkers: cfg.RebuildWorkers,
		},
		logger,
	)
	handler := httpapi.NewHandler(
		usecase.NewMatchService(repos.matches, repos.ledger, locks, nil, logger),
		usecase.NewScoringService(repos.matches, repos.ledger, locks, publisher, metricsSvc, nil, logger),
		usecase.NewResultService(repos.matches, repos.ledger, standingSvc, locks, publisher, metricsSvc, nil, logger),
		standingSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		MetricsHandler:     metricsHandler,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories
	if cfg.UsePostgres() {
		db, err := openDB(ctx, cfg, logger)
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			matches:   postgres.NewMatchRepository(db),
			ledger:    postgres.NewLedgerRepository(db),
			standings: postgres.NewStandingRepository(db),
			close:     db.Close,
		}
	} else {
		logger.Warn("DB_URL empty, using in-memory repositories")
		repos = repositories{
			matches:   memory.NewMatchRepository(),
			ledger:    memory.NewLedgerRepository(),
			standings: memory.NewStandingRepository(),
			close:     func() error { return nil },
		}
	}

	if cfg.CacheEnabled {
		repos.ledger = cache.NewLedgerRepository(repos.ledger, basecache.NewStore[[]match.Entry](cfg.CacheTTL))
	}
	return repos, nil
}

func newEventPublisher(cfg config.Config, logger *logging.Logger) (usecase.EventPublisher, error) {
	if !cfg.WebhookEnabled {
		logger.Info("event webhook disabled", "reason", "EVENT_WEBHOOK_URL empty")
		return usecase.NewNoopEventPublisher(), nil
	}

	publisher, err := webhook.NewPublisher(webhook.Config{
		URL:          cfg.WebhookURL,
		Secret:       cfg.WebhookSecret,
		Timeout:      cfg.WebhookTimeout,
		Retries:      cfg.WebhookRetries,
		RetryBackoff: cfg.WebhookRetryBackoff,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.WebhookCircuitEnabled,
			FailureThreshold: cfg.WebhookCircuitFailureCount,
			OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
		},
	}, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("event webhook enabled", "retries", cfg.WebhookRetries, "circuit_enabled", cfg.WebhookCircuitEnabled)
	return publisher, nil
}
