package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/ecoscan/ecoscan-api/internal/auth"
	"github.com/ecoscan/ecoscan-api/internal/config"
	httpDelivery "github.com/ecoscan/ecoscan-api/internal/delivery/http"
	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/events"
	"github.com/ecoscan/ecoscan-api/internal/health"
	"github.com/ecoscan/ecoscan-api/internal/session"
	"github.com/ecoscan/ecoscan-api/internal/store"
	"github.com/ecoscan/ecoscan-api/internal/store/gormstore"
	"github.com/ecoscan/ecoscan-api/internal/store/memory"
	"github.com/ecoscan/ecoscan-api/internal/usecase/command"
	"github.com/ecoscan/ecoscan-api/internal/usecase/query"
	"github.com/ecoscan/ecoscan-api/pkg/database"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

// ProvideStore opens the configured backend and wraps it with tracing
func ProvideStore(ctx context.Context, cfg *config.Config) (domain.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewGormConnection(ctx, database.Config{
			URL:             cfg.Database.URL,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogQueries:      cfg.Database.LogQueries,
		})
		if err != nil {
			return nil, nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		cleanup := func() {
			if err := sqlDB.Close(); err != nil {
				logger.Error(context.Background()).Err(err).Msg("Failed to close database")
			}
		}

		s := gormstore.New(db)
		if err := s.Migrate(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		return store.NewTracingStore(s), cleanup, nil

	default:
		logger.Warn(ctx).Msg("Using the in-memory store, data is lost on restart")
		return store.NewTracingStore(memory.New()), func() {}, nil
	}
}

// ProvideRedis returns nil when no component needs Redis
func ProvideRedis(cfg *config.Config) (*redis.Client, func()) {
	if !cfg.UsesRedis() {
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return client, func() { _ = client.Close() }
}

// ProvideSessionStore picks the memory or Redis session backend
func ProvideSessionStore(cfg *config.Config, client *redis.Client) session.Store {
	if cfg.Session.Store == config.SessionStoreRedis && client != nil {
		return session.NewRedisStore(client)
	}
	return session.NewMemoryStore()
}

// ProvideSessionManager creates the cookie session manager
func ProvideSessionManager(cfg *config.Config, sessions session.Store) *session.Manager {
	return session.NewManager(sessions, session.Options{
		CookieName: cfg.Session.CookieName,
		Secret:     cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})
}

// ProvidePublisher returns a Kafka publisher when brokers are configured
func ProvidePublisher(ctx context.Context, cfg *config.Config) (events.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.NoopPublisher{}, func() {}, nil
	}

	publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ClientID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx).
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.Topic).
		Msg("Publishing activity events to Kafka")

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error(context.Background()).Err(err).Msg("Failed to close Kafka producer")
		}
	}, nil
}

// ProvideCommands builds the write-side use cases
func ProvideCommands(s domain.Store, publisher events.Publisher, clock command.Clock) httpDelivery.Commands {
	return httpDelivery.Commands{
		RegisterUser:   command.NewRegisterUserHandler(s),
		LoginUser:      command.NewLoginUserHandler(s),
		AddFavorite:    command.NewAddFavoriteHandler(s, s, publisher, clock),
		RemoveFavorite: command.NewRemoveFavoriteHandler(s, publisher),
	}
}

// ProvideQueries builds the read-side use cases
func ProvideQueries(s domain.Store, publisher events.Publisher, clock command.Clock) httpDelivery.Queries {
	return httpDelivery.Queries{
		GetProductByBarcode: query.NewGetProductByBarcodeHandler(s),
		SearchProducts:      query.NewSearchProductsHandler(s, command.NewRecordSearchHandler(s, publisher, clock)),
		GetProduct:          query.NewGetProductHandler(s),
		ListAlternatives:    query.NewListAlternativesHandler(s),
		ListFavorites:       query.NewListFavoritesHandler(s, s),
		RecentSearches:      query.NewRecentSearchesHandler(s),
	}
}

// ProvideAuthenticator resolves the session cookie to a user
func ProvideAuthenticator(sessions *session.Manager, s domain.Store) httpDelivery.Authenticator {
	return auth.NewSessionAuthenticator(sessions, s)
}

// ProvideSessions exposes the manager to the HTTP layer
func ProvideSessions(sessions *session.Manager) httpDelivery.SessionManager {
	return sessions
}

// ProvideRateLimiter returns nil when rate limiting is disabled
func ProvideRateLimiter(cfg *config.Config, client *redis.Client) *httpDelivery.RateLimiter {
	if !cfg.RateLimit.Enabled || client == nil {
		return nil
	}
	return httpDelivery.NewRateLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window)
}

// ProvideRegistry creates the Prometheus registry served on /metrics
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics registers the HTTP metrics
func ProvideMetrics(reg *prometheus.Registry) *httpDelivery.Metrics {
	return httpDelivery.NewMetrics(reg)
}

// ProvideHealthChecker registers the store and, when used, Redis
func ProvideHealthChecker(cfg *config.Config, s domain.Store, client *redis.Client) *health.Checker {
	checker := health.NewChecker(cfg.ServiceName, 3*time.Second)
	checker.Register("store", s)
	if client != nil {
		checker.Register("redis", health.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))
	}
	return checker
}
