//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/ecoscan/ecoscan-api/internal/config"
	httpDelivery "github.com/ecoscan/ecoscan-api/internal/delivery/http"
	"github.com/ecoscan/ecoscan-api/internal/usecase/command"
)

// Wire sets
var InfrastructureSet = wire.NewSet(
	ProvideStore,
	ProvideRedis,
	ProvidePublisher,
	ProvideRegistry,
)

var SessionSet = wire.NewSet(
	ProvideSessionStore,
	ProvideSessionManager,
	ProvideSessions,
	ProvideAuthenticator,
)

var HTTPSet = wire.NewSet(
	command.SystemClock,
	ProvideCommands,
	ProvideQueries,
	ProvideRateLimiter,
	ProvideMetrics,
	ProvideHealthChecker,
	httpDelivery.NewHandler,
	NewRouter,
)

// InitializeApp builds the HTTP application with all dependencies
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		InfrastructureSet,
		SessionSet,
		HTTPSet,
	)
	return nil, nil, nil
}
