package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/ecoscan/ecoscan-api/docs"
	"github.com/ecoscan/ecoscan-api/internal/config"
	httpDelivery "github.com/ecoscan/ecoscan-api/internal/delivery/http"
	"github.com/ecoscan/ecoscan-api/internal/health"
)

// App is the assembled HTTP surface plus the health checker shared with gRPC
type App struct {
	Handler http.Handler
	Health  *health.Checker
}

// NewRouter mounts the API, /metrics, /health and /swagger/ behind the middleware chain
func NewRouter(
	cfg *config.Config,
	handler *httpDelivery.Handler,
	checker *health.Checker,
	reg *prometheus.Registry,
) *App {
	router := mux.NewRouter()

	mwConfig := httpDelivery.DefaultMiddlewareConfig(cfg.CORS.AllowedOrigins)
	mwConfig.TimeoutDuration = cfg.HTTP.RequestTimeout
	httpDelivery.RegisterMiddlewares(router, mwConfig)

	handler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})).Methods("GET")
	router.Handle("/health", checker).Methods("GET")
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// CORS wraps the router so preflight requests never hit route matching
	return &App{
		Handler: httpDelivery.SetupCORS(mwConfig)(router),
		Health:  checker,
	}
}
