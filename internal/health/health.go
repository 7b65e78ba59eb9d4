package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

// Status values reported for components and the service as a whole
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Pinger is any dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// ComponentHealth represents the health status of one dependency
type ComponentHealth struct {
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	LatencyMS float64 `json:"latency_ms"`
	Error     string  `json:"error,omitempty"`
}

// Report is the body served on /health
type Report struct {
	Service    string                     `json:"service"`
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
	Uptime     float64                    `json:"uptime_seconds"`
}

type component struct {
	name   string
	pinger Pinger
}

// Checker pings the registered dependencies
type Checker struct {
	service    string
	timeout    time.Duration
	components []component
	startTime  time.Time
	now        func() time.Time
}

// NewChecker creates a new health checker
func NewChecker(service string, timeout time.Duration) *Checker {
	return &Checker{
		service:   service,
		timeout:   timeout,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// Register adds a dependency to every check
func (c *Checker) Register(name string, p Pinger) {
	c.components = append(c.components, component{name: name, pinger: p})
}

// Check pings all components concurrently
func (c *Checker) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	results := make(map[string]ComponentHealth, len(c.components))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, comp := range c.components {
		wg.Add(1)
		go func(comp component) {
			defer wg.Done()
			result := c.checkComponent(ctx, comp)

			mu.Lock()
			results[comp.name] = result
			mu.Unlock()
		}(comp)
	}
	wg.Wait()

	return Report{
		Service:    c.service,
		Status:     overallStatus(results),
		Components: results,
		Uptime:     c.now().Sub(c.startTime).Seconds(),
	}
}

func (c *Checker) checkComponent(ctx context.Context, comp component) ComponentHealth {
	start := c.now()
	err := comp.pinger.Ping(ctx)
	result := ComponentHealth{
		Name:      comp.name,
		Status:    StatusHealthy,
		LatencyMS: float64(c.now().Sub(start).Microseconds()) / 1000,
	}
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
		logger.Warn(ctx).
			Err(err).
			Str("component", comp.name).
			Msg("Health check failed")
	}
	return result
}

// overallStatus is healthy when every component is, unhealthy when none is
func overallStatus(results map[string]ComponentHealth) string {
	healthy := 0
	for _, r := range results {
		if r.Status == StatusHealthy {
			healthy++
		}
	}

	switch {
	case healthy == len(results):
		return StatusHealthy
	case healthy > 0:
		return StatusDegraded
	default:
		return StatusUnhealthy
	}
}

// ServeHTTP answers 200 when healthy and 503 otherwise
//
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} Report
// @Failure 503 {object} Report
// @Router /health [get]
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := c.Check(r.Context())

	status := http.StatusOK
	if report.Status != StatusHealthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(report)
}

// Watch keeps the gRPC health server in sync with Check until ctx is done.
// The empty service name carries the overall status.
func (c *Checker) Watch(ctx context.Context, server *grpchealth.Server, interval time.Duration) {
	c.sync(ctx, server)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			server.Shutdown()
			return
		case <-ticker.C:
			c.sync(ctx, server)
		}
	}
}

func (c *Checker) sync(ctx context.Context, server *grpchealth.Server) {
	report := c.Check(ctx)

	status := healthpb.HealthCheckResponse_SERVING
	if report.Status != StatusHealthy {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	server.SetServingStatus("", status)
	server.SetServingStatus(c.service, status)
}
