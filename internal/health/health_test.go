package health

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func ok(ctx context.Context) error { return nil }

func failing(ctx context.Context) error { return errors.New("connection refused") }

func TestChecker_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		components map[string]PingFunc
		wantCode   int
		wantStatus string
	}{
		{
			name:       "all healthy",
			components: map[string]PingFunc{"store": ok, "redis": ok},
			wantCode:   http.StatusOK,
			wantStatus: StatusHealthy,
		},
		{
			name:       "one failing",
			components: map[string]PingFunc{"store": ok, "redis": failing},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: StatusDegraded,
		},
		{
			name:       "all failing",
			components: map[string]PingFunc{"store": failing},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: StatusUnhealthy,
		},
		{
			name:       "nothing registered",
			components: map[string]PingFunc{},
			wantCode:   http.StatusOK,
			wantStatus: StatusHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker("ecoscan-api", time.Second)
			for name, p := range tt.components {
				checker.Register(name, p)
			}

			rec := httptest.NewRecorder()
			checker.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var report Report
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
			assert.Equal(t, tt.wantStatus, report.Status)
			assert.Equal(t, "ecoscan-api", report.Service)
			assert.Len(t, report.Components, len(tt.components))
		})
	}
}

func TestChecker_ReportsComponentError(t *testing.T) {
	checker := NewChecker("ecoscan-api", time.Second)
	checker.Register("redis", PingFunc(failing))

	report := checker.Check(context.Background())

	require.Contains(t, report.Components, "redis")
	assert.Equal(t, StatusUnhealthy, report.Components["redis"].Status)
	assert.Equal(t, "connection refused", report.Components["redis"].Error)
}

func TestChecker_TimesOutSlowComponents(t *testing.T) {
	checker := NewChecker("ecoscan-api", 20*time.Millisecond)
	checker.Register("slow", PingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	report := checker.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, report.Status)
}

func TestGRPCHealth(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	grpcServer, healthServer := NewGRPCServer()
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	healthy := true
	checker := NewChecker("ecoscan-api", time.Second)
	checker.Register("store", PingFunc(func(ctx context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	}))
	checker.sync(context.Background(), healthServer)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	healthy = false
	checker.sync(context.Background(), healthServer)

	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "ecoscan-api"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}
