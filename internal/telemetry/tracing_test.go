package telemetry

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/portfolio/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "portfolio-contact"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestNewResource_CarriesServiceName(t *testing.T) {
	res, err := newResource(config.TelemetryConfig{ServiceName: "portfolio-contact", Environment: "test"})
	require.NoError(t, err)

	name, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "portfolio-contact", name.AsString())

	env, ok := res.Set().Value("deployment.environment")
	require.True(t, ok)
	assert.Equal(t, "test", env.AsString())
}

func TestEndpointOptions(t *testing.T) {
	for _, endpoint := range []string{"localhost:4318", "http://collector:4318", "https://otel.example.com/base/"} {
		opts, err := endpointOptions(endpoint)
		require.NoError(t, err, endpoint)
		assert.NotEmpty(t, opts, endpoint)
	}

	_, err := endpointOptions("grpc://collector:4317")
	assert.Error(t, err)
}

// A span recorded after Setup reaches a collector addressed by its full URL,
// tagged with the configured service name.
func TestSetup_ExportsToURLEndpoint(t *testing.T) {
	var (
		mu     sync.Mutex
		paths  []string
		bodies [][]byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, body)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := context.Background()
	shutdown, err := Setup(ctx, config.TelemetryConfig{
		Endpoint:    srv.URL,
		ServiceName: "portfolio-contact",
		Environment: "test",
		SampleRatio: 1,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry-test").Start(ctx, "submit")
	span.End()
	require.NoError(t, shutdown(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, paths, "collector received no export")
	assert.Equal(t, "/v1/traces", paths[0])
	assert.True(t, bytes.Contains(bytes.Join(bodies, nil), []byte("portfolio-contact")),
		"export does not carry the service name")
	assert.False(t, strings.Contains(string(bytes.Join(bodies, nil)), "unknown_service"))
}
