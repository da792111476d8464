package observe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// BenchmarkLogger_Info measures logging throughput.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "component health set", F("component", "mailer"), F("healthy", i%2 == 0))
	}
}

// BenchmarkMetrics_RecordRequest measures request recording overhead.
func BenchmarkMetrics_RecordRequest(b *testing.B) {
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	m, err := NewMetrics(mp.Meter("bench"))
	if err != nil {
		b.Fatal(err)
	}
	meta := RequestMeta{Route: "health", Method: http.MethodGet}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordRequest(ctx, meta, http.StatusOK, time.Millisecond)
	}
}

// BenchmarkMiddleware_Noop measures the wrapper cost with no-op telemetry.
func BenchmarkMiddleware_Noop(b *testing.B) {
	h := NoopMiddleware().Wrap("health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
