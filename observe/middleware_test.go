package observe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newInstrumentedMiddleware(t *testing.T) (*HTTPMiddleware, *sdkmetric.ManualReader, func() int) {
	t.Helper()

	tracer, recorder := newRecordingTracer()
	metrics, reader := newTestMetrics(t)
	return NewHTTPMiddleware(tracer, metrics), reader, func() int { return len(recorder.Ended()) }
}

// TestMiddleware_PassesResponseThrough verifies status, headers and body are untouched.
func TestMiddleware_PassesResponseThrough(t *testing.T) {
	mw, _, _ := newInstrumentedMiddleware(t)

	h := mw.Wrap("health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"fail"}`))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != `{"status":"fail"}` {
		t.Errorf("body = %q", body)
	}
}

// TestMiddleware_RecordsSpanAndRequest verifies one span and one counted request per call.
func TestMiddleware_RecordsSpanAndRequest(t *testing.T) {
	mw, reader, ended := newInstrumentedMiddleware(t)

	h := mw.Wrap("toggle", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/toggle", nil))

	if ended() != 1 {
		t.Errorf("ended spans = %d, want 1", ended())
	}

	found := findMetric(collect(t, reader), MetricRequests)
	if found == nil {
		t.Fatalf("%s metric not found", MetricRequests)
	}
	dp := found.Data.(metricdata.Sum[int64]).DataPoints[0]
	code, _ := dp.Attributes.Value(AttrStatusCode)
	if dp.Value != 1 || code.AsInt64() != http.StatusBadRequest {
		t.Errorf("value=%d code=%d, want 1/400", dp.Value, code.AsInt64())
	}
}

// TestMiddleware_ImplicitOK verifies a handler that never calls WriteHeader is recorded as 200.
func TestMiddleware_ImplicitOK(t *testing.T) {
	mw, reader, _ := newInstrumentedMiddleware(t)

	h := mw.Wrap("html", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/checks/html", nil))

	dp := findMetric(collect(t, reader), MetricRequests).Data.(metricdata.Sum[int64]).DataPoints[0]
	code, _ := dp.Attributes.Value(AttrStatusCode)
	if code.AsInt64() != http.StatusOK {
		t.Errorf("code = %d, want 200", code.AsInt64())
	}
}

// TestMiddleware_PanicEndsSpan verifies a panicking handler still ends its
// span and is counted as a 500 before the panic propagates.
func TestMiddleware_PanicEndsSpan(t *testing.T) {
	mw, reader, ended := newInstrumentedMiddleware(t)

	h := mw.Wrap("toggle", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/toggle", nil))
	}()

	if ended() != 1 {
		t.Errorf("ended spans = %d, want 1", ended())
	}
	found := findMetric(collect(t, reader), MetricRequests)
	if found == nil {
		t.Fatalf("%s metric not found", MetricRequests)
	}
	dp := found.Data.(metricdata.Sum[int64]).DataPoints[0]
	code, _ := dp.Attributes.Value(AttrStatusCode)
	if dp.Value != 1 || code.AsInt64() != http.StatusInternalServerError {
		t.Errorf("value=%d code=%d, want 1/500", dp.Value, code.AsInt64())
	}
}

// TestMiddleware_ContextCarriesSpan verifies the wrapped handler can annotate the span.
func TestMiddleware_ContextCarriesSpan(t *testing.T) {
	tracer, recorder := newRecordingTracer()
	mw := NewHTTPMiddleware(tracer, nil)

	h := mw.Wrap("health_component", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetComponent(r.Context(), "mailer")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/mailer", nil))

	if v, ok := spanAttr(recorder.Ended()[0], AttrComponent); !ok || v.AsString() != "mailer" {
		t.Errorf("%s = %v", AttrComponent, v)
	}
}

// TestMiddleware_WritesNoLogs verifies instrumentation never logs.
func TestMiddleware_WritesNoLogs(t *testing.T) {
	var buf bytes.Buffer
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "svc",
		Logging:     LoggingConfig{Enabled: true, Level: "debug", Writer: &buf},
	})
	if err != nil {
		t.Fatalf("NewObserver() = %v", err)
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() = %v", err)
	}

	h := mw.Wrap("health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if buf.Len() != 0 {
		t.Errorf("expected no log output, got: %s", buf.String())
	}
}

// TestMiddlewareFromObserver_Nil verifies a nil observer is rejected.
func TestMiddlewareFromObserver_Nil(t *testing.T) {
	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("MiddlewareFromObserver(nil) = %v, want ErrNilObserver", err)
	}
}

// TestNoopMiddleware verifies the no-op middleware still serves.
func TestNoopMiddleware(t *testing.T) {
	mw := NoopMiddleware()
	if mw.Metrics() == nil {
		t.Fatal("expected non-nil metrics")
	}

	rec := httptest.NewRecorder()
	mw.Wrap("health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}
