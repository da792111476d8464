package observe

import (
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
)

// HTTPMiddleware wraps mock handlers with tracing and metrics.
//
// Contract:
//   - Concurrency: Wrap returns a handler safe for concurrent use.
//   - Context: the wrapped handler sees a request context carrying the span.
//   - Side effects: no log lines are written; responses pass through unchanged.
//   - Panics: the span is ended and the request recorded as a 500 before the
//     panic continues up the stack.
type HTTPMiddleware struct {
	tracer  Tracer
	metrics Metrics
}

// NewHTTPMiddleware creates a new HTTPMiddleware with the given components.
func NewHTTPMiddleware(tracer Tracer, metrics Metrics) *HTTPMiddleware {
	if tracer == nil {
		tracer = NewNoopTracer()
	}
	if metrics == nil {
		metrics = NoopMetrics()
	}
	return &HTTPMiddleware{
		tracer:  tracer,
		metrics: metrics,
	}
}

// NoopMiddleware returns a middleware that records nothing.
func NoopMiddleware() *HTTPMiddleware {
	return NewHTTPMiddleware(nil, nil)
}

// Metrics returns the metrics sink used by the middleware.
func (m *HTTPMiddleware) Metrics() Metrics {
	return m.metrics
}

// Wrap instruments next under the given route name.
func (m *HTTPMiddleware) Wrap(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := RequestMeta{Route: route, Method: r.Method}

		ctx, span := m.tracer.StartSpan(r.Context(), meta)
		start := time.Now()

		// A panicking handler is recorded as the 500 a recovery handler
		// further out will answer with.
		code := http.StatusInternalServerError
		defer func() {
			m.tracer.EndSpan(span, code)
			m.metrics.RecordRequest(ctx, meta, code, time.Since(start))
		}()

		code = httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx)).Code
	})
}

// MiddlewareFromObserver creates an HTTPMiddleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*HTTPMiddleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewHTTPMiddleware(NewTracer(obs.Tracer()), metrics), nil
}
