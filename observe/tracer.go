package observe

import (
	"context"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Attribute keys shared by spans and metrics.
const (
	AttrRoute      = "http.route"
	AttrMethod     = "http.request.method"
	AttrStatusCode = "http.response.status_code"
	AttrComponent  = "mockhealth.component"
	AttrHealthy    = "mockhealth.healthy"
)

// RequestMeta describes a mock request for telemetry purposes.
type RequestMeta struct {
	Route  string // Route name (required), e.g. "health", "toggle"
	Method string // HTTP method (optional)
}

// SpanName returns the deterministic span name for this route.
// Format: mockhealth.<route>
func (m RequestMeta) SpanName() string {
	return "mockhealth." + m.Route
}

// Validate checks that the metadata names a route.
func (m RequestMeta) Validate() error {
	if m.Route == "" {
		return ErrMissingRoute
	}
	return nil
}

// Tracer wraps OpenTelemetry tracing with per-request span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new server span for a mock request.
	StartSpan(ctx context.Context, meta RequestMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording the response status code.
	EndSpan(span trace.Span, statusCode int)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with route metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta RequestMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrRoute, meta.Route),
	}
	if meta.Method != "" {
		attrs = append(attrs, attribute.String(AttrMethod, meta.Method))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// EndSpan ends the span. Server errors (5xx) mark the span as failed.
func (t *tracerImpl) EndSpan(span trace.Span, statusCode int) {
	span.SetAttributes(attribute.Int(AttrStatusCode, statusCode))
	if statusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, strconv.Itoa(statusCode)+" "+http.StatusText(statusCode))
	}
	span.End()
}

// SetComponent annotates the active span with the component a request touched.
func SetComponent(ctx context.Context, component string) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String(AttrComponent, component))
}

type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta RequestMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, statusCode int) {
	span.End()
}
