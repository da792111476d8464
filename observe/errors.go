package observe

import "errors"

// Configuration errors.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrInvalidSamplePct indicates Tracing.SamplePct is not in [0.0, 1.0].
	ErrInvalidSamplePct = errors.New("observe: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidTracingExporter indicates an unknown tracing exporter name.
	ErrInvalidTracingExporter = errors.New("observe: unknown tracing exporter")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("observe: unknown metrics exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: unknown log level")
)

// Runtime errors.
var (
	// ErrNilObserver indicates a nil Observer was provided.
	ErrNilObserver = errors.New("observe: observer is nil")

	// ErrMissingRoute indicates RequestMeta.Route is empty.
	ErrMissingRoute = errors.New("observe: route is required")
)

// ValidTracingExporters lists valid tracing exporter names. An empty name is
// also accepted and means "none".
var ValidTracingExporters = []string{"otlp", "jaeger", "stdout", "none"}

// ValidMetricsExporters lists valid metrics exporter names. An empty name is
// also accepted and means "none".
var ValidMetricsExporters = []string{"otlp", "prometheus", "stdout", "none"}

// ValidLogLevels lists valid log level names. An empty level is also
// accepted and means "info".
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// RedactedFields lists field keys that are automatically redacted in logs.
var RedactedFields = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"credential",
	"authorization",
}
