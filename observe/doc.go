// Package observe provides observability primitives for the mock server.
//
// It covers structured JSON logging, OpenTelemetry metrics and tracing, and an
// HTTP middleware that records one span and one set of measurements per mock
// request. The middleware never writes access log lines.
package observe
