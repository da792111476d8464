// Package server implements the mock health-check HTTP server.
//
// A Server answers synthetic health probes from a [health.Table] and exposes
// a control endpoint that flips entries at runtime:
//
//	GET /health                  flag of the default component
//	GET /health/<name>           flag of <name>
//	GET /checks/html             HTML page gated by the homepage flag
//	GET /checks/sitemap.xml      XML sitemap gated by the sitemap flag
//	GET /toggle?healthy=<v>&component=<c>
//
// Which routes exist depends on the [Profile]. Every other request, including
// a known path with a non-GET method, gets a 404 with an empty body.
//
// Healthy probes answer 200 and unhealthy ones answer 500. The mock port
// never writes an access log; only toggles are logged, as state changes.
//
// An optional admin handler ([NewAdminHandler]) serves liveness, readiness,
// a per-component listing and Prometheus metrics on a separate listener.
package server
