// Package health holds the synthetic component health state served by the
// mock server, and the checker primitives used to report on it.
//
// # Core Concepts
//
// A Table maps component names to a boolean health flag. Names that were
// never set are reported healthy. The table is an ordinary value owned by
// whoever creates it; independent servers get independent tables.
//
// A Checker is any component that can report its health status. Every table
// entry is exposed as a Checker, so the table can be fed to an Aggregator.
//
// # Basic Usage
//
//	table := health.NewTable("mailer", "homepage", "sitemap")
//
//	table.Set("mailer", false)
//	if !table.Healthy("mailer") {
//	    log.Printf("mailer is down")
//	}
//
//	// Unknown names default to healthy
//	table.Healthy("billing") // true
//
// # Aggregating Health Checks
//
// Use Aggregator to combine table entries and any other checker into a
// single composite check:
//
//	agg := health.NewAggregator()
//	agg.AddSource(table)
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// # HTTP Endpoints
//
// The package provides HTTP handlers for the admin listener:
//
//	http.Handle("/healthz", health.LivenessHandler())
//	http.Handle("/readyz", health.ReadinessHandler(agg))
//	http.Handle("/components", health.DetailedHandler(agg))
package health
