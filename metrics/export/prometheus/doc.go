// Package prometheus renders newsdeck engine counters in Prometheus text
// exposition format.
//
// [NewPrometheusExporter] accepts a [newsdeck.Engine] and exposes an
// [http.Handler] that writes every counter, prefixed newsdeck_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
