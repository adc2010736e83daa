// Package prometheus provides a Prometheus exporter for authapi metrics.
//
// [NewPrometheusExporter] accepts an [authapi.Engine] and exposes an [http.Handler]
// that renders all authapi counters in Prometheus text exposition format.
// Counter names are prefixed authapi_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
