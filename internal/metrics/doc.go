// Package metrics implements the in-process counter system used by the
// authentication engine.
//
// # Design
//
// Counters are a fixed-size array of atomics indexed by MetricID, so Inc is
// a single atomic add with no allocation and no lock. Snapshot copies the
// array into a map for exporters.
//
// # Architecture boundaries
//
// This package owns counting only. It does NOT export metrics over the
// network or choose names for external systems — exporters under
// metrics/export translate snapshots at the edge.
package metrics
