// Package metrics defines the sinks recording vehicle range observations.
// Sinks like the Prometheus and InfluxDB ones in infra/metrics record range
// snapshots, refuels and drive time estimates and can be combined with
// NewMultiSink. NewMetricsSink returns a MultiSink automatically when
// multiple sinks are configured.
package metrics
