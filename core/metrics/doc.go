// Package metrics defines the observability surface of synthesis runs.
// RunRecorder sinks receive one RunEvent per run; SeriesWriter sinks can
// additionally persist the generated demand series. Implementations such as
// the Prometheus and InfluxDB sinks live in infra/metrics and can be combined
// with a MultiSink.
package metrics
