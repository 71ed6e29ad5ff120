// Package monitoring reports failed synthesis runs to Sentry.
package monitoring

import (
	"errors"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"

	coremetrics "github.com/kilianp07/opendhw/core/metrics"
)

// SentryConfig defines settings for Sentry error monitoring.
type SentryConfig struct {
	DSN         string `json:"dsn"`
	Environment string `json:"environment"`
	Release     string `json:"release"`
}

// SentrySink captures failed runs as Sentry exceptions. Successful runs are
// ignored.
type SentrySink struct {
	hub *sentry.Hub
}

// NewSentrySink returns a NopSink when no DSN is configured.
func NewSentrySink(cfg SentryConfig) (coremetrics.RunRecorder, error) {
	if cfg.DSN == "" {
		return coremetrics.NopSink{}, nil
	}
	return newSentrySink(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
	})
}

func newSentrySink(opts sentry.ClientOptions) (*SentrySink, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &SentrySink{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// RecordRun captures ev when it failed.
func (s *SentrySink) RecordRun(ev coremetrics.RunEvent) error {
	if !ev.Failed() {
		return nil
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("run_id", ev.RunID)
		scope.SetTag("method", string(ev.Method))
		scope.SetTag("strategy", string(ev.Strategy))
		scope.SetTag("step_seconds", strconv.Itoa(ev.StepSeconds))
		s.hub.CaptureException(errors.New(ev.Err))
	})
	return nil
}

// Close flushes buffered events.
func (s *SentrySink) Close() error {
	s.hub.Flush(2 * time.Second)
	return nil
}
