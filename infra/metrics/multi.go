package metrics

import (
	"context"
	"errors"
	"time"

	coremetrics "github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/core/model"
)

// MultiSink fans run summaries and series out to several sinks.
type MultiSink struct {
	Sinks []coremetrics.RunRecorder
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.RunRecorder) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the event to every sink and joins their errors.
func (m *MultiSink) RecordRun(ev coremetrics.RunEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteSeries forwards the series to sinks that store series.
func (m *MultiSink) WriteSeries(ctx context.Context, runID string, start time.Time, stepSeconds int, series model.DemandSeries) error {
	for _, s := range m.Sinks {
		if w, ok := s.(coremetrics.SeriesWriter); ok {
			if err := w.WriteSeries(ctx, runID, start, stepSeconds, series); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes the sinks holding connections.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
