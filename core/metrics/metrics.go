package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/opendhw/core/model"
)

// RunEvent summarizes one synthesis run.
type RunEvent struct {
	RunID       string
	Method      model.Method
	Strategy    model.Strategy
	StepSeconds int
	Events      int     // sampled draw-off events, zero for thinning
	Drawoffs    int     // timesteps carrying a draw-off
	VolumeL     float64 // yearly volume in liters
	PeakFlowLPH float64
	Duration    time.Duration
	Err         string
	Time        time.Time
}

// Failed reports whether the run ended with an error.
func (e RunEvent) Failed() bool { return e.Err != "" }

// RunRecorder records run summaries.
type RunRecorder interface {
	RecordRun(ev RunEvent) error
}

// SeriesWriter persists a demand series starting at start.
type SeriesWriter interface {
	WriteSeries(ctx context.Context, runID string, start time.Time, stepSeconds int, series model.DemandSeries) error
}

// NopSink implements RunRecorder and SeriesWriter with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error { return nil }

func (NopSink) WriteSeries(context.Context, string, time.Time, int, model.DemandSeries) error {
	return nil
}
