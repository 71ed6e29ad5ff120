package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kilianp07/opendhw/config"
	"github.com/kilianp07/opendhw/core/synthesis"
	"github.com/kilianp07/opendhw/infra/logger"
	"github.com/kilianp07/opendhw/infra/metrics"
	"github.com/kilianp07/opendhw/pkg/chart"
	"github.com/kilianp07/opendhw/pkg/export"
	"github.com/kilianp07/opendhw/pkg/stats"
)

// Service runs one synthesis, exports the series and feeds the metrics sinks.
type Service struct {
	cfg    *config.Config
	engine *synthesis.Engine
	sink   *metrics.MultiSink
	log    logger.Logger
	stdout io.Writer
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	sink, err := metrics.NewRecorder(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	engine, err := synthesis.New(cfg.Synthesis, logger.New("synthesis"), sink)
	if err != nil {
		_ = sink.Close()
		return nil, fmt.Errorf("synthesis: %w", err)
	}
	return &Service{cfg: cfg, engine: engine, sink: sink, log: logg, stdout: os.Stdout}, nil
}

// SetStdout redirects output written to "-".
func (s *Service) SetStdout(w io.Writer) { s.stdout = w }

// Engine exposes the configured synthesis engine.
func (s *Service) Engine() *synthesis.Engine { return s.engine }

// Run synthesizes a series, writes it to the configured output and, when
// enabled, stores it in the series sinks.
func (s *Service) Run(ctx context.Context) (*synthesis.Result, stats.Summary, error) {
	res, err := s.engine.Run(ctx)
	if err != nil {
		return nil, stats.Summary{}, err
	}
	out := s.cfg.Output
	sum, err := stats.Summarize(res.Series, res.Config.StepSeconds, out.TempDeltaK)
	if err != nil {
		return nil, stats.Summary{}, err
	}
	start, err := out.StartTime()
	if err != nil {
		return nil, stats.Summary{}, err
	}
	if err := s.write(export.Series{
		RunID:       res.RunID,
		Seed:        res.Seed,
		Start:       start,
		StepSeconds: res.Config.StepSeconds,
		DeltaK:      out.TempDeltaK,
		Flow:        res.Series,
	}); err != nil {
		return nil, stats.Summary{}, fmt.Errorf("export: %w", err)
	}
	if out.Chart != "" {
		if err := s.chart(res, start); err != nil {
			return nil, stats.Summary{}, fmt.Errorf("chart: %w", err)
		}
	}
	if s.cfg.Metrics.WriteSeries {
		if err := s.sink.WriteSeries(ctx, res.RunID, start, res.Config.StepSeconds, res.Series); err != nil {
			s.log.Errorf("write series %s: %v", res.RunID, err)
		}
	}
	s.log.Infof("yearly water %.1f L (%.1f L/day, peak %.1f L/h, %d drawoffs), heat %.1f kWh (peak %.1f kW)",
		sum.VolumeL, sum.DailyAverageL, sum.PeakFlowLPH, sum.Drawoffs, sum.HeatKWh, sum.PeakHeatKW)
	return res, sum, nil
}

func (s *Service) chart(res *synthesis.Result, start time.Time) error {
	out := s.cfg.Output
	from, err := out.ChartWindow()
	if err != nil {
		return err
	}
	w := chart.Window{Start: start, StepSeconds: res.Config.StepSeconds, From: from, Days: out.ChartDays}
	title := fmt.Sprintf("Water time-series, %s/%s", res.Config.Method, res.Config.Strategy)
	return chart.RenderFile(out.Chart, title, w, chart.Line{Name: fmt.Sprintf("seed %d", res.Seed), Flow: res.Series})
}

func (s *Service) write(series export.Series) error {
	format, err := export.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		return err
	}
	path := s.cfg.Output.Path
	if path == "" || path == "-" {
		return export.Write(s.stdout, format, series)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(f, format, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close releases resources held by the metrics sinks.
func (s *Service) Close() error { return s.sink.Close() }
