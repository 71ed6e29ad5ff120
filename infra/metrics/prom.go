package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/infra/logger"
)

// PromConfig configures the Prometheus sink.
type PromConfig struct {
	// PushgatewayURL enables pushing after every run. Synthesis runs are
	// batch jobs, so there is usually nothing left to scrape.
	PushgatewayURL string `json:"pushgateway_url"`
	Job            string `json:"job"`
}

// PromSink records run summaries in Prometheus collectors.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	volume   *prometheus.GaugeVec
	drawoffs *prometheus.GaugeVec
	peak     *prometheus.GaugeVec
	pusher   *push.Pusher
	log      logger.Logger
}

// NewPromSink registers the run metrics on the default registerer.
func NewPromSink(cfg PromConfig) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers the run metrics on reg. A nil registerer
// defaults to the global one. Pushes gather from reg when it is also a
// Gatherer.
func NewPromSinkWithRegistry(cfg PromConfig, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"method", "strategy"}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dhw_runs_total",
		Help: "Total number of synthesis runs",
	}, []string{"method", "strategy", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dhw_run_duration_seconds",
		Help:    "Wall time of a synthesis run",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, labels)
	volume := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dhw_run_volume_liters",
		Help: "Yearly volume of the last synthesized series",
	}, labels)
	drawoffs := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dhw_run_drawoffs",
		Help: "Timesteps carrying a draw-off in the last synthesized series",
	}, labels)
	peak := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dhw_run_peak_flow_lph",
		Help: "Peak flow rate of the last synthesized series",
	}, labels)

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if volume, err = register(reg, volume); err != nil {
		return nil, err
	}
	if drawoffs, err = register(reg, drawoffs); err != nil {
		return nil, err
	}
	if peak, err = register(reg, peak); err != nil {
		return nil, err
	}

	s := &PromSink{
		runs:     runs,
		duration: duration,
		volume:   volume,
		drawoffs: drawoffs,
		peak:     peak,
		log:      logger.New("prom-sink"),
	}
	if cfg.PushgatewayURL != "" {
		gatherer, ok := reg.(prometheus.Gatherer)
		if !ok {
			gatherer = prometheus.DefaultGatherer
		}
		job := cfg.Job
		if job == "" {
			job = "opendhw"
		}
		s.pusher = push.New(cfg.PushgatewayURL, job).
			Gatherer(gatherer).
			Client(&http.Client{Timeout: 5 * time.Second})
	}
	return s, nil
}

// register re-uses an identical collector that is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the collectors and pushes them when a Pushgateway is
// configured.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	method, strategy := string(ev.Method), string(ev.Strategy)
	outcome := "ok"
	if ev.Failed() {
		outcome = "error"
	}
	s.runs.WithLabelValues(method, strategy, outcome).Inc()
	s.duration.WithLabelValues(method, strategy).Observe(ev.Duration.Seconds())
	if !ev.Failed() {
		s.volume.WithLabelValues(method, strategy).Set(ev.VolumeL)
		s.drawoffs.WithLabelValues(method, strategy).Set(float64(ev.Drawoffs))
		s.peak.WithLabelValues(method, strategy).Set(ev.PeakFlowLPH)
	}
	if s.pusher == nil {
		return nil
	}
	if err := s.pusher.Push(); err != nil {
		s.log.Errorf("pushgateway: %v", err)
		return err
	}
	return nil
}
