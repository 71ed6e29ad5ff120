package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/core/model"
	"github.com/kilianp07/opendhw/infra/logger"
)

// InfluxConfig configures the InfluxDB sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

const defaultBatchSize = 5000

// InfluxSink writes run summaries and demand series to InfluxDB.
type InfluxSink struct {
	client    influxdb2.Client
	writeAPI  api.WriteAPIBlocking
	log       logger.Logger
	batchSize int
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	return &InfluxSink{
		client:    client,
		writeAPI:  client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:       logger.New("influx-sink"),
		batchSize: defaultBatchSize,
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.RunRecorder {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes one dhw_run point.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, runPoint(ev))
}

func runPoint(ev coremetrics.RunEvent) *write.Point {
	outcome := "ok"
	if ev.Failed() {
		outcome = "error"
	}
	p := write.NewPointWithMeasurement("dhw_run").
		AddTag("run_id", ev.RunID).
		AddTag("method", string(ev.Method)).
		AddTag("strategy", string(ev.Strategy)).
		AddTag("outcome", outcome).
		AddField("step_seconds", ev.StepSeconds).
		AddField("events", ev.Events).
		AddField("drawoffs", ev.Drawoffs).
		AddField("volume_l", round3(ev.VolumeL)).
		AddField("peak_flow_lph", round3(ev.PeakFlowLPH)).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000))
	if ev.Failed() {
		p = p.AddField("error", ev.Err)
	}
	return p.SetTime(ev.Time)
}

// WriteSeries stores every non-zero step as a dhw_flow point, in batches.
func (s *InfluxSink) WriteSeries(ctx context.Context, runID string, start time.Time, stepSeconds int, series model.DemandSeries) error {
	step := time.Duration(stepSeconds) * time.Second
	batch := make([]*write.Point, 0, s.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.writeAPI.WritePoint(ctx, batch...); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}
	for t, flow := range series {
		if flow == 0 {
			continue
		}
		batch = append(batch, write.NewPointWithMeasurement("dhw_flow").
			AddTag("run_id", runID).
			AddField("flow_lph", round3(flow)).
			SetTime(start.Add(time.Duration(t)*step)))
		if len(batch) == s.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	s.log.Debugw("series written", map[string]any{"run_id": runID, "drawoffs": series.NonZero()})
	return nil
}

// Close releases the client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
