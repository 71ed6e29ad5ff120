package metrics

import (
	"fmt"

	"github.com/kilianp07/opendhw/core/factory"
	coremetrics "github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/infra/history"
	"github.com/kilianp07/opendhw/infra/monitoring"
	"github.com/kilianp07/opendhw/infra/mqtt"
)

var sinks = factory.NewRegistry[coremetrics.RunRecorder]()

// RegisterSink makes a sink type available to NewRecorder.
func RegisterSink(name string, f factory.Factory[coremetrics.RunRecorder]) error {
	return sinks.Register(name, f)
}

// SinkTypes lists the registered sink types.
func SinkTypes() []string { return sinks.Names() }

// init registers built-in metrics sinks.
func init() {
	_ = RegisterSink("nop", func(map[string]any) (coremetrics.RunRecorder, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = RegisterSink("prometheus", func(conf map[string]any) (coremetrics.RunRecorder, error) {
		var c PromConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPromSink(c)
	})

	_ = RegisterSink("influx", func(conf map[string]any) (coremetrics.RunRecorder, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})

	_ = RegisterSink("sqlite", func(conf map[string]any) (coremetrics.RunRecorder, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, fmt.Errorf("sqlite sink requires path")
		}
		return history.NewSQLiteStore(c.Path)
	})

	_ = RegisterSink("sentry", func(conf map[string]any) (coremetrics.RunRecorder, error) {
		var c monitoring.SentryConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return monitoring.NewSentrySink(c)
	})

	_ = RegisterSink("mqtt", func(conf map[string]any) (coremetrics.RunRecorder, error) {
		var c mqtt.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return mqtt.NewRunPublisher(c)
	})
}

// NewRecorder builds every sink enabled in cfg. With nothing enabled the
// returned MultiSink is empty and records nothing.
func NewRecorder(cfg coremetrics.Config) (*MultiSink, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := NewMultiSink()
	for _, mod := range cfg.Modules() {
		s, err := sinks.Create(mod)
		if err != nil {
			_ = m.Close()
			return nil, err
		}
		m.Sinks = append(m.Sinks, s)
	}
	return m, nil
}
