package metrics

import (
	"fmt"

	"github.com/kilianp07/opendhw/core/factory"
)

// Config defines settings for the metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PushgatewayURL    string `json:"pushgateway_url"`
	Job               string `json:"job"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
	// WriteSeries also stores every draw-off of the series in InfluxDB.
	WriteSeries bool `json:"write_series"`

	// HistoryPath enables the SQLite run ledger when set.
	HistoryPath string `json:"history_path"`

	SentryDSN         string `json:"sentry_dsn"`
	SentryEnvironment string `json:"sentry_environment"`

	// Sinks lists extra sinks by registered type.
	Sinks []factory.ModuleConfig `json:"sinks"`
}

// SetDefaults applies fallback values for optional fields.
func (c *Config) SetDefaults() {
	if c.Job == "" {
		c.Job = "opendhw"
	}
}

// Validate checks that enabled sinks are fully configured.
func (c Config) Validate() error {
	if c.InfluxEnabled {
		if c.InfluxURL == "" || c.InfluxOrg == "" || c.InfluxBucket == "" {
			return fmt.Errorf("influx sink requires url, org and bucket")
		}
	}
	if c.WriteSeries && !c.InfluxEnabled {
		return fmt.Errorf("write_series requires influx_enabled")
	}
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("sinks[%d]: missing type", i)
		}
	}
	return nil
}

// Modules translates the enabled sinks into registry module configs.
func (c Config) Modules() []factory.ModuleConfig {
	var mods []factory.ModuleConfig
	if c.PrometheusEnabled {
		mods = append(mods, factory.ModuleConfig{Type: "prometheus", Conf: map[string]any{
			"pushgateway_url": c.PushgatewayURL,
			"job":             c.Job,
		}})
	}
	if c.InfluxEnabled {
		mods = append(mods, factory.ModuleConfig{Type: "influx", Conf: map[string]any{
			"url":    c.InfluxURL,
			"token":  c.InfluxToken,
			"org":    c.InfluxOrg,
			"bucket": c.InfluxBucket,
		}})
	}
	if c.HistoryPath != "" {
		mods = append(mods, factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{
			"path": c.HistoryPath,
		}})
	}
	if c.SentryDSN != "" {
		mods = append(mods, factory.ModuleConfig{Type: "sentry", Conf: map[string]any{
			"dsn":         c.SentryDSN,
			"environment": c.SentryEnvironment,
		}})
	}
	return append(mods, c.Sinks...)
}
