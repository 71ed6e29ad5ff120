package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/opendhw/pkg/export"
)

// OutputConfig controls where and how a generated series is written.
type OutputConfig struct {
	// Path of the output file, "-" or empty for stdout.
	Path   string `json:"path"`
	Format string `json:"format"`
	// TempDeltaK is the lift between cold and hot water used for heat flows.
	TempDeltaK float64 `json:"temp_delta_k"`
	// Start is the date of the first timestep, YYYY-MM-DD.
	Start string `json:"start"`
	// Chart renders an HTML line chart of the series to this path.
	Chart string `json:"chart"`
	// ChartFrom is the first charted day, YYYY-MM-DD, Start when empty.
	ChartFrom string `json:"chart_from"`
	ChartDays int    `json:"chart_days"`
}

// SetDefaults applies fallback values.
func (c *OutputConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = string(export.FormatCSV)
	}
	if c.TempDeltaK == 0 {
		c.TempDeltaK = 35
	}
	if c.Start == "" {
		c.Start = "2019-01-01"
	}
	if c.ChartDays == 0 {
		c.ChartDays = 7
	}
}

// Validate checks the format and the start date.
func (c OutputConfig) Validate() error {
	if _, err := export.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.TempDeltaK <= 0 {
		return fmt.Errorf("temp_delta_k must be > 0")
	}
	if _, err := c.StartTime(); err != nil {
		return err
	}
	if c.ChartDays < 0 {
		return fmt.Errorf("chart_days must be > 0")
	}
	if _, err := c.ChartWindow(); err != nil {
		return err
	}
	return nil
}

// ChartWindow returns the first charted instant.
func (c OutputConfig) ChartWindow() (time.Time, error) {
	if c.ChartFrom == "" {
		return c.StartTime()
	}
	t, err := time.Parse(time.DateOnly, c.ChartFrom)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid chart_from date %q: %w", c.ChartFrom, err)
	}
	return t, nil
}

// StartTime parses Start in UTC.
func (c OutputConfig) StartTime() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, c.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", c.Start, err)
	}
	return t, nil
}
