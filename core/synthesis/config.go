package synthesis

import (
	"fmt"

	"github.com/kilianp07/opendhw/core/drawoff"
	"github.com/kilianp07/opendhw/core/model"
)

// AverageProfileConfig configures the thinning strategy.
type AverageProfileConfig struct {
	Mode             string  `json:"mode"`
	DailyVolumeL     float64 `json:"daily_volume_l"`
	DailySigmaL      float64 `json:"daily_sigma_l"`
	ThinningSigmaLPH float64 `json:"thinning_sigma_lph"`
}

// Config holds the statistical parameters of a synthesis run.
type Config struct {
	StepSeconds          int     `json:"step_seconds"`
	AnnualVolumeL        float64 `json:"annual_volume_l"`
	MeanDrawoffVolumeL   float64 `json:"mean_drawoff_volume_l"`
	WeekendWeekdayFactor float64 `json:"weekend_weekday_factor"`
	// InitialDay is the weekday of January 1st, 0 for Monday.
	InitialDay int    `json:"initial_day"`
	Method     string `json:"method"`
	Strategy   string `json:"strategy"`
	// Seed makes runs reproducible. Zero picks a random seed.
	Seed int64 `json:"seed"`

	MinFlowLPH       float64 `json:"min_flow_lph"`
	MaxFlowLPH       float64 `json:"max_flow_lph"`
	BetaAlpha        float64 `json:"beta_alpha"`
	BetaBeta         float64 `json:"beta_beta"`
	GaussianAttempts int     `json:"gaussian_attempts"`
	MaxMeanDrift     float64 `json:"max_mean_drift"`

	AverageProfile AverageProfileConfig `json:"average_profile"`
}

// DefaultConfig returns a 200 L/day household at one minute resolution.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults applies fallback values for optional fields.
func (c *Config) SetDefaults() {
	d := drawoff.DefaultParams()
	if c.StepSeconds == 0 {
		c.StepSeconds = d.StepSeconds
	}
	if c.AnnualVolumeL == 0 {
		c.AnnualVolumeL = d.AnnualVolume
	}
	if c.MeanDrawoffVolumeL == 0 {
		c.MeanDrawoffVolumeL = d.MeanVolume
	}
	if c.WeekendWeekdayFactor == 0 {
		c.WeekendWeekdayFactor = 1.2
	}
	if c.Method == "" {
		c.Method = string(d.Method)
	}
	if c.Strategy == "" {
		c.Strategy = string(model.StrategyDrawoffs)
	}
	if c.MinFlowLPH == 0 {
		c.MinFlowLPH = d.MinFlow
	}
	if c.MaxFlowLPH == 0 {
		c.MaxFlowLPH = d.MaxFlow
	}
	if c.BetaAlpha == 0 {
		c.BetaAlpha = d.Alpha
	}
	if c.BetaBeta == 0 {
		c.BetaBeta = d.Beta
	}
	if c.GaussianAttempts == 0 {
		c.GaussianAttempts = d.Attempts
	}
	if c.MaxMeanDrift == 0 {
		c.MaxMeanDrift = d.MaxMeanDrift
	}
	if c.AverageProfile.Mode == "" {
		c.AverageProfile.Mode = string(drawoff.ProfileGaussAbs)
	}
	if c.AverageProfile.DailyVolumeL == 0 {
		c.AverageProfile.DailyVolumeL = 200
	}
	if c.AverageProfile.DailySigmaL == 0 {
		c.AverageProfile.DailySigmaL = 70
	}
	if c.AverageProfile.ThinningSigmaLPH == 0 {
		c.AverageProfile.ThinningSigmaLPH = 114.33
	}
}

// Validate checks the configuration before any sampling happens.
func (c Config) Validate() error {
	if _, err := model.StepsPerDay(c.StepSeconds); err != nil {
		return err
	}
	if c.InitialDay < 0 || c.InitialDay > 6 {
		return fmt.Errorf("%w: initial_day must be in [0,6], got %d", model.ErrConfiguration, c.InitialDay)
	}
	if c.WeekendWeekdayFactor <= 0 {
		return fmt.Errorf("%w: weekend_weekday_factor must be > 0", model.ErrConfiguration)
	}
	strategy, err := model.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}
	if strategy == model.StrategyDrawoffs {
		return c.DrawoffParams().Validate()
	}
	switch drawoff.ProfileMode(c.AverageProfile.Mode) {
	case drawoff.ProfileGauss, drawoff.ProfileGaussAbs, drawoff.ProfileLogNormal:
	default:
		return fmt.Errorf("%w: unknown average profile mode %q", model.ErrConfiguration, c.AverageProfile.Mode)
	}
	if c.AverageProfile.DailyVolumeL <= 0 || c.AverageProfile.DailySigmaL < 0 || c.AverageProfile.ThinningSigmaLPH < 0 {
		return fmt.Errorf("%w: average profile volume, sigma and thinning sigma", model.ErrConfiguration)
	}
	return nil
}

// DrawoffParams maps the configuration onto the event generator parameters.
func (c Config) DrawoffParams() drawoff.Params {
	return drawoff.Params{
		Method:       model.Method(c.Method),
		StepSeconds:  c.StepSeconds,
		AnnualVolume: c.AnnualVolumeL,
		MeanVolume:   c.MeanDrawoffVolumeL,
		MinFlow:      c.MinFlowLPH,
		MaxFlow:      c.MaxFlowLPH,
		Alpha:        c.BetaAlpha,
		Beta:         c.BetaBeta,
		Attempts:     c.GaussianAttempts,
		MaxMeanDrift: c.MaxMeanDrift,
	}
}
