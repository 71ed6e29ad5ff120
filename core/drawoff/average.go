package drawoff

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/opendhw/core/model"
)

// ProfileMode selects how the average daily profile is drawn.
type ProfileMode string

const (
	// ProfileGauss draws a Normal value per step and rejects negative values.
	ProfileGauss ProfileMode = "gauss"
	// ProfileGaussAbs takes absolute Normal draws and rescales them to the raw
	// mean so the daily volume is preserved.
	ProfileGaussAbs ProfileMode = "gauss_abs"
	// ProfileLogNormal draws from a log-normal matched to the step mean.
	ProfileLogNormal ProfileMode = "lognormal"
)

// AverageParams configures AverageProfile.
type AverageParams struct {
	Mode           ProfileMode
	DailyVolume    float64 // L per day
	DailySigma     float64 // L per day
	AvgProbability float64 // weighted weekly mean probability per step
	StepSeconds    int
}

// AverageProfile returns one mean flow rate (L/h) per step of the day. The
// daily volume is divided by the average step probability since the thinning
// allocator only keeps that share of steps.
func AverageProfile(p AverageParams, src rand.Source) ([]float64, error) {
	perDay, err := model.StepsPerDay(p.StepSeconds)
	if err != nil {
		return nil, err
	}
	if p.AvgProbability <= 0 || p.DailyVolume <= 0 || p.DailySigma < 0 {
		return nil, fmt.Errorf("%w: average profile volume %v sigma %v probability %v",
			model.ErrConfiguration, p.DailyVolume, p.DailySigma, p.AvgProbability)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", model.ErrConfiguration)
	}
	mean := p.DailyVolume / p.AvgProbability / 24
	sigma := p.DailySigma / p.AvgProbability / 24

	out := make([]float64, perDay)
	switch p.Mode {
	case ProfileGauss:
		dist := distuv.Normal{Mu: mean, Sigma: sigma, Src: src}
		for i := range out {
			out[i] = dist.Rand()
		}
		if lo := floats.Min(out); lo < 0 {
			return nil, fmt.Errorf("%w: average profile has negative flow %v, lower sigma or use %s",
				model.ErrDistributionInfeasible, lo, ProfileGaussAbs)
		}
	case ProfileGaussAbs:
		dist := distuv.Normal{Mu: mean, Sigma: sigma, Src: src}
		for i := range out {
			out[i] = dist.Rand()
		}
		raw := stat.Mean(out, nil)
		if raw <= 0 {
			return nil, fmt.Errorf("%w: average profile mean %v is not positive", model.ErrDistributionInfeasible, raw)
		}
		for i, v := range out {
			out[i] = math.Abs(v)
		}
		if abs := stat.Mean(out, nil); abs != raw && abs > 0 {
			floats.Scale(raw/abs, out)
		}
	case ProfileLogNormal:
		s := sigma / 40
		v := s * s
		dist := distuv.LogNormal{
			Mu:    math.Log(mean * mean / math.Sqrt(v+mean*mean)),
			Sigma: math.Sqrt(math.Log(1 + v/(mean*mean))),
			Src:   src,
		}
		for i := range out {
			out[i] = dist.Rand()
		}
	default:
		return nil, fmt.Errorf("%w: unknown average profile mode %q", model.ErrConfiguration, p.Mode)
	}
	return out, nil
}
