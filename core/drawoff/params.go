package drawoff

import (
	"fmt"
	"math"

	"github.com/kilianp07/opendhw/core/model"
)

// Params configures a Generator.
type Params struct {
	Method       model.Method
	StepSeconds  int
	AnnualVolume float64 // L per year
	MeanVolume   float64 // L per draw-off
	MinFlow      float64 // L/h, beta lower bound
	MaxFlow      float64 // L/h, beta upper bound
	Alpha        float64
	Beta         float64
	Attempts     int     // gaussian retry budget
	MaxMeanDrift float64 // relative mean shift tolerated after clamping
}

// DefaultParams returns the DHWcalc-like defaults for a five person household
// drawing 200 L per day at one minute resolution.
func DefaultParams() Params {
	return Params{
		Method:       model.MethodBeta,
		StepSeconds:  60,
		AnnualVolume: 200 * model.DaysPerYear,
		MeanVolume:   8,
		MinFlow:      1,
		MaxFlow:      1200,
		Alpha:        5,
		Beta:         5,
		Attempts:     4,
		MaxMeanDrift: 0.01,
	}
}

// Count is the number of draw-off events needed to reach the annual volume.
func (p Params) Count() int {
	return int(math.Round(p.AnnualVolume / p.MeanVolume))
}

// MeanFlow is the flow rate in L/h that delivers MeanVolume within one step.
func (p Params) MeanFlow() float64 {
	return p.MeanVolume * model.SecondsPerHour / float64(p.StepSeconds)
}

// Validate checks the parameters for the selected method.
func (p Params) Validate() error {
	if _, err := model.ParseMethod(string(p.Method)); err != nil {
		return err
	}
	if _, err := model.StepsPerDay(p.StepSeconds); err != nil {
		return err
	}
	if p.MeanVolume <= 0 || p.AnnualVolume < 0 {
		return fmt.Errorf("%w: mean volume %v and annual volume %v", model.ErrConfiguration, p.MeanVolume, p.AnnualVolume)
	}
	switch p.Method {
	case model.MethodBeta:
		if p.MinFlow < 0 || p.MaxFlow <= p.MinFlow {
			return fmt.Errorf("%w: flow bounds [%v,%v]", model.ErrConfiguration, p.MinFlow, p.MaxFlow)
		}
		if p.Alpha <= 0 || p.Beta <= 0 {
			return fmt.Errorf("%w: beta shape (%v,%v)", model.ErrConfiguration, p.Alpha, p.Beta)
		}
	case model.MethodGaussian:
		if p.Attempts < 1 {
			return fmt.Errorf("%w: gaussian attempts must be >= 1", model.ErrConfiguration)
		}
		if p.MaxMeanDrift < 0 {
			return fmt.Errorf("%w: negative mean drift tolerance", model.ErrConfiguration)
		}
	}
	return nil
}
