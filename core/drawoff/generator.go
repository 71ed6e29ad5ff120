package drawoff

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/opendhw/core/model"
)

// Generator samples draw-off events.
type Generator struct {
	params Params
	src    rand.Source
	last   *GaussianResult
}

// New validates p and returns a Generator drawing from src.
func New(p Params, src rand.Source) (*Generator, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", model.ErrConfiguration)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Generator{params: p, src: src}, nil
}

// Params returns the generator configuration.
func (g *Generator) Params() Params { return g.params }

// LastGaussian returns the retry outcome of the most recent Gaussian sampling,
// or nil when the Beta method is used.
func (g *Generator) LastGaussian() *GaussianResult { return g.last }

// Flows draws one flow rate in L/h per event.
func (g *Generator) Flows() ([]float64, error) {
	n := g.params.Count()
	switch g.params.Method {
	case model.MethodBeta:
		return g.betaFlows(n), nil
	case model.MethodGaussian:
		mu := g.params.MeanFlow()
		res := SampleGaussian(mu, mu/3, n, g.params.Attempts, g.params.MaxMeanDrift, g.src)
		g.last = &res
		if res.Outcome == Exhausted {
			return nil, fmt.Errorf("%w: clamping negative draws after %d attempts shifts the mean by %.2f%% (limit %.2f%%)",
				model.ErrDistributionInfeasible, res.Attempts, res.Drift*100, g.params.MaxMeanDrift*100)
		}
		return res.Samples, nil
	default:
		return nil, fmt.Errorf("%w: unknown drawoff method %q", model.ErrConfiguration, g.params.Method)
	}
}

func (g *Generator) betaFlows(n int) []float64 {
	dist := distuv.Beta{Alpha: g.params.Alpha, Beta: g.params.Beta, Src: g.src}
	span := g.params.MaxFlow - g.params.MinFlow
	out := make([]float64, n)
	for i := range out {
		out[i] = g.params.MinFlow + dist.Rand()*span
	}
	return out
}

// Generate samples the events and gives each a placement key drawn uniformly
// from [lo, hi), the value range of the curve used for allocation.
func (g *Generator) Generate(lo, hi float64) ([]model.DrawoffEvent, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || hi < lo {
		return nil, fmt.Errorf("%w: placement domain [%v,%v]", model.ErrConfiguration, lo, hi)
	}
	flows, err := g.Flows()
	if err != nil {
		return nil, err
	}
	keys := distuv.Uniform{Min: lo, Max: hi, Src: g.src}
	events := make([]model.DrawoffEvent, len(flows))
	for i, f := range flows {
		events[i] = model.DrawoffEvent{Magnitude: f, Key: keys.Rand()}
	}
	return events, nil
}
