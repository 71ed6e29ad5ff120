package allocate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/opendhw/core/model"
	"github.com/kilianp07/opendhw/core/normalize"
)

// Tile repeats a daily profile for every day of the year.
func Tile(day []float64) []float64 {
	out := make([]float64, 0, len(day)*model.DaysPerYear)
	for d := 0; d < model.DaysPerYear; d++ {
		out = append(out, day...)
	}
	return out
}

// Thin accepts step t with probability threshold[t]. An accepted step draws
// its flow from Normal(profile[t], sigma) and keeps the absolute value.
func Thin(profile []float64, threshold normalize.ThresholdCurve, sigma float64, src rand.Source) (model.DemandSeries, error) {
	if len(profile) != len(threshold) {
		return nil, fmt.Errorf("%w: profile has %d steps, threshold %d", model.ErrConfiguration, len(profile), len(threshold))
	}
	if sigma < 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("%w: thinning sigma %v", model.ErrConfiguration, sigma)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", model.ErrConfiguration)
	}
	rng := rand.New(src)
	series := make(model.DemandSeries, len(profile))
	for t, p := range threshold {
		if rng.Float64() >= p {
			continue
		}
		flow := distuv.Normal{Mu: profile[t], Sigma: sigma, Src: src}
		series[t] = math.Abs(flow.Rand())
	}
	return series, nil
}
