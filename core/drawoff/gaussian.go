package drawoff

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Outcome classifies how a Gaussian sample set was obtained.
type Outcome int

const (
	// Feasible means one of the attempts produced no negative draw.
	Feasible Outcome = iota
	// Clamped means the budget ran out and negatives were set to zero within
	// the mean drift tolerance.
	Clamped
	// Exhausted means clamping moved the mean beyond tolerance.
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Feasible:
		return "feasible"
	case Clamped:
		return "clamped"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// GaussianResult is the outcome of SampleGaussian.
type GaussianResult struct {
	Samples  []float64
	Outcome  Outcome
	Attempts int
	RawMean  float64 // mean before clamping
	Drift    float64 // relative mean shift caused by clamping
}

// SampleGaussian draws n values from Normal(mu, sigma), retrying up to
// attempts times for a set without negative values. When every attempt fails
// the last set is clamped at zero.
func SampleGaussian(mu, sigma float64, n, attempts int, maxDrift float64, src rand.Source) GaussianResult {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	res := GaussianResult{Samples: make([]float64, n)}
	for res.Attempts < attempts {
		res.Attempts++
		negative := false
		for i := range res.Samples {
			res.Samples[i] = dist.Rand()
			if res.Samples[i] < 0 {
				negative = true
			}
		}
		if !negative {
			res.Outcome = Feasible
			if n > 0 {
				res.RawMean = stat.Mean(res.Samples, nil)
			}
			return res
		}
	}

	res.RawMean = stat.Mean(res.Samples, nil)
	for i, v := range res.Samples {
		if v < 0 {
			res.Samples[i] = 0
		}
	}
	clamped := stat.Mean(res.Samples, nil)
	if res.RawMean <= 0 {
		res.Drift = math.Inf(1)
	} else {
		res.Drift = math.Abs(clamped-res.RawMean) / res.RawMean
	}
	res.Outcome = Clamped
	if res.Drift > maxDrift {
		res.Outcome = Exhausted
	}
	return res
}
