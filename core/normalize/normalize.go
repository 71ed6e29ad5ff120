// Package normalize turns an annual probability vector into the curves the
// allocators consume.
package normalize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/opendhw/core/model"
)

// CumulativeCurve is a running sum normalized to end at one. It is the input
// of inverse-CDF placement.
type CumulativeCurve []float64

// ThresholdCurve is a curve divided by its maximum. Each value is an
// acceptance probability for Bernoulli thinning.
type ThresholdCurve []float64

// Bounds returns the smallest and largest value of the curve.
func (c CumulativeCurve) Bounds() (lo, hi float64) {
	if len(c) == 0 {
		return 0, 0
	}
	return floats.Min(c), floats.Max(c)
}

// ToCumulativeSum divides v by its sum and accumulates it.
func ToCumulativeSum(v []float64) (CumulativeCurve, error) {
	if err := check(v); err != nil {
		return nil, err
	}
	total := floats.Sum(v)
	if total == 0 {
		return nil, fmt.Errorf("%w: cumulative sum of an all-zero curve", model.ErrDivideByZero)
	}
	out := make([]float64, len(v))
	floats.ScaleTo(out, 1/total, v)
	floats.CumSum(out, out)
	return out, nil
}

// ToMaxNormalized divides v by its maximum.
func ToMaxNormalized(v []float64) (ThresholdCurve, error) {
	if err := check(v); err != nil {
		return nil, err
	}
	peak := floats.Max(v)
	if peak == 0 {
		return nil, fmt.Errorf("%w: max normalization of an all-zero curve", model.ErrDivideByZero)
	}
	out := make([]float64, len(v))
	floats.ScaleTo(out, 1/peak, v)
	return out, nil
}

func check(v []float64) error {
	if len(v) == 0 {
		return fmt.Errorf("%w: empty curve", model.ErrDivideByZero)
	}
	for i, x := range v {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: curve value %v at step %d", model.ErrConfiguration, x, i)
		}
	}
	return nil
}
