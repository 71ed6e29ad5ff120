package normalize

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/opendhw/core/model"
)

func TestToCumulativeSumEndsAtOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 1; n < 2000; n += 97 {
		v := make([]float64, n)
		for i := range v {
			v[i] = rng.Float64() * 10
		}
		v[0] = 0
		v[n-1] += 1e-3
		c, err := ToCumulativeSum(v)
		require.NoError(t, err)
		require.Len(t, c, n)
		assert.InDelta(t, 1.0, c[n-1], 1e-9)
		for i := 1; i < n; i++ {
			require.GreaterOrEqual(t, c[i], c[i-1])
		}
	}
}

func TestToCumulativeSumValues(t *testing.T) {
	c, err := ToCumulativeSum([]float64{1, 1, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 1}, []float64(c), 1e-12)
	lo, hi := c.Bounds()
	assert.Equal(t, 0.25, lo)
	assert.Equal(t, 1.0, hi)
}

func TestToMaxNormalized(t *testing.T) {
	in := []float64{2, 4, 1, 0}
	c, err := ToMaxNormalized(in)
	require.NoError(t, err)
	assert.Equal(t, ThresholdCurve{0.5, 1, 0.25, 0}, c)
	assert.Equal(t, []float64{2, 4, 1, 0}, in)
}

func TestNormalizeAllZero(t *testing.T) {
	_, err := ToCumulativeSum([]float64{0, 0, 0})
	assert.ErrorIs(t, err, model.ErrDivideByZero)
	_, err = ToMaxNormalized([]float64{0, 0})
	assert.ErrorIs(t, err, model.ErrDivideByZero)
	_, err = ToCumulativeSum(nil)
	assert.ErrorIs(t, err, model.ErrDivideByZero)
}

func TestNormalizeRejectsNegative(t *testing.T) {
	_, err := ToCumulativeSum([]float64{1, -1, 1})
	assert.ErrorIs(t, err, model.ErrConfiguration)
	_, err = ToMaxNormalized([]float64{-2})
	assert.ErrorIs(t, err, model.ErrConfiguration)
}
