package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/opendhw/core/model"
)

func TestScalesIdentity(t *testing.T) {
	for _, f := range []float64{1e-6, 0.1, 0.5, 1, 1.2, 2, 3.7, 10, 1e6} {
		wd, we := Scales(f)
		assert.InDelta(t, 1.0, wd*5/7+we*2/7, 1e-9, "factor %v", f)
	}
}

func TestBalanceShiftsTowardWeekend(t *testing.T) {
	wd, err := BuildDay(model.Weekday, 600)
	require.NoError(t, err)
	we, err := BuildDay(model.Weekend, 600)
	require.NoError(t, err)

	week, err := Balance(wd, we, 1.2)
	require.NoError(t, err)
	assert.Greater(t, week.WeekendScale, 1.0)
	assert.Less(t, week.WeekdayScale, 1.0)
	assert.Len(t, week.Weekday, len(wd))
	assert.Len(t, week.Weekend, len(we))

	want := stat.Mean(week.Weekday, nil)*5/7 + stat.Mean(week.Weekend, nil)*2/7
	assert.InDelta(t, want, week.WeightedMean, 1e-12)

	// inputs stay untouched
	assert.Equal(t, 0.01, wd[0])
	assert.Equal(t, 0.02, we[0])
}

func TestBalanceNeutralFactor(t *testing.T) {
	wd := []float64{0.2, 0.4}
	we := []float64{0.1, 0.3}
	week, err := Balance(wd, we, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, week.WeekdayScale, 1e-12)
	assert.InDelta(t, 1.0, week.WeekendScale, 1e-12)
	assert.InDeltaSlice(t, wd, week.Weekday, 1e-12)
	assert.InDeltaSlice(t, we, week.Weekend, 1e-12)
}

func TestBalanceRejectsBadInput(t *testing.T) {
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Balance([]float64{1}, []float64{1}, f)
		assert.ErrorIs(t, err, model.ErrConfiguration, "factor %v", f)
	}
	_, err := Balance([]float64{1, 2}, []float64{1}, 1.2)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}
