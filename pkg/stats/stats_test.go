package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/opendhw/core/model"
)

func TestHeatFlow(t *testing.T) {
	// 3600 L/h is 1 L/s: 0.98 kg/s * 4180 J/kgK * 35 K
	assert.InDelta(t, 143374.0, HeatFlow(3600, 35), 1e-6)
	assert.Zero(t, HeatFlow(0, 35))
}

func TestSummarize(t *testing.T) {
	// one day at hourly resolution, two hours at 100 L/h and one at 400 L/h
	series := make(model.DemandSeries, 24)
	series[7], series[8], series[19] = 100, 100, 400

	s, err := Summarize(series, 3600, 35)
	require.NoError(t, err)
	assert.Equal(t, 24, s.Steps)
	assert.InDelta(t, 600, s.VolumeL, 1e-9)
	assert.InDelta(t, 600, s.DailyAverageL, 1e-9)
	assert.Equal(t, 400.0, s.PeakFlowLPH)
	assert.Equal(t, 3, s.Drawoffs)
	assert.InDelta(t, 600*0.98*4180*35/3.6e6, s.HeatKWh, 1e-9)
	assert.InDelta(t, HeatFlow(400, 35)/1000, s.PeakHeatKW, 1e-9)
}

func TestSummarizeMinuteSteps(t *testing.T) {
	series := make(model.DemandSeries, 2*1440)
	series[10] = 480 // 8 L within one minute
	s, err := Summarize(series, 60, 35)
	require.NoError(t, err)
	assert.InDelta(t, 8, s.VolumeL, 1e-9)
	assert.InDelta(t, 4, s.DailyAverageL, 1e-9)
}

func TestSummarizeEdgeCases(t *testing.T) {
	s, err := Summarize(nil, 60, 35)
	require.NoError(t, err)
	assert.Zero(t, s.VolumeL)

	_, err = Summarize(model.DemandSeries{1}, 0, 35)
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestCompare(t *testing.T) {
	rows := Compare(Summary{VolumeL: 100, Drawoffs: 10}, Summary{VolumeL: 110, Drawoffs: 5})
	require.Len(t, rows, 6)
	assert.InDelta(t, 0.1, rows[0].RelDif, 1e-12)
	assert.InDelta(t, -0.5, rows[3].RelDif, 1e-12)
	assert.Zero(t, rows[2].RelDif)
}
