package drawoff

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/opendhw/core/model"
)

func newSrc(seed uint64) rand.Source { return rand.NewPCG(seed, seed^0x5eed) }

func TestBetaFlowsStayInBounds(t *testing.T) {
	p := DefaultParams()
	p.AnnualVolume = 1000 * p.MeanVolume
	g, err := New(p, newSrc(7))
	require.NoError(t, err)

	flows, err := g.Flows()
	require.NoError(t, err)
	require.Len(t, flows, 1000)
	for _, f := range flows {
		require.GreaterOrEqual(t, f, 1.0)
		require.LessOrEqual(t, f, 1200.0)
	}
	// Beta(5,5) is symmetric around the middle of the interval.
	assert.InDelta(t, 600.5, stat.Mean(flows, nil), 25)
	assert.Nil(t, g.LastGaussian())
}

func TestGenerateCountAndKeys(t *testing.T) {
	p := DefaultParams()
	g, err := New(p, newSrc(1))
	require.NoError(t, err)
	events, err := g.Generate(0.2, 1)
	require.NoError(t, err)

	assert.Equal(t, 9125, p.Count())
	require.Len(t, events, p.Count())
	for _, e := range events {
		require.GreaterOrEqual(t, e.Key, 0.2)
		require.Less(t, e.Key, 1.0)
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	p := DefaultParams()
	p.AnnualVolume = 400
	a, err := New(p, newSrc(42))
	require.NoError(t, err)
	b, err := New(p, newSrc(42))
	require.NoError(t, err)

	ea, err := a.Generate(0, 1)
	require.NoError(t, err)
	eb, err := b.Generate(0, 1)
	require.NoError(t, err)
	assert.Equal(t, ea, eb)

	c, err := New(p, newSrc(43))
	require.NoError(t, err)
	ec, err := c.Generate(0, 1)
	require.NoError(t, err)
	assert.NotEqual(t, ea, ec)
}

func TestGenerateRejectsInvertedDomain(t *testing.T) {
	g, err := New(DefaultParams(), newSrc(1))
	require.NoError(t, err)
	_, err = g.Generate(1, 0)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestGaussianFlows(t *testing.T) {
	p := DefaultParams()
	p.Method = model.MethodGaussian
	p.AnnualVolume = 2000 * p.MeanVolume
	g, err := New(p, newSrc(3))
	require.NoError(t, err)

	flows, err := g.Flows()
	require.NoError(t, err)
	require.Len(t, flows, 2000)
	for _, f := range flows {
		require.GreaterOrEqual(t, f, 0.0)
	}
	require.NotNil(t, g.LastGaussian())
	assert.NotEqual(t, Exhausted, g.LastGaussian().Outcome)
	assert.InDelta(t, p.MeanFlow(), stat.Mean(flows, nil), p.MeanFlow()*0.05)
}

func TestSampleGaussianOutcomes(t *testing.T) {
	// sigma far below mu: first attempt is feasible
	res := SampleGaussian(100, 1, 500, 4, 0.01, newSrc(9))
	assert.Equal(t, Feasible, res.Outcome)
	assert.Equal(t, 1, res.Attempts)

	// mu = 3 sigma with many draws: negatives are near certain, clamping
	// shifts the mean by well under one percent
	res = SampleGaussian(300, 100, 20000, 4, 0.01, newSrc(9))
	assert.Equal(t, Clamped, res.Outcome)
	assert.Equal(t, 4, res.Attempts)
	assert.LessOrEqual(t, res.Drift, 0.01)
	for _, v := range res.Samples {
		require.GreaterOrEqual(t, v, 0.0)
	}

	// mean close to zero: clamping moves it far
	res = SampleGaussian(1, 10, 1000, 4, 0.01, newSrc(9))
	assert.Equal(t, Exhausted, res.Outcome)
	assert.Greater(t, res.Drift, 0.01)
}

func TestGaussianInfeasibleError(t *testing.T) {
	p := DefaultParams()
	p.Method = model.MethodGaussian
	p.MaxMeanDrift = 0
	p.AnnualVolume = 50000 * p.MeanVolume
	g, err := New(p, newSrc(11))
	require.NoError(t, err)
	_, err = g.Flows()
	assert.ErrorIs(t, err, model.ErrDistributionInfeasible)
	assert.Equal(t, Exhausted, g.LastGaussian().Outcome)
}

func TestParamsValidate(t *testing.T) {
	tests := map[string]func(*Params){
		"method":      func(p *Params) { p.Method = "poisson" },
		"step":        func(p *Params) { p.StepSeconds = 7 },
		"mean volume": func(p *Params) { p.MeanVolume = 0 },
		"flow bounds": func(p *Params) { p.MaxFlow = p.MinFlow },
		"shape":       func(p *Params) { p.Alpha = 0 },
		"attempts": func(p *Params) {
			p.Method = model.MethodGaussian
			p.Attempts = 0
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := DefaultParams()
			mutate(&p)
			_, err := New(p, newSrc(1))
			assert.ErrorIs(t, err, model.ErrConfiguration)
		})
	}
	_, err := New(DefaultParams(), nil)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "feasible", Feasible.String())
	assert.Equal(t, "clamped", Clamped.String())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}
