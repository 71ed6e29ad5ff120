package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/opendhw/config"
	"github.com/kilianp07/opendhw/core/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Synthesis.StepSeconds = 600
	cfg.Synthesis.Seed = 21
	return cfg
}

func TestServiceRunWritesCSVFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Path = filepath.Join(t.TempDir(), "dhw.csv")

	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	res, sum, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DaysPerYear*144, sum.Steps)
	assert.Equal(t, res.Series.NonZero(), sum.Drawoffs)

	f, err := os.Open(cfg.Output.Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, model.DaysPerYear*144+1)
	assert.Equal(t, "2019-01-01T00:10:00Z", rows[2][0])
}

func TestServiceRunWritesStdout(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Format = "json"
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	var buf bytes.Buffer
	svc.SetStdout(&buf)
	res, _, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"run_id":"`+res.RunID+`"`)
}

func TestServiceRunSameSeedSameSeries(t *testing.T) {
	run := func() model.DemandSeries {
		svc, err := New(testConfig(t))
		require.NoError(t, err)
		defer svc.Close()
		svc.SetStdout(&bytes.Buffer{})
		res, _, err := svc.Run(context.Background())
		require.NoError(t, err)
		return res.Series
	}
	assert.Equal(t, run(), run())
}

func TestServiceRunRendersChart(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	cfg.Output.Path = filepath.Join(dir, "dhw.json")
	cfg.Output.Format = "json"
	cfg.Output.Chart = filepath.Join(dir, "dhw.html")
	cfg.Output.ChartFrom = "2019-03-01"

	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()
	_, _, err = svc.Run(context.Background())
	require.NoError(t, err)

	html, err := os.ReadFile(cfg.Output.Chart)
	require.NoError(t, err)
	assert.Contains(t, string(html), "2019-03-01 00:00")
	assert.Contains(t, string(html), "seed 21")
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Synthesis.StepSeconds = 7
	_, err := New(cfg)
	require.ErrorIs(t, err, model.ErrConfiguration)
}
