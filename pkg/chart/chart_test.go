package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/opendhw/core/model"
)

var start = time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

func TestWindowBounds(t *testing.T) {
	w := Window{Start: start, StepSeconds: 3600, From: start.AddDate(0, 0, 2), Days: 1}
	lo, hi, err := w.bounds(24 * 5)
	require.NoError(t, err)
	assert.Equal(t, 48, lo)
	assert.Equal(t, 72, hi)

	// clipped at the end of the series
	w.From = start.AddDate(0, 0, 4)
	w.Days = 3
	lo, hi, err = w.bounds(24 * 5)
	require.NoError(t, err)
	assert.Equal(t, 96, lo)
	assert.Equal(t, 120, hi)

	w.From = start.AddDate(0, 0, 6)
	_, _, err = w.bounds(24 * 5)
	require.ErrorIs(t, err, model.ErrConfiguration)

	_, _, err = Window{Start: start, StepSeconds: 0, Days: 1}.bounds(10)
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestRender(t *testing.T) {
	a := make(model.DemandSeries, 48)
	b := make(model.DemandSeries, 48)
	a[7], b[19] = 420, 610
	var buf bytes.Buffer
	err := Render(&buf, "DHW comparison", Window{Start: start, StepSeconds: 3600, From: start, Days: 1},
		Line{Name: "DHWcalc", Flow: a}, Line{Name: "opendhw", Flow: b})
	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "DHW comparison")
	assert.Contains(t, html, "opendhw")
	assert.Contains(t, html, "2019-01-01 07:00")
	assert.NotContains(t, html, "2019-01-02 07:00")
}

func TestRenderErrors(t *testing.T) {
	w := Window{Start: start, StepSeconds: 3600, From: start, Days: 1}
	require.ErrorIs(t, Render(&bytes.Buffer{}, "x", w), model.ErrConfiguration)
	err := Render(&bytes.Buffer{}, "x", w, Line{Flow: make(model.DemandSeries, 24)}, Line{Name: "b", Flow: make(model.DemandSeries, 12)})
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dhw.html")
	require.NoError(t, RenderFile(path, "DHW", Window{Start: start, StepSeconds: 3600, From: start, Days: 1},
		Line{Name: "opendhw", Flow: make(model.DemandSeries, 24)}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
