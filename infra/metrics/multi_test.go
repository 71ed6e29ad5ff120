package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/core/model"
)

type stubSink struct {
	runs   int
	series int
	closed bool
	err    error
}

func (s *stubSink) RecordRun(coremetrics.RunEvent) error { s.runs++; return s.err }

func (s *stubSink) WriteSeries(context.Context, string, time.Time, int, model.DemandSeries) error {
	s.series++
	return s.err
}

func (s *stubSink) Close() error { s.closed = true; return nil }

type runOnly struct{ runs int }

func (r *runOnly) RecordRun(coremetrics.RunEvent) error { r.runs++; return nil }

func TestMultiSinkForwards(t *testing.T) {
	a, b := &stubSink{}, &runOnly{}
	m := NewMultiSink(a, b)

	require.NoError(t, m.RecordRun(coremetrics.RunEvent{}))
	require.NoError(t, m.WriteSeries(context.Background(), "r", time.Now(), 60, model.DemandSeries{1}))
	require.NoError(t, m.Close())

	assert.Equal(t, 1, a.runs)
	assert.Equal(t, 1, b.runs)
	assert.Equal(t, 1, a.series)
	assert.True(t, a.closed)
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	a, b := &stubSink{err: boom}, &runOnly{}
	m := NewMultiSink(a, b)

	err := m.RecordRun(coremetrics.RunEvent{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, b.runs, "later sinks still receive the event")
	require.ErrorIs(t, m.WriteSeries(context.Background(), "r", time.Now(), 60, nil), boom)
}
