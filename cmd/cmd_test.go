package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/core/model"
	"github.com/kilianp07/opendhw/pkg/stats"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestTablesCommand(t *testing.T) {
	out := execute(t, "tables")
	assert.Contains(t, out, "weekday")
	assert.Contains(t, out, "weekend")
	assert.Contains(t, out, "probability")
	assert.Contains(t, out, "06:30")
	assert.NotContains(t, out, "06.50")
	assert.Contains(t, out, "24:00")
}

func TestClock(t *testing.T) {
	cases := map[float64]string{0: "00:00", 6.5: "06:30", 7.25: "07:15", 13.0: "13:00", 24: "24:00"}
	for in, want := range cases {
		assert.Equal(t, want, clock(in), "hours %v", in)
	}
}

func TestGenerateCommand(t *testing.T) {
	out := execute(t, "generate", "--step", "600", "--seed", "5", "--format", "json", "--out", "-")
	var doc struct {
		Seed        int64     `json:"seed"`
		StepSeconds int       `json:"step_seconds"`
		FlowLPH     []float64 `json:"flow_lph"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, int64(5), doc.Seed)
	assert.Equal(t, 600, doc.StepSeconds)
	assert.Len(t, doc.FlowLPH, 365*144)
}

func TestCompareCommand(t *testing.T) {
	// one year at 10 minute steps with a single draw-off
	var b strings.Builder
	for i := 0; i < 365*144; i++ {
		b.WriteString("0\n")
	}
	path := filepath.Join(t.TempDir(), "dhwcalc.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(b.String(), "0\n", "50\n", 1)), 0o644))

	out := execute(t, "compare", path, "--seed", "3")
	assert.Contains(t, out, "timestep 600s")
	assert.Contains(t, out, "yearly volume [L]")
}

func TestWriteComparison(t *testing.T) {
	var buf bytes.Buffer
	rows := stats.Compare(stats.Summary{VolumeL: 100}, stats.Summary{VolumeL: 120})
	require.NoError(t, writeComparison(&buf, 60, rows))
	assert.Contains(t, buf.String(), "+20.0%")
}

func TestHistoryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	t.Setenv("DHW_METRICS__HISTORY_PATH", path)

	execute(t, "generate", "--step", "600", "--seed", "8", "--out", filepath.Join(t.TempDir(), "flow.csv"))
	out := execute(t, "history", "--limit", "5")
	assert.Contains(t, out, "volume [L]")
	assert.Contains(t, out, "drawoffs")
	assert.Contains(t, out, "600s")
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, []coremetrics.RunEvent{
		{RunID: "r1", Method: model.MethodBeta, Strategy: model.StrategyDrawoffs, StepSeconds: 60, VolumeL: 12.5},
		{RunID: "r2", Err: "allocation exhausted"},
	}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "12.5")
	assert.True(t, strings.HasSuffix(lines[1], "ok"))
	assert.Contains(t, lines[2], "allocation exhausted")
}
