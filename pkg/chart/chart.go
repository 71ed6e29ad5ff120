// Package chart renders demand series as interactive HTML line charts.
package chart

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/opendhw/core/model"
)

// Line is one plotted series.
type Line struct {
	Name string
	Flow model.DemandSeries
}

// Window selects the plotted slice of series starting at Start.
type Window struct {
	Start       time.Time
	StepSeconds int
	From        time.Time
	Days        int
}

// bounds returns the step indices [lo, hi) of the window, clipped to n.
func (w Window) bounds(n int) (int, int, error) {
	if w.StepSeconds <= 0 || w.Days <= 0 {
		return 0, 0, fmt.Errorf("%w: chart window step %ds, %d days", model.ErrConfiguration, w.StepSeconds, w.Days)
	}
	step := time.Duration(w.StepSeconds) * time.Second
	lo := int(w.From.Sub(w.Start) / step)
	if lo < 0 || lo >= n {
		return 0, 0, fmt.Errorf("%w: chart start %s outside series", model.ErrConfiguration, w.From.Format(time.DateOnly))
	}
	hi := min(lo+w.Days*model.SecondsPerDay/w.StepSeconds, n)
	return lo, hi, nil
}

// Render writes an HTML page with one line per series. All lines must have the
// same length.
func Render(out io.Writer, title string, w Window, lines ...Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: nothing to chart", model.ErrConfiguration)
	}
	n := len(lines[0].Flow)
	for _, l := range lines[1:] {
		if len(l.Flow) != n {
			return fmt.Errorf("%w: series %q has %d steps, expected %d", model.ErrConfiguration, l.Name, len(l.Flow), n)
		}
	}
	lo, hi, err := w.bounds(n)
	if err != nil {
		return err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("timestep = %d s", w.StepSeconds)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date & Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Flow (L/h)"}),
	)
	step := time.Duration(w.StepSeconds) * time.Second
	xAxis := make([]string, 0, hi-lo)
	for i := lo; i < hi; i++ {
		xAxis = append(xAxis, w.Start.Add(time.Duration(i)*step).Format("2006-01-02 15:04"))
	}
	line.SetXAxis(xAxis)
	for _, l := range lines {
		data := make([]opts.LineData, 0, hi-lo)
		for _, v := range l.Flow[lo:hi] {
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(l.Name, data)
	}
	if err := line.Render(out); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderFile renders to path.
func RenderFile(path, title string, w Window, lines ...Line) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, title, w, lines...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
