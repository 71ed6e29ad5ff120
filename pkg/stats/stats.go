// Package stats computes water and heat figures of a demand series.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/opendhw/core/model"
)

const (
	// WaterDensity in kg/L at hot water temperature.
	WaterDensity = 0.98
	// WaterHeatCapacity in J/(kg K).
	WaterHeatCapacity = 4180.0
)

// HeatFlow converts a flow rate in L/h into a heat flow in W for a
// temperature lift of deltaK.
func HeatFlow(flowLPH, deltaK float64) float64 {
	return flowLPH / model.SecondsPerHour * WaterDensity * WaterHeatCapacity * deltaK
}

// HeatSeries converts every step of series into W.
func HeatSeries(series model.DemandSeries, deltaK float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = HeatFlow(v, deltaK)
	}
	return out
}

// Summary holds the yearly figures of a series.
type Summary struct {
	StepSeconds   int     `json:"step_seconds"`
	Steps         int     `json:"steps"`
	VolumeL       float64 `json:"volume_l"`
	DailyAverageL float64 `json:"daily_average_l"`
	PeakFlowLPH   float64 `json:"peak_flow_lph"`
	Drawoffs      int     `json:"drawoffs"`
	HeatKWh       float64 `json:"heat_kwh"`
	PeakHeatKW    float64 `json:"peak_heat_kw"`
}

// Summarize computes the Summary of series sampled every stepSeconds.
func Summarize(series model.DemandSeries, stepSeconds int, deltaK float64) (Summary, error) {
	if stepSeconds <= 0 {
		return Summary{}, fmt.Errorf("%w: step %ds", model.ErrConfiguration, stepSeconds)
	}
	s := Summary{StepSeconds: stepSeconds, Steps: len(series)}
	if len(series) == 0 {
		return s, nil
	}
	step := float64(stepSeconds)
	s.VolumeL = floats.Sum(series) * step / model.SecondsPerHour
	days := float64(len(series)) * step / model.SecondsPerDay
	s.DailyAverageL = s.VolumeL / days
	s.PeakFlowLPH = floats.Max(series)
	s.Drawoffs = series.NonZero()

	heat := HeatSeries(series, deltaK)
	s.HeatKWh = floats.Sum(heat) * step / model.SecondsPerHour / 1000
	s.PeakHeatKW = floats.Max(heat) / 1000
	return s, nil
}

// Row is one line of a comparison between two summaries.
type Row struct {
	Name   string
	Unit   string
	A, B   float64
	RelDif float64 // (B-A)/A, zero when A is zero
}

// Compare lines up the figures of a and b.
func Compare(a, b Summary) []Row {
	rows := []Row{
		{Name: "yearly volume", Unit: "L", A: a.VolumeL, B: b.VolumeL},
		{Name: "daily average", Unit: "L/day", A: a.DailyAverageL, B: b.DailyAverageL},
		{Name: "peak flow", Unit: "L/h", A: a.PeakFlowLPH, B: b.PeakFlowLPH},
		{Name: "drawoffs", Unit: "steps", A: float64(a.Drawoffs), B: float64(b.Drawoffs)},
		{Name: "yearly heat", Unit: "kWh", A: a.HeatKWh, B: b.HeatKWh},
		{Name: "peak heat", Unit: "kW", A: a.PeakHeatKW, B: b.PeakHeatKW},
	}
	for i := range rows {
		if rows[i].A != 0 {
			rows[i].RelDif = (rows[i].B - rows[i].A) / rows[i].A
		}
	}
	return rows
}
