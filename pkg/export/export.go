// Package export writes demand series to CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/opendhw/core/model"
	"github.com/kilianp07/opendhw/pkg/stats"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q", model.ErrConfiguration, s)
	}
}

// Series is a demand series anchored in time.
type Series struct {
	RunID       string
	Seed        int64
	Start       time.Time
	StepSeconds int
	DeltaK      float64
	Flow        model.DemandSeries
}

func (s Series) at(i int) time.Time {
	return s.Start.Add(time.Duration(i*s.StepSeconds) * time.Second)
}

// Write encodes s in format f.
func Write(w io.Writer, f Format, s Series) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	default:
		return fmt.Errorf("%w: unknown output format %q", model.ErrConfiguration, f)
	}
}

// WriteCSV writes one row per timestep with the flow in L/h and the heat flow
// in W.
func WriteCSV(w io.Writer, s Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "flow_lph", "heat_w"}); err != nil {
		return err
	}
	for i, v := range s.Flow {
		rec := []string{
			s.at(i).Format(time.RFC3339),
			strconv.FormatFloat(v, 'f', -1, 64),
			strconv.FormatFloat(stats.HeatFlow(v, s.DeltaK), 'f', 3, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type document struct {
	RunID       string        `json:"run_id,omitempty"`
	Seed        int64         `json:"seed,omitempty"`
	Start       time.Time     `json:"start"`
	StepSeconds int           `json:"step_seconds"`
	Summary     stats.Summary `json:"summary"`
	FlowLPH     []float64     `json:"flow_lph"`
}

// WriteJSON writes the series with its summary as one JSON document.
func WriteJSON(w io.Writer, s Series) error {
	sum, err := stats.Summarize(s.Flow, s.StepSeconds, s.DeltaK)
	if err != nil {
		return err
	}
	flow := s.Flow
	if flow == nil {
		flow = model.DemandSeries{}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(document{
		RunID:       s.RunID,
		Seed:        s.Seed,
		Start:       s.Start,
		StepSeconds: s.StepSeconds,
		Summary:     sum,
		FlowLPH:     flow,
	})
}
