package allocate

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/kilianp07/opendhw/core/model"
	"github.com/kilianp07/opendhw/core/normalize"
)

// Merge assigns every event to the first free step whose cumulative value
// exceeds the event key. A step holds at most one event; events whose key is
// already covered spill over to the next steps. events and curve are sorted in
// place.
func Merge(events []model.DrawoffEvent, curve normalize.CumulativeCurve) (model.DemandSeries, error) {
	if len(events) > len(curve) {
		return nil, fmt.Errorf("%w: %d events for %d timesteps", model.ErrAllocationExhausted, len(events), len(curve))
	}
	slices.SortFunc(events, func(a, b model.DrawoffEvent) int { return cmp.Compare(a.Key, b.Key) })
	slices.Sort(curve)

	series := make(model.DemandSeries, len(curve))
	if len(events) == 0 {
		return series, nil
	}
	if last := events[len(events)-1].Key; last >= curve[len(curve)-1] {
		return nil, fmt.Errorf("%w: placement key %v outside curve domain (max %v)",
			model.ErrAllocationExhausted, last, curve[len(curve)-1])
	}

	next := 0
	for step, p := range curve {
		if events[next].Key < p {
			series[step] = events[next].Magnitude
			next++
			if next == len(events) {
				return series, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %d of %d events left unplaced", model.ErrAllocationExhausted, len(events)-next, len(events))
}
