package profile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/opendhw/core/model"
)

const tolerance = 1e-9

// Period is a span of the day sharing one draw-off probability.
type Period struct {
	DurationHours float64 `json:"duration_hours"`
	Probability   float64 `json:"probability"`
}

// Table is an ordered list of periods starting at midnight.
type Table []Period

// WeekdayTable mirrors the DHWcalc step-function defaults for a working day:
// a short morning peak, a midday lull and an evening peak.
var WeekdayTable = Table{
	{6.5, 0.01},
	{1, 0.5},
	{4.5, 0.06},
	{1, 0.16},
	{5, 0.06},
	{4, 0.2},
	{2, 0.01},
}

// WeekendTable mirrors the DHWcalc step-function defaults for a weekend day.
var WeekendTable = Table{
	{7, 0.02},
	{2, 0.475},
	{6, 0.071},
	{2, 0.237},
	{3, 0.036},
	{3, 0.143},
	{1, 0.018},
}

// TableFor returns the reference table for the day type.
func TableFor(day model.DayType) (Table, error) {
	switch day {
	case model.Weekday:
		return WeekdayTable, nil
	case model.Weekend:
		return WeekendTable, nil
	default:
		return nil, fmt.Errorf("%w: unknown day type %q", model.ErrConfiguration, day)
	}
}

// BuildDay expands the reference table of the given day type.
func BuildDay(day model.DayType, stepSeconds int) ([]float64, error) {
	t, err := TableFor(day)
	if err != nil {
		return nil, err
	}
	return t.Expand(stepSeconds)
}

// Validate checks that the periods cover 24 hours, that the probabilities sum
// to one and that every period maps to a whole number of steps.
func (t Table) Validate(stepSeconds int) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty diurnal table", model.ErrConfiguration)
	}
	if _, err := model.StepsPerDay(stepSeconds); err != nil {
		return err
	}
	hours := make([]float64, len(t))
	ps := make([]float64, len(t))
	for i, p := range t {
		if p.DurationHours <= 0 || p.Probability < 0 {
			return fmt.Errorf("%w: period %d has duration %v and probability %v",
				model.ErrConfiguration, i, p.DurationHours, p.Probability)
		}
		if _, ok := wholeSteps(p.DurationHours, stepSeconds); !ok {
			return fmt.Errorf("%w: period %d of %vh is not a whole number of %ds steps",
				model.ErrConfiguration, i, p.DurationHours, stepSeconds)
		}
		hours[i] = p.DurationHours
		ps[i] = p.Probability
	}
	if sum := floats.Sum(hours); math.Abs(sum-24) > tolerance {
		return fmt.Errorf("%w: durations sum to %vh, want 24h", model.ErrConfiguration, sum)
	}
	if sum := floats.Sum(ps); math.Abs(sum-1) > tolerance {
		return fmt.Errorf("%w: probabilities sum to %v, want 1", model.ErrConfiguration, sum)
	}
	return nil
}

// Expand returns one probability per timestep of the day.
func (t Table) Expand(stepSeconds int) ([]float64, error) {
	if err := t.Validate(stepSeconds); err != nil {
		return nil, err
	}
	perDay, _ := model.StepsPerDay(stepSeconds)
	day := make([]float64, 0, perDay)
	for _, p := range t {
		n, _ := wholeSteps(p.DurationHours, stepSeconds)
		for i := 0; i < n; i++ {
			day = append(day, p.Probability)
		}
	}
	if len(day) != perDay {
		return nil, fmt.Errorf("%w: expanded day has %d steps, want %d", model.ErrConfiguration, len(day), perDay)
	}
	return day, nil
}

func wholeSteps(hours float64, stepSeconds int) (int, bool) {
	f := hours * model.SecondsPerHour / float64(stepSeconds)
	n := math.Round(f)
	return int(n), math.Abs(f-n) < tolerance
}
