package model

import "fmt"

const (
	// DaysPerYear is the number of days in a synthesized year.
	DaysPerYear = 365
	// SecondsPerDay is the length of one day in seconds.
	SecondsPerDay = 86400
	// SecondsPerHour is the length of one hour in seconds.
	SecondsPerHour = 3600
)

// DayType selects the reference diurnal table.
type DayType string

const (
	Weekday DayType = "weekday"
	Weekend DayType = "weekend"
)

// Method selects the distribution draw-off flow rates are sampled from.
type Method string

const (
	MethodBeta     Method = "beta"
	MethodGaussian Method = "gaussian"
)

// Strategy selects how events are placed on the annual grid.
type Strategy string

const (
	// StrategyDrawoffs samples discrete events and merges them against the
	// cumulative probability curve.
	StrategyDrawoffs Strategy = "drawoffs"
	// StrategyAverageProfile thins a tiled average daily profile step by step.
	StrategyAverageProfile Strategy = "average_profile"
)

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodBeta, MethodGaussian:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown drawoff method %q", ErrConfiguration, s)
	}
}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyDrawoffs, StrategyAverageProfile:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown allocation strategy %q", ErrConfiguration, s)
	}
}

// DrawoffEvent is a single hot-water usage instance. Key is the placement key
// drawn independently of Magnitude.
type DrawoffEvent struct {
	Magnitude float64 // flow rate in L/h
	Key       float64
}

// DemandSeries is the per-timestep water flow in L/h over a whole year.
type DemandSeries []float64

// NonZero returns the number of timesteps carrying a draw-off.
func (s DemandSeries) NonZero() int {
	n := 0
	for _, v := range s {
		if v != 0 {
			n++
		}
	}
	return n
}

// StepsPerDay returns 86400/stepSeconds. The step must divide one hour so that
// every day and every hour maps to a whole number of steps.
func StepsPerDay(stepSeconds int) (int, error) {
	if stepSeconds <= 0 {
		return 0, fmt.Errorf("%w: step seconds must be positive, got %d", ErrConfiguration, stepSeconds)
	}
	if SecondsPerHour%stepSeconds != 0 {
		return 0, fmt.Errorf("%w: step of %ds does not divide one hour", ErrConfiguration, stepSeconds)
	}
	return SecondsPerDay / stepSeconds, nil
}
