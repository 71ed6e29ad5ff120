package profile

import (
	"fmt"
	"math"

	"github.com/kilianp07/opendhw/core/model"
)

// SeasonalFactor is the multiplier applied to every step of the given day of
// the year. It peaks in winter.
func SeasonalFactor(day int) float64 {
	return 1 + 0.1*math.Cos(2*math.Pi*float64(day)/model.DaysPerYear-math.Pi/4)
}

// IsWeekend reports whether day d falls on Saturday or Sunday when the year
// starts on initialDay (0 is Monday).
func IsWeekend(d, initialDay int) bool {
	return (d+initialDay)%7 >= 5
}

// ExpandYear concatenates 365 seasonally scaled day curves.
func ExpandYear(week Week, initialDay int) ([]float64, error) {
	if initialDay < 0 || initialDay > 6 {
		return nil, fmt.Errorf("%w: initial day must be in [0,6], got %d", model.ErrConfiguration, initialDay)
	}
	n := len(week.Weekday)
	if n == 0 || n != len(week.Weekend) {
		return nil, fmt.Errorf("%w: week curves have %d and %d steps", model.ErrConfiguration, n, len(week.Weekend))
	}
	year := make([]float64, 0, model.DaysPerYear*n)
	for d := 0; d < model.DaysPerYear; d++ {
		day := week.Weekday
		if IsWeekend(d, initialDay) {
			day = week.Weekend
		}
		season := SeasonalFactor(d)
		for _, p := range day {
			year = append(year, p*season)
		}
	}
	return year, nil
}
