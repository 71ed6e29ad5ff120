package profile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/opendhw/core/model"
)

const (
	weekdayShare = 5.0 / 7.0
	weekendShare = 2.0 / 7.0
)

// Week holds the rebalanced weekday and weekend curves.
type Week struct {
	Weekday      []float64
	Weekend      []float64
	WeekdayScale float64
	WeekendScale float64
	WeightedMean float64 // weekday mean * 5/7 + weekend mean * 2/7
	Factor       float64
}

// Scales returns the weekday and weekend multipliers for factor f. They
// satisfy wd*5/7 + we*2/7 == 1 for every f > 0.
func Scales(f float64) (wd, we float64) {
	wd = 1 / (weekdayShare + f*weekendShare)
	we = 1 / ((1/f)*weekdayShare + weekendShare)
	return wd, we
}

// Balance shifts probability between weekdays and weekends. A factor above one
// raises weekend probability, below one lowers it. The inputs are not modified.
func Balance(weekday, weekend []float64, factor float64) (Week, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Week{}, fmt.Errorf("%w: weekend/weekday factor must be > 0, got %v", model.ErrConfiguration, factor)
	}
	if len(weekday) == 0 || len(weekday) != len(weekend) {
		return Week{}, fmt.Errorf("%w: weekday and weekend curves have %d and %d steps",
			model.ErrConfiguration, len(weekday), len(weekend))
	}
	wd, we := Scales(factor)
	if d := wd*weekdayShare + we*weekendShare - 1; math.Abs(d) > tolerance {
		panic(fmt.Sprintf("profile: weekly scale identity off by %g for factor %v", d, factor))
	}

	wdScaled := make([]float64, len(weekday))
	floats.ScaleTo(wdScaled, wd, weekday)
	weScaled := make([]float64, len(weekend))
	floats.ScaleTo(weScaled, we, weekend)

	return Week{
		Weekday:      wdScaled,
		Weekend:      weScaled,
		WeekdayScale: wd,
		WeekendScale: we,
		WeightedMean: stat.Mean(wdScaled, nil)*weekdayShare + stat.Mean(weScaled, nil)*weekendShare,
		Factor:       factor,
	}, nil
}
