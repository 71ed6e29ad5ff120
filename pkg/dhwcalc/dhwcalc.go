// Package dhwcalc reads flow series exported by the DHWcalc tool: one flow
// rate in L/h per line, one line per timestep.
package dhwcalc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kilianp07/opendhw/core/model"
)

// ReadSeries parses r. Blank lines are skipped.
func ReadSeries(r io.Reader) (model.DemandSeries, error) {
	var series model.DemandSeries
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("line %d: negative flow %v", n, v)
		}
		series = append(series, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return series, nil
}

// ReadFile opens path and parses it with ReadSeries.
func ReadFile(path string) (model.DemandSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeries(f)
}

// StepSeconds infers the resolution of a yearly series.
func StepSeconds(series model.DemandSeries) (int, error) {
	n := len(series)
	if n == 0 || (model.DaysPerYear*model.SecondsPerDay)%n != 0 {
		return 0, fmt.Errorf("%w: %d steps do not cover one year", model.ErrConfiguration, n)
	}
	step := model.DaysPerYear * model.SecondsPerDay / n
	if _, err := model.StepsPerDay(step); err != nil {
		return 0, err
	}
	return step, nil
}
