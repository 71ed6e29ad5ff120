// Package synthesis runs the full draw-off synthesis pipeline: diurnal
// profiles, weekly balancing, annual expansion, normalization, sampling and
// allocation.
package synthesis

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/opendhw/core/allocate"
	"github.com/kilianp07/opendhw/core/drawoff"
	"github.com/kilianp07/opendhw/core/logger"
	"github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/core/model"
	"github.com/kilianp07/opendhw/core/normalize"
	"github.com/kilianp07/opendhw/core/profile"
)

// Result is the output of a successful run.
type Result struct {
	RunID  string
	Seed   int64
	Config Config
	Series model.DemandSeries
	// Events is the number of sampled draw-offs, zero for the thinning strategy.
	Events   int
	Week     profile.Week
	Gaussian *drawoff.GaussianResult
	Duration time.Duration
}

// VolumeL is the yearly drawn volume in liters.
func (r *Result) VolumeL() float64 {
	return floats.Sum(r.Series) * float64(r.Config.StepSeconds) / model.SecondsPerHour
}

// volumeTolerance is the relative gap between the sampled and the target
// annual volume above which a merge run logs a warning. Beta flows are bounded
// in L/h and each event lasts one step, so the gap grows with the step.
const volumeTolerance = 0.5

// Engine synthesizes demand series for one configuration.
type Engine struct {
	cfg Config
	log logger.Logger
	rec metrics.RunRecorder
	now func() time.Time
}

// New applies defaults, validates cfg and returns an Engine. Nil logger and
// recorder fall back to no-op implementations.
func New(cfg Config, log logger.Logger, rec metrics.RunRecorder) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if rec == nil {
		rec = metrics.NopSink{}
	}
	return &Engine{cfg: cfg, log: log, rec: rec, now: time.Now}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// NewSource returns the PCG source used for a seed.
func NewSource(seed int64) rand.Source {
	s := uint64(seed)
	return rand.NewPCG(s, s^0x9e3779b97f4a7c15)
}

// Run executes the pipeline. Either the full series or an error is returned.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := e.now()
	res := &Result{RunID: uuid.NewString(), Seed: e.cfg.Seed, Config: e.cfg}
	if res.Seed == 0 {
		res.Seed = int64(rand.Uint64() >> 1)
	}
	err := e.run(ctx, res, NewSource(res.Seed))
	res.Duration = e.now().Sub(start)

	ev := metrics.RunEvent{
		RunID:       res.RunID,
		Method:      model.Method(e.cfg.Method),
		Strategy:    model.Strategy(e.cfg.Strategy),
		StepSeconds: e.cfg.StepSeconds,
		Duration:    res.Duration,
		Time:        start,
	}
	if err != nil {
		ev.Err = err.Error()
		e.record(ev)
		e.log.Errorf("run %s failed: %v", res.RunID, err)
		return nil, err
	}
	ev.Events = res.Events
	ev.Drawoffs = res.Series.NonZero()
	ev.VolumeL = res.VolumeL()
	if len(res.Series) > 0 {
		ev.PeakFlowLPH = floats.Max(res.Series)
	}
	e.record(ev)
	e.log.Infof("run %s seed=%d strategy=%s drawoffs=%d volume=%.1fL peak=%.1fL/h in %s",
		res.RunID, res.Seed, e.cfg.Strategy, ev.Drawoffs, ev.VolumeL, ev.PeakFlowLPH, res.Duration)
	return res, nil
}

func (e *Engine) record(ev metrics.RunEvent) {
	if err := e.rec.RecordRun(ev); err != nil {
		e.log.Warnf("record run %s: %v", ev.RunID, err)
	}
}

func (e *Engine) run(ctx context.Context, res *Result, src rand.Source) error {
	wd, err := profile.BuildDay(model.Weekday, e.cfg.StepSeconds)
	if err != nil {
		return fmt.Errorf("weekday profile: %w", err)
	}
	we, err := profile.BuildDay(model.Weekend, e.cfg.StepSeconds)
	if err != nil {
		return fmt.Errorf("weekend profile: %w", err)
	}
	week, err := profile.Balance(wd, we, e.cfg.WeekendWeekdayFactor)
	if err != nil {
		return fmt.Errorf("balance week: %w", err)
	}
	res.Week = week
	year, err := profile.ExpandYear(week, e.cfg.InitialDay)
	if err != nil {
		return fmt.Errorf("expand year: %w", err)
	}
	e.log.Debugw("probability model ready", map[string]any{
		"run_id":        res.RunID,
		"steps":         len(year),
		"weekday_scale": week.WeekdayScale,
		"weekend_scale": week.WeekendScale,
		"weighted_mean": week.WeightedMean,
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	switch model.Strategy(e.cfg.Strategy) {
	case model.StrategyAverageProfile:
		return e.thin(ctx, res, year, src)
	default:
		return e.merge(ctx, res, year, src)
	}
}

func (e *Engine) merge(ctx context.Context, res *Result, year []float64, src rand.Source) error {
	curve, err := normalize.ToCumulativeSum(year)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	gen, err := drawoff.New(e.cfg.DrawoffParams(), src)
	if err != nil {
		return err
	}
	lo, hi := curve.Bounds()
	events, err := gen.Generate(lo, hi)
	if err != nil {
		return fmt.Errorf("generate drawoffs: %w", err)
	}
	res.Gaussian = gen.LastGaussian()
	if g := res.Gaussian; g != nil && g.Outcome != drawoff.Feasible {
		e.log.Warnf("gaussian drawoffs %s after %d attempts, mean drift %.4f%%", g.Outcome, g.Attempts, g.Drift*100)
	}
	implied := 0.0
	for _, ev := range events {
		implied += ev.Magnitude
	}
	implied *= float64(e.cfg.StepSeconds) / model.SecondsPerHour
	if drift := math.Abs(implied-e.cfg.AnnualVolumeL) / e.cfg.AnnualVolumeL; drift > volumeTolerance {
		e.log.Warnf("implied volume %.0f L is %.0f%% off the %.0f L target at %ds steps",
			implied, drift*100, e.cfg.AnnualVolumeL, e.cfg.StepSeconds)
	}
	e.log.Debugw("drawoffs sampled", map[string]any{
		"run_id":    res.RunID,
		"events":    len(events),
		"implied_l": implied,
	})
	if err := ctx.Err(); err != nil {
		return err
	}
	series, err := allocate.Merge(events, curve)
	if err != nil {
		return fmt.Errorf("allocate drawoffs: %w", err)
	}
	res.Events = len(events)
	res.Series = series
	return nil
}

func (e *Engine) thin(ctx context.Context, res *Result, year []float64, src rand.Source) error {
	threshold, err := normalize.ToMaxNormalized(year)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	ap := e.cfg.AverageProfile
	day, err := drawoff.AverageProfile(drawoff.AverageParams{
		Mode:           drawoff.ProfileMode(ap.Mode),
		DailyVolume:    ap.DailyVolumeL,
		DailySigma:     ap.DailySigmaL,
		AvgProbability: res.Week.WeightedMean,
		StepSeconds:    e.cfg.StepSeconds,
	}, src)
	if err != nil {
		return fmt.Errorf("average profile: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	series, err := allocate.Thin(allocate.Tile(day), threshold, ap.ThinningSigmaLPH, src)
	if err != nil {
		return fmt.Errorf("thin average profile: %w", err)
	}
	res.Series = series
	return nil
}
