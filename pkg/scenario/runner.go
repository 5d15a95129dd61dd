// Package scenario evaluates the body pairs listed in a scenario file and
// reports the resulting manifolds.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/EngoEngine/ecs"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-narrowphase/pkg/config"
	"github.com/opd-ai/go-narrowphase/pkg/event"
	"github.com/opd-ai/go-narrowphase/pkg/logging"
	"github.com/opd-ai/go-narrowphase/pkg/physics"
	"github.com/opd-ai/go-narrowphase/pkg/validation"
)

// DefaultTolerance is used when the scenario does not set one
const DefaultTolerance float32 = 1e-5

// ErrExpectationFailed is returned when at least one pair did not produce
// its declared outcome. The report is still returned.
var ErrExpectationFailed = errors.New("expectation failed")

// Pair is a built pair of bodies ready for evaluation
type Pair struct {
	Index   int
	Name    string
	EntityA ecs.BasicEntity
	EntityB ecs.BasicEntity
	A       *physics.Body
	B       *physics.Body
	Expect  *config.Expectation
}

// Result is the outcome of one pair
type Result struct {
	Index       int
	Name        string
	EntityA     uint64
	EntityB     uint64
	KindA       physics.Kind
	KindB       physics.Kind
	Collided    bool
	Normal      physics.Vector2
	Penetration float32
	// Mismatch describes how the result differs from the declared
	// expectation; empty when it matches or none was declared.
	Mismatch string
}

// Report summarizes a scenario run
type Report struct {
	Scenario      string
	CorrelationID string
	Results       []Result
	Collisions    int
	Failures      int
	Digest        uint64
	Elapsed       time.Duration
}

// Runner evaluates a scenario
type Runner struct {
	cfg    *config.ScenarioConfig
	bus    *event.Bus
	logger *logging.Logger
}

// NewRunner creates a runner. bus may be nil; a nil logger discards output.
func NewRunner(cfg *config.ScenarioConfig, bus *event.Bus, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{cfg: cfg, bus: bus, logger: logger}
}

// BuildPairs validates the configuration and creates the bodies. Every
// body gets its own entity ID. Pair names are trimmed; blank names become
// "pair-<index>".
func BuildPairs(cfg *config.ScenarioConfig) ([]Pair, error) {
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid scenario %q", cfg.Name)
	}

	pairs := make([]Pair, 0, len(cfg.Pairs))
	for i, pc := range cfg.Pairs {
		name, err := validation.ValidatePairName(pc.Name)
		if err != nil {
			return nil, logging.WrapError(err, "pair %d", i)
		}
		if name == "" {
			name = fmt.Sprintf("pair-%d", i)
		}

		a, b, err := pc.Build()
		if err != nil {
			return nil, logging.WrapError(err, "pair %d (%s)", i, name)
		}

		pairs = append(pairs, Pair{
			Index:   i,
			Name:    name,
			EntityA: ecs.NewBasic(),
			EntityB: ecs.NewBasic(),
			A:       a,
			B:       b,
			Expect:  pc.Expect,
		})
	}
	return pairs, nil
}

// Run evaluates every pair. Pairs are independent, so they are spread over
// a bounded pool of workers; results and events keep configuration order.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	if logging.GetCorrelationID(ctx) == "" {
		ctx = logging.WithCorrelationID(ctx, "")
	}

	pairs, err := BuildPairs(r.cfg)
	if err != nil {
		r.logger.Error(ctx, "Failed to build scenario", err, "scenario", r.cfg.Name)
		return nil, err
	}

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	tolerance := r.cfg.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	r.logger.Info(ctx, "Starting scenario",
		"scenario", r.cfg.Name,
		"pairs", len(pairs),
		"workers", workers,
	)
	r.publish(event.NewScenarioEvent(event.ScenarioStarted, r, r.cfg.Name, len(pairs), 0, 0))

	results := make([]Result, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Evaluate(pairs[i], tolerance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Warn(ctx, "Scenario interrupted", "scenario", r.cfg.Name, "error", err.Error())
		return nil, logging.WrapError(err, "scenario %q interrupted", r.cfg.Name)
	}

	report := &Report{
		Scenario:      r.cfg.Name,
		CorrelationID: logging.GetCorrelationID(ctx),
		Results:       results,
		Digest:        Digest(results),
	}

	for _, res := range results {
		if res.Collided {
			report.Collisions++
			r.publish(event.NewCollisionEvent(r, res.Name, res.EntityA, res.EntityB, physics.Manifold{
				Normal:      res.Normal,
				Penetration: res.Penetration,
			}))
		} else {
			r.publish(event.NewSeparationEvent(r, res.Name, res.EntityA, res.EntityB))
		}

		if res.Mismatch != "" {
			report.Failures++
			r.logger.Warn(ctx, "Pair did not match expectation",
				"pair", res.Name,
				"mismatch", res.Mismatch,
			)
			continue
		}
		r.logger.Debug(ctx, "Pair evaluated",
			"pair", res.Name,
			"kinds", res.KindA.String()+"-"+res.KindB.String(),
			"collided", res.Collided,
			"normal_x", res.Normal.X,
			"normal_y", res.Normal.Y,
			"penetration", res.Penetration,
		)
	}
	report.Elapsed = time.Since(start)

	r.publish(event.NewScenarioEvent(event.ScenarioCompleted, r, r.cfg.Name, len(results), report.Collisions, report.Digest))
	r.logger.Info(ctx, "Scenario completed",
		"scenario", r.cfg.Name,
		"pairs", len(results),
		"collisions", report.Collisions,
		"failures", report.Failures,
		"digest", fmt.Sprintf("%016x", report.Digest),
		"elapsed", report.Elapsed.String(),
	)

	if report.Failures > 0 {
		return report, fmt.Errorf("%w: %d of %d pairs", ErrExpectationFailed, report.Failures, len(results))
	}
	return report, nil
}

func (r *Runner) publish(e event.Event) {
	if r.bus != nil {
		r.bus.Publish(e)
	}
}

// Evaluate runs the narrow-phase test for one pair and checks it against
// the pair's expectation.
func Evaluate(p Pair, tolerance float32) Result {
	m, ok := physics.Collide(p.A, p.B)

	res := Result{
		Index:    p.Index,
		Name:     p.Name,
		EntityA:  p.EntityA.ID(),
		EntityB:  p.EntityB.ID(),
		KindA:    p.A.Shape.Kind(),
		KindB:    p.B.Shape.Kind(),
		Collided: ok,
	}
	if ok {
		res.Normal = m.Normal
		res.Penetration = m.Penetration
	}
	if p.Expect != nil {
		res.Mismatch = compare(res, *p.Expect, tolerance)
	}
	return res
}

func compare(res Result, want config.Expectation, tolerance float32) string {
	if res.Collided != want.Collides {
		return fmt.Sprintf("collided = %v, want %v", res.Collided, want.Collides)
	}
	if !res.Collided {
		return ""
	}
	if want.Normal != nil {
		if !within(res.Normal.X, want.Normal.X, tolerance) || !within(res.Normal.Y, want.Normal.Y, tolerance) {
			return fmt.Sprintf("normal = (%g, %g), want (%g, %g)",
				res.Normal.X, res.Normal.Y, want.Normal.X, want.Normal.Y)
		}
	}
	if want.Penetration != nil && !within(res.Penetration, *want.Penetration, tolerance) {
		return fmt.Sprintf("penetration = %g, want %g", res.Penetration, *want.Penetration)
	}
	return ""
}

// within is false for NaN on either side
func within(got, want, tolerance float32) bool {
	return math.Abs(float64(got-want)) <= float64(tolerance)
}
