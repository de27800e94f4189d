// Package engine implements C8: the parallel attempt driver tying C1
// through C7 together into one `FindSchedule` entry point.
package engine

import (
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/platelminto/basketball-scheduler-sub000/internal/balancer"
	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/enginerr"
	"github.com/platelminto/basketball-scheduler-sub000/internal/schedule"
	"github.com/platelminto/basketball-scheduler-sub000/internal/validator"
)

// Options tunes a FindSchedule run.
type Options struct {
	// Workers is the number of attempts run concurrently per batch.
	// Zero means runtime.NumCPU()*2, matching original_source's
	// num_cores*2 worker-pool sizing.
	Workers int
	// MaxAttempts caps the total number of attempts across all batches.
	// Zero means unlimited (bounded only by ctx cancellation).
	MaxAttempts int
	// Seed seeds the attempt RNGs deterministically. Zero derives a
	// seed from the current time.
	Seed uint64
	// SkipBalance disables the C7 balancing pass, returning the first
	// feasible schedule found by C5/C6 unmodified.
	SkipBalance bool
}

// Diagnostics reports how a FindSchedule run spent its effort,
// independent of whether it succeeded.
type Diagnostics struct {
	Attempts int
	Elapsed  time.Duration
}

// Result is a successful FindSchedule outcome.
type Result struct {
	Schedule    schedule.Schedule
	Diagnostics Diagnostics
}

// FindSchedule repeatedly attempts C2 (fresh per attempt) -> C5 -> C6 ->
// C7 -> validate, in batches of opts.Workers concurrent attempts, until
// one attempt validates cleanly, opts.MaxAttempts is exhausted, or ctx is
// cancelled. Cancellation is cooperative and checked only between
// batches, never mid-attempt (§5).
func FindSchedule(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	start := time.Now()
	attempts := 0

	for {
		select {
		case <-ctx.Done():
			return nil, enginerr.Wrap(enginerr.Cancelled, ctx.Err(), "find schedule cancelled after %d attempts", attempts)
		default:
		}

		batchSize := workers
		if opts.MaxAttempts > 0 && attempts+batchSize > opts.MaxAttempts {
			batchSize = opts.MaxAttempts - attempts
		}
		if batchSize <= 0 {
			return nil, enginerr.New(enginerr.Exhausted, "exhausted %d attempts without finding a valid schedule", attempts)
		}

		results := make([]schedule.Schedule, batchSize)
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < batchSize; i++ {
			attemptIndex := attempts + i
			g.Go(func() error {
				rng := rand.New(rand.NewPCG(seed, uint64(attemptIndex)))
				sched, err := attempt(gctx, cfg, opts, rng)
				if err != nil {
					return nil // a single infeasible attempt isn't fatal to the batch
				}
				results[i] = sched
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, enginerr.Wrap(enginerr.Exhausted, err, "attempt batch aborted after %d attempts", attempts+batchSize)
		}
		attempts += batchSize

		for _, sched := range results {
			if sched != nil {
				return &Result{
					Schedule: sched,
					Diagnostics: Diagnostics{
						Attempts: attempts,
						Elapsed:  time.Since(start),
					},
				}, nil
			}
		}

		if opts.MaxAttempts > 0 && attempts >= opts.MaxAttempts {
			return nil, enginerr.New(enginerr.Exhausted, "exhausted %d attempts without finding a valid schedule", attempts)
		}
	}
}

// attempt runs one full pipeline: fresh round-robin pairings, half solve,
// mirror solve, optional balance, then validate. Any infeasibility at any
// stage yields a nil schedule, not an error — only genuine cancellation
// propagates as an error.
func attempt(ctx context.Context, cfg *config.Config, opts Options, rng *rand.Rand) (schedule.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rr := schedule.GenerateRRPairings(cfg)

	firstHalf, tally, err := schedule.SolveHalf(cfg, rr, rng)
	if err != nil {
		return nil, nil
	}

	secondHalf, _, err := schedule.SolveMirror(cfg, firstHalf, tally, rng)
	if err != nil {
		return nil, nil
	}

	full := append(firstHalf, secondHalf...)

	if !opts.SkipBalance {
		full = balancer.Run(cfg, full, rng)
	}

	if violations := validator.Validate(cfg, full); len(violations) > 0 {
		return nil, nil
	}

	return full, nil
}

func defaultWorkers() int {
	return runtime.NumCPU() * 2
}
