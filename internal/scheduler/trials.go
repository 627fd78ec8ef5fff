package scheduler

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/timetabler/pkg/model"
)

// Solve runs the configured number of independent seeded trials in parallel
// and returns the best solution. Trials share only the immutable problem;
// each owns a private assignment and conflict index, so no locks are needed.
// The result is deterministic for a fixed problem, config and seed.
func Solve(ctx context.Context, problem *Problem, cfg Config, log *zap.Logger) *model.Solution {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	trials := max(cfg.Trials, 1)
	solutions := make([]*model.Solution, trials)

	var wg sync.WaitGroup
	for i := 0; i < trials; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seed := cfg.Seed + int64(i)
			engine := NewEngine(problem, cfg, seed, log.With(zap.Int64("seed", seed)))
			sol := engine.Solve(ctx)
			sol.Stats.Seed = seed
			solutions[i] = sol
		}(i)
	}
	wg.Wait()

	best := solutions[0]
	for _, sol := range solutions[1:] {
		if better(sol, best) {
			best = sol
		}
	}
	best.RunID = uuid.NewString()
	log.Info("solve finished",
		zap.String("run_id", best.RunID),
		zap.String("status", best.Status.String()),
		zap.Int("placed", best.PlacedCount()),
		zap.Int("relaxed", len(best.Relaxed)),
		zap.Int("unplaced", len(best.Unplaced)),
		zap.Float64("score", best.Score),
		zap.Int64("winning_seed", best.Stats.Seed))
	return best
}

// better compares trial outcomes: status first, then fewer unplaced, fewer
// relaxed, lower soft score, and finally the lower seed so ties resolve the
// same way on every run.
func better(a, b *model.Solution) bool {
	if a.Status != b.Status {
		return a.Status < b.Status
	}
	if len(a.Unplaced) != len(b.Unplaced) {
		return len(a.Unplaced) < len(b.Unplaced)
	}
	if len(a.Relaxed) != len(b.Relaxed) {
		return len(a.Relaxed) < len(b.Relaxed)
	}
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Stats.Seed < b.Stats.Seed
}
