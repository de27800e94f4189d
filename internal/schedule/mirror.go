package schedule

import (
	"math/rand/v2"

	"github.com/platelminto/basketball-scheduler-sub000/internal/candidateslots"
	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/enginerr"
	"github.com/platelminto/basketball-scheduler-sub000/internal/referee"
)

// SolveMirror is C6: identical structure to SolveHalf except pairings
// are fixed to the first half's (for second-half week w, level L, reuse
// the pairing vector from first-half week w) — only slot vectors and
// referees are searched. Global capacity uses
// courts_per_slot[s][w+FirstHalfWeeks]. This preserves the mirror
// pairing invariant (P8) by construction rather than by post-hoc check.
func SolveMirror(cfg *config.Config, firstHalf Schedule, firstHalfTallies RefTallies, rng *rand.Rand) (Schedule, RefTallies, error) {
	levels := cfg.LevelNames()
	numLevels := len(levels)
	totalSteps := cfg.FirstHalfWeeks * numLevels

	sched := make(Schedule, cfg.FirstHalfWeeks)
	for w := range sched {
		sched[w] = Week{}
	}
	tally := firstHalfTallies.Clone()

	ok := mirrorBacktrack(0, totalSteps, numLevels, nil, cfg, levels, firstHalf, sched, tally, rng)
	if !ok {
		return nil, nil, enginerr.New(enginerr.InfeasibleMirror, "exhausted backtracking search for second half")
	}
	return sched, tally, nil
}

func mirrorBacktrack(
	step, totalSteps, numLevels int,
	usage map[int]int,
	cfg *config.Config,
	levels []string,
	firstHalf Schedule,
	sched Schedule,
	tally RefTallies,
	rng *rand.Rand,
) bool {
	if step == totalSteps {
		return true
	}
	stepWeek := step / numLevels
	levelIdx := step % numLevels
	if levelIdx == 0 {
		usage = map[int]int{}
	}

	level := levels[levelIdx]
	actualWeek := stepWeek + cfg.FirstHalfWeeks
	teamCount := cfg.TeamCount(level)
	pairings := firstHalf[stepWeek][level].Pairings

	candidates := candidateslots.Shuffled(teamCount, cfg.NumSlots, rng)
	for _, cand := range candidates {
		delta := map[int]int{}
		for _, s := range cand {
			delta[s]++
		}
		if !fitsCapacity(usage, delta, cfg, actualWeek) {
			continue
		}

		refs := referee.Assign(candidateslots.Vector(cand), pairings, tally[level])
		if refs == nil {
			continue
		}

		applyDelta(usage, delta, 1)
		bumpTally(tally[level], refs, 1)
		sched[stepWeek][level] = WeekAssignment{Slots: append([]int(nil), cand...), Pairings: pairings, Referees: refs}

		if mirrorBacktrack(step+1, totalSteps, numLevels, usage, cfg, levels, firstHalf, sched, tally, rng) {
			return true
		}

		applyDelta(usage, delta, -1)
		bumpTally(tally[level], refs, -1)
		delete(sched[stepWeek], level)
	}
	return false
}
