package schedule

import (
	"math/rand/v2"

	"github.com/platelminto/basketball-scheduler-sub000/internal/candidateslots"
	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/enginerr"
	"github.com/platelminto/basketball-scheduler-sub000/internal/referee"
)

// SolveHalf is C5: week-by-week backtracking over weeks
// 0..cfg.FirstHalfWeeks, composing C3/C4 under the global per-slot
// capacity coupling across levels. Returns InfeasibleHalf if the whole
// search space is exhausted.
//
// Backtracking undo is explicit: each (week, level) decision point
// applies a slot-usage delta and a referee-tally delta to the shared
// maps, and undoes exactly those deltas itself if the recursive call
// beneath it fails (§9 "Backtracking state").
func SolveHalf(cfg *config.Config, rr RRPairings, rng *rand.Rand) (Schedule, RefTallies, error) {
	levels := cfg.LevelNames()
	numLevels := len(levels)
	totalSteps := cfg.FirstHalfWeeks * numLevels

	sched := make(Schedule, cfg.FirstHalfWeeks)
	for w := range sched {
		sched[w] = Week{}
	}
	tally := make(RefTallies, numLevels)
	for _, lv := range levels {
		tally[lv] = map[int]int{}
	}

	ok := backtrackStep(0, totalSteps, numLevels, nil, cfg, levels, rr, sched, tally, rng)
	if !ok {
		return nil, nil, enginerr.New(enginerr.InfeasibleHalf, "exhausted backtracking search for first half")
	}
	return sched, tally, nil
}

// backtrackStep recurses over the flat (week, level) step sequence.
// usage is the current week's per-slot commitment counter; it is reset
// (a fresh local map) whenever a new week begins, and because Go passes
// it down the call stack rather than through shared global state, a
// backtrack out of an entire week automatically restores the parent
// week's usage view with no extra bookkeeping.
func backtrackStep(
	step, totalSteps, numLevels int,
	usage map[int]int,
	cfg *config.Config,
	levels []string,
	rr RRPairings,
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
	actualWeek := stepWeek
	teamCount := cfg.TeamCount(level)
	pairings := rr[level][stepWeek%len(rr[level])]

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

		if backtrackStep(step+1, totalSteps, numLevels, usage, cfg, levels, rr, sched, tally, rng) {
			return true
		}

		applyDelta(usage, delta, -1)
		bumpTally(tally[level], refs, -1)
		delete(sched[stepWeek], level)
	}
	return false
}

func fitsCapacity(usage map[int]int, delta map[int]int, cfg *config.Config, week int) bool {
	for s, d := range delta {
		limit := 0
		if weeks, ok := cfg.CourtsPerSlot[s]; ok && week < len(weeks) {
			limit = weeks[week]
		}
		if usage[s]+d > limit {
			return false
		}
	}
	return true
}

func applyDelta(usage map[int]int, delta map[int]int, sign int) {
	for s, d := range delta {
		usage[s] += sign * d
	}
}

func bumpTally(tally map[int]int, refs []int, sign int) {
	for _, t := range refs {
		tally[t] += sign
	}
}
