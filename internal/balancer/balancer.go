// Package balancer implements C7: a simulated-annealing local search
// over a completed Schedule that improves play-slot and referee-workload
// balance while preserving every hard constraint (§4.7).
package balancer

import (
	"math"
	"math/rand/v2"

	"github.com/tiendc/go-deepcopy"

	"github.com/platelminto/basketball-scheduler-sub000/internal/candidateslots"
	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/referee"
	"github.com/platelminto/basketball-scheduler-sub000/internal/schedule"
)

// Run executes the simulated-annealing loop described in spec.md §4.7
// against a complete schedule (first half + mirrored second half),
// returning the lowest-objective schedule visited — never scoring worse
// than the input, and never less feasible.
func Run(cfg *config.Config, sched schedule.Schedule, rng *rand.Rand) schedule.Schedule {
	params := cfg.Balancer
	current := cloneSchedule(sched)
	currentObj := objective(cfg, current)
	best, bestObj := current, currentObj
	temperature := params.InitialTemp

	totalProb := params.CandidateProb + params.SwapProb
	candidateProb := 1.0
	if totalProb > 0 {
		candidateProb = params.CandidateProb / totalProb
	}

	for iter := 0; iter < params.MaxIterations; iter++ {
		var candidate schedule.Schedule
		var touched []int

		if rng.Float64() < candidateProb {
			candidate, touched = candidateMove(cfg, current, rng)
		} else {
			candidate, touched = swapMove(cfg, current, rng)
		}
		if candidate == nil {
			temperature = cool(temperature, params.CoolingRate)
			continue
		}

		if !allWeeksGloballyValid(cfg, candidate, touched) {
			temperature = cool(temperature, params.CoolingRate)
			continue
		}

		candidateObj := objective(cfg, candidate)
		delta := candidateObj - currentObj
		if delta < 0 || rng.Float64() < math.Exp(-delta/temperature) {
			current = candidate
			currentObj = candidateObj
			if currentObj < bestObj {
				best, bestObj = current, currentObj
			}
		}

		temperature = cool(temperature, params.CoolingRate)
	}

	return best
}

func cool(temperature, coolingRate float64) float64 {
	t := temperature * coolingRate
	if t < 1e-6 {
		return 1e-6
	}
	return t
}

// candidateMove picks a random first-half week and level, tries an
// alternative slot vector, and regenerates referees for both that week
// and its mirror. Returns (nil, nil) if no feasible alternative exists.
//
// Mirror-referee regeneration uses the running cumulative tally, not a
// freshly zeroed one (§9 Open Question — resolved here per the spec's
// explicit instruction to preserve cumulative tallies).
func candidateMove(cfg *config.Config, current schedule.Schedule, rng *rand.Rand) (schedule.Schedule, []int) {
	levels := cfg.LevelNames()
	w := rng.IntN(cfg.FirstHalfWeeks)
	level := levels[rng.IntN(len(levels))]
	mirrorW := w + cfg.FirstHalfWeeks

	wa := current[w][level]
	teamCount := cfg.TeamCount(level)
	alternatives := candidateslots.Shuffled(teamCount, cfg.NumSlots, rng)
	var altVec candidateslots.Vector
	for _, v := range alternatives {
		if !equalVec(v, wa.Slots) {
			altVec = v
			break
		}
	}
	if altVec == nil {
		return nil, nil
	}

	tally := cumulativeTally(cfg, current, level)

	newWeekRefs := referee.Assign(altVec, wa.Pairings, tally)
	if newWeekRefs == nil {
		return nil, nil
	}

	mirrorWA := current[mirrorW][level]
	newMirrorRefs := referee.Assign(candidateslots.Vector(mirrorWA.Slots), mirrorWA.Pairings, tally)
	if newMirrorRefs == nil {
		return nil, nil
	}

	next := cloneSchedule(current)
	next[w][level] = schedule.WeekAssignment{
		Slots:    append([]int(nil), altVec...),
		Pairings: wa.Pairings,
		Referees: newWeekRefs,
	}
	next[mirrorW][level] = schedule.WeekAssignment{
		Slots:    append([]int(nil), mirrorWA.Slots...),
		Pairings: mirrorWA.Pairings,
		Referees: newMirrorRefs,
	}
	return next, []int{w, mirrorW}
}

// swapMove exchanges two first-half weeks' level assignments, and
// simultaneously their mirror weeks', for a randomly chosen level.
func swapMove(cfg *config.Config, current schedule.Schedule, rng *rand.Rand) (schedule.Schedule, []int) {
	if cfg.FirstHalfWeeks < 2 {
		return nil, nil
	}
	levels := cfg.LevelNames()
	level := levels[rng.IntN(len(levels))]

	w1 := rng.IntN(cfg.FirstHalfWeeks)
	w2 := rng.IntN(cfg.FirstHalfWeeks - 1)
	if w2 >= w1 {
		w2++
	}
	m1 := w1 + cfg.FirstHalfWeeks
	m2 := w2 + cfg.FirstHalfWeeks

	next := cloneSchedule(current)
	next[w1][level], next[w2][level] = current[w2][level], current[w1][level]
	next[m1][level], next[m2][level] = current[m2][level], current[m1][level]

	return next, []int{w1, w2, m1, m2}
}

// cumulativeTally computes, for a level, each team's referee count
// across the entire schedule.
func cumulativeTally(cfg *config.Config, sched schedule.Schedule, level string) map[int]int {
	tally := map[int]int{}
	for _, week := range sched {
		wa, ok := week[level]
		if !ok {
			continue
		}
		for _, ref := range wa.Referees {
			tally[ref]++
		}
	}
	return tally
}

// allWeeksGloballyValid is the hard feasibility check after any move:
// for every touched week, the per-slot game count across all levels must
// exactly equal courts_per_slot[s][w] — not merely <=.
func allWeeksGloballyValid(cfg *config.Config, sched schedule.Schedule, weeks []int) bool {
	for _, w := range weeks {
		if w < 0 || w >= len(sched) {
			continue
		}
		counts := map[int]int{}
		for _, wa := range sched[w] {
			for _, s := range wa.Slots {
				counts[s]++
			}
		}
		for s := 1; s <= cfg.NumSlots; s++ {
			want := 0
			if weeks, ok := cfg.CourtsPerSlot[s]; ok && w < len(weeks) {
				want = weeks[w]
			}
			if counts[s] != want {
				return false
			}
		}
	}
	return true
}

// objective is the composite balance score (lower is better): weighted
// play imbalance plus weighted referee imbalance.
func objective(cfg *config.Config, sched schedule.Schedule) float64 {
	return cfg.Balancer.WeightPlay*playImbalance(cfg, sched) + cfg.Balancer.WeightRef*refImbalance(cfg, sched)
}

// playImbalance sums, over every level/team/slot whose season play count
// exceeds its slot limit, violation_penalty*(count-limit)^2, scaled by
// priority_multiplier when the slot is a priority slot.
func playImbalance(cfg *config.Config, sched schedule.Schedule) float64 {
	type key struct {
		level string
		team  int
		slot  int
	}
	counts := map[key]int{}
	for _, week := range sched {
		for level, wa := range week {
			for i, p := range wa.Pairings {
				s := wa.Slots[i]
				counts[key{level, p.Low, s}]++
				counts[key{level, p.High, s}]++
			}
		}
	}

	isPriority := map[int]bool{}
	for _, s := range cfg.PrioritySlots {
		isPriority[s] = true
	}

	total := 0.0
	for k, c := range counts {
		limit, ok := cfg.SlotLimits[k.slot]
		if !ok {
			continue
		}
		if c > limit {
			penalty := cfg.Balancer.ViolationPenalty * math.Pow(float64(c-limit), 2)
			if isPriority[k.slot] {
				penalty *= cfg.Balancer.PriorityMultiplier
			}
			total += penalty
		}
	}
	return total
}

// refImbalance is, for each level, the population variance of the
// per-team season referee count, summed across levels.
func refImbalance(cfg *config.Config, sched schedule.Schedule) float64 {
	total := 0.0
	for _, level := range cfg.LevelNames() {
		tally := cumulativeTally(cfg, sched, level)
		teamCount := cfg.TeamCount(level)
		if teamCount == 0 {
			continue
		}
		sum := 0
		for t := 0; t < teamCount; t++ {
			sum += tally[t]
		}
		mean := float64(sum) / float64(teamCount)
		variance := 0.0
		for t := 0; t < teamCount; t++ {
			diff := float64(tally[t]) - mean
			variance += diff * diff
		}
		total += variance / float64(teamCount)
	}
	return total
}

func cloneSchedule(sched schedule.Schedule) schedule.Schedule {
	var out schedule.Schedule
	if err := deepcopy.Copy(&out, &sched); err != nil {
		// Deep-copy only fails on unsupported types; Schedule is plain
		// data (maps, slices, ints), so this indicates a programming
		// error, not a runtime condition to recover from.
		panic(err)
	}
	return out
}

func equalVec(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
