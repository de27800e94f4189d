// Package referee implements C4: given a level's slot assignment and
// fixed pairing vector, pick one distinct eligible referee per game.
package referee

import (
	"sort"

	"github.com/platelminto/basketball-scheduler-sub000/internal/candidateslots"
	"github.com/platelminto/basketball-scheduler-sub000/internal/roundrobin"
)

// Eligible returns, for game i in a round, the teams (by index within
// the level) eligible to referee it: not playing in game i, playing some
// game in the same round, and whose own game is in a slot exactly one
// away from game i's slot.
func Eligible(gameIdx int, slots candidateslots.Vector, pairings []roundrobin.Pairing) []int {
	playing := map[int]bool{}
	for _, p := range pairings {
		playing[p.Low] = true
		playing[p.High] = true
	}
	gameSlot := slots[gameIdx]
	own := pairings[gameIdx]

	var candidates []int
	for j, p := range pairings {
		if j == gameIdx {
			continue
		}
		jSlot := slots[j]
		diff := jSlot - gameSlot
		if diff != 1 && diff != -1 {
			continue
		}
		for _, team := range []int{p.Low, p.High} {
			if team == own.Low || team == own.High {
				continue
			}
			candidates = append(candidates, team)
		}
	}
	return dedupSorted(candidates)
}

func dedupSorted(xs []int) []int {
	if len(xs) == 0 {
		return nil
	}
	sort.Ints(xs)
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// Assign picks one referee per game given the level's slot vector,
// pairing vector, and the per-team running tally so far (tally is not
// mutated). Returns nil if no valid all-distinct assignment exists.
//
// Algorithm: greedy-first, ordering games by ascending eligible-count and
// preferring the lowest-tally eligible team; falls back to exhaustive
// Cartesian-product search over eligible sets, minimizing total tally
// among all-distinct assignments, if greedy deadlocks.
func Assign(slots candidateslots.Vector, pairings []roundrobin.Pairing, tally map[int]int) []int {
	games := len(pairings)
	eligible := make([][]int, games)
	for i := range pairings {
		eligible[i] = Eligible(i, slots, pairings)
		if len(eligible[i]) == 0 {
			return nil
		}
	}

	if assignment := greedy(eligible, tally); assignment != nil {
		return assignment
	}
	return cartesianFallback(eligible, tally)
}

func greedy(eligible [][]int, tally map[int]int) []int {
	games := len(eligible)
	order := make([]int, games)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return len(eligible[order[a]]) < len(eligible[order[b]])
	})

	assignment := make([]int, games)
	used := map[int]bool{}
	for _, gameIdx := range order {
		best := -1
		bestTally := 0
		for _, team := range eligible[gameIdx] {
			if used[team] {
				continue
			}
			if best == -1 || tally[team] < bestTally {
				best = team
				bestTally = tally[team]
			}
		}
		if best == -1 {
			return nil
		}
		assignment[gameIdx] = best
		used[best] = true
	}
	return assignment
}

func cartesianFallback(eligible [][]int, tally map[int]int) []int {
	games := len(eligible)
	best := (*[]int)(nil)
	bestScore := 0

	assignment := make([]int, games)
	var walk func(idx int, used map[int]bool, runningScore int)
	walk = func(idx int, used map[int]bool, runningScore int) {
		if idx == games {
			if best == nil || runningScore < bestScore {
				cp := make([]int, games)
				copy(cp, assignment)
				best = &cp
				bestScore = runningScore
			}
			return
		}
		for _, team := range eligible[idx] {
			if used[team] {
				continue
			}
			assignment[idx] = team
			used[team] = true
			walk(idx+1, used, runningScore+tally[team])
			delete(used, team)
		}
	}
	walk(0, map[int]bool{}, 0)

	if best == nil {
		return nil
	}
	return *best
}
