// Package validator checks a generated schedule.Schedule against every
// hard invariant and soft property from spec.md §3/§8 (P1-P9).
package validator

import (
	"fmt"

	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/roundrobin"
	"github.com/platelminto/basketball-scheduler-sub000/internal/schedule"
)

// Violation is one property failure found during validation.
type Violation struct {
	Week    int // -1 when the violation isn't week-scoped
	Level   string
	Type    string // "error" or "warning"
	Message string
}

// Validate checks sched against cfg and returns every violation found.
// A nil/empty result means the schedule satisfies P1-P8. Running
// Validate twice on the same schedule returns the same result (P9) since
// every check below is a pure function of (cfg, sched).
func Validate(cfg *config.Config, sched schedule.Schedule) []Violation {
	var violations []Violation

	violations = append(violations, checkRoundRobinCoverage(cfg, sched)...)
	violations = append(violations, checkCourtCapacity(cfg, sched)...)
	violations = append(violations, checkSlotContiguity(cfg, sched)...)
	violations = append(violations, checkPlayLimits(cfg, sched)...)
	violations = append(violations, checkRefereeLimits(cfg, sched)...)
	violations = append(violations, checkNoSelfReferee(cfg, sched)...)
	violations = append(violations, checkAdjacentSlotRefereeing(cfg, sched)...)
	violations = append(violations, checkMirrorPairings(cfg, sched)...)

	return violations
}

// checkRoundRobinCoverage is Property P1: across the first half of a
// level's output, every unordered pair of teams appears exactly once.
// The second half is not scanned here; checkMirrorPairings (P8) checks
// it week by week against the first half.
func checkRoundRobinCoverage(cfg *config.Config, sched schedule.Schedule) []Violation {
	var violations []Violation
	for _, level := range cfg.LevelNames() {
		teamCount := cfg.TeamCount(level)
		want := teamCount * (teamCount - 1) / 2

		firstHalf := map[[2]int]int{}
		for w := 0; w < cfg.FirstHalfWeeks && w < len(sched); w++ {
			wa, ok := sched[w][level]
			if !ok {
				continue
			}
			for _, p := range wa.Pairings {
				firstHalf[[2]int{p.Low, p.High}]++
			}
		}
		if len(firstHalf) != want {
			violations = append(violations, Violation{
				Week: -1, Level: level, Type: "error",
				Message: fmt.Sprintf("level %s: first half covers %d distinct pairs, want %d", level, len(firstHalf), want),
			})
		}
		for pair, count := range firstHalf {
			if count != 1 {
				violations = append(violations, Violation{
					Week: -1, Level: level, Type: "error",
					Message: fmt.Sprintf("level %s: pair (%d,%d) appears %d times in first half, want 1", level, pair[0], pair[1], count),
				})
			}
		}
	}
	return violations
}

// checkCourtCapacity is Property P2: for every week and slot, the game
// count across all levels equals courts_per_slot[s][w] exactly.
func checkCourtCapacity(cfg *config.Config, sched schedule.Schedule) []Violation {
	var violations []Violation
	for w, week := range sched {
		counts := map[int]int{}
		for _, wa := range week {
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
				violations = append(violations, Violation{
					Week: w, Type: "error",
					Message: fmt.Sprintf("week %d slot %d: %d games scheduled, want %d", w, s, counts[s], want),
				})
			}
		}
	}
	return violations
}

// checkSlotContiguity is Property P3: the set of slots used by any level
// in any week is an integer-contiguous range of at least two slots, and
// no slot holds more than teams/3 of that level's games.
func checkSlotContiguity(cfg *config.Config, sched schedule.Schedule) []Violation {
	var violations []Violation
	for w, week := range sched {
		for level, wa := range week {
			teamCount := cfg.TeamCount(level)
			maxPerSlot := teamCount / 3
			used := map[int]int{}
			for _, s := range wa.Slots {
				used[s]++
			}
			overfull := false
			minSlot, maxSlot, distinct := 0, 0, 0
			for s := 1; s <= cfg.NumSlots; s++ {
				if used[s] > 0 {
					if distinct == 0 {
						minSlot = s
					}
					maxSlot = s
					distinct++
				}
				if used[s] > maxPerSlot {
					overfull = true
				}
			}
			if distinct < 2 || overfull || maxSlot-minSlot+1 != distinct {
				violations = append(violations, Violation{
					Week: w, Level: level, Type: "error",
					Message: fmt.Sprintf("week %d level %s: slot set is not a contiguous range of 2+ slots with at most %d games each", w, level, maxPerSlot),
				})
			}
		}
	}
	return violations
}

// checkPlayLimits is Property P4: for every level, team, slot, the
// season play count does not exceed slot_limits[s].
func checkPlayLimits(cfg *config.Config, sched schedule.Schedule) []Violation {
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
	var violations []Violation
	for k, c := range counts {
		limit, ok := cfg.SlotLimits[k.slot]
		if !ok {
			continue
		}
		if c > limit {
			violations = append(violations, Violation{
				Level: k.level, Week: -1, Type: "error",
				Message: fmt.Sprintf("level %s team %d: plays %d games in slot %d, limit %d", k.level, k.team, c, k.slot, limit),
			})
		}
	}
	return violations
}

// checkRefereeLimits is Property P5: for every level and team, the
// season referee count falls within [min_referee_count, max_referee_count].
func checkRefereeLimits(cfg *config.Config, sched schedule.Schedule) []Violation {
	var violations []Violation
	for _, level := range cfg.LevelNames() {
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
		for team := 0; team < cfg.TeamCount(level); team++ {
			count := tally[team]
			if count < cfg.MinRefereeCount || count > cfg.MaxRefereeCount {
				violations = append(violations, Violation{
					Level: level, Week: -1, Type: "error",
					Message: fmt.Sprintf("level %s team %d: referees %d games, want %d-%d",
						level, team, count, cfg.MinRefereeCount, cfg.MaxRefereeCount),
				})
			}
		}
	}
	return violations
}

// checkNoSelfReferee is Property P6: no game's referee is one of its
// own two players.
func checkNoSelfReferee(cfg *config.Config, sched schedule.Schedule) []Violation {
	var violations []Violation
	for w, week := range sched {
		for level, wa := range week {
			for i, p := range wa.Pairings {
				ref := wa.Referees[i]
				if ref == p.Low || ref == p.High {
					violations = append(violations, Violation{
						Week: w, Level: level, Type: "error",
						Message: fmt.Sprintf("week %d level %s game %d: referee %d is a player", w, level, i, ref),
					})
				}
			}
		}
	}
	return violations
}

// checkAdjacentSlotRefereeing is Property P7: every referee plays their
// own game, in the same week, in a slot exactly ±1 from the game they
// officiate.
func checkAdjacentSlotRefereeing(cfg *config.Config, sched schedule.Schedule) []Violation {
	var violations []Violation
	for w, week := range sched {
		for level, wa := range week {
			for i, ref := range wa.Referees {
				refSlot := -1
				for j, p := range wa.Pairings {
					if p.Low == ref || p.High == ref {
						refSlot = wa.Slots[j]
						break
					}
				}
				if refSlot == -1 {
					violations = append(violations, Violation{
						Week: w, Level: level, Type: "error",
						Message: fmt.Sprintf("week %d level %s game %d: referee %d does not play this week", w, level, i, ref),
					})
					continue
				}
				diff := refSlot - wa.Slots[i]
				if diff != 1 && diff != -1 {
					violations = append(violations, Violation{
						Week: w, Level: level, Type: "error",
						Message: fmt.Sprintf("week %d level %s game %d: referee plays slot %d, officiates slot %d (not adjacent)",
							w, level, i, refSlot, wa.Slots[i]),
					})
				}
			}
		}
	}
	return violations
}

// checkMirrorPairings is Property P8: for every level and w <
// first_half_weeks, the pairing set of week w equals that of week
// w+first_half_weeks.
func checkMirrorPairings(cfg *config.Config, sched schedule.Schedule) []Violation {
	var violations []Violation
	for w := 0; w < cfg.FirstHalfWeeks; w++ {
		mirrorW := w + cfg.FirstHalfWeeks
		if mirrorW >= len(sched) {
			continue
		}
		for _, level := range cfg.LevelNames() {
			want := pairingSet(sched[w][level].Pairings)
			got := pairingSet(sched[mirrorW][level].Pairings)
			if len(want) != len(got) {
				violations = append(violations, Violation{
					Week: w, Level: level, Type: "error",
					Message: fmt.Sprintf("week %d level %s: mirror week %d has a different pairing set size", w, level, mirrorW),
				})
				continue
			}
			for pair := range want {
				if !got[pair] {
					violations = append(violations, Violation{
						Week: w, Level: level, Type: "error",
						Message: fmt.Sprintf("week %d level %s: mirror week %d missing pairing (%d,%d)", w, level, mirrorW, pair[0], pair[1]),
					})
				}
			}
		}
	}
	return violations
}

func pairingSet(pairings []roundrobin.Pairing) map[[2]int]bool {
	out := make(map[[2]int]bool, len(pairings))
	for _, p := range pairings {
		out[[2]int{p.Low, p.High}] = true
	}
	return out
}
