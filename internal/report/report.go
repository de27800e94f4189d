// Package report computes per-team summary statistics over a completed
// schedule, for the CLI's post-generation printout.
package report

import (
	"sort"

	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/schedule"
)

// TeamStats is one team's season summary within a level.
type TeamStats struct {
	Team         string
	PlaysBySlot  map[int]int
	TotalPlays   int
	RefereeCount int
}

// LevelStats is a level's full team table, in configured team order.
type LevelStats struct {
	Level string
	Teams []TeamStats
}

// Summarize computes per-level, per-team play-by-slot counts and
// referee totals across the whole schedule.
func Summarize(cfg *config.Config, sched schedule.Schedule) []LevelStats {
	var out []LevelStats
	for _, level := range cfg.LevelNames() {
		teamCount := cfg.TeamCount(level)
		playsBySlot := make([]map[int]int, teamCount)
		refCounts := make([]int, teamCount)
		for i := range playsBySlot {
			playsBySlot[i] = map[int]int{}
		}

		for _, week := range sched {
			wa, ok := week[level]
			if !ok {
				continue
			}
			for i, p := range wa.Pairings {
				s := wa.Slots[i]
				playsBySlot[p.Low][s]++
				playsBySlot[p.High][s]++
			}
			for _, ref := range wa.Referees {
				refCounts[ref]++
			}
		}

		teams := make([]TeamStats, teamCount)
		for t := 0; t < teamCount; t++ {
			total := 0
			for _, c := range playsBySlot[t] {
				total += c
			}
			teams[t] = TeamStats{
				Team:         cfg.TeamName(level, t),
				PlaysBySlot:  playsBySlot[t],
				TotalPlays:   total,
				RefereeCount: refCounts[t],
			}
		}
		out = append(out, LevelStats{Level: level, Teams: teams})
	}
	return out
}

// RefereeSpread returns, for a level, the (min, max) referee count across
// its teams — used to report overall referee balance at a glance.
func RefereeSpread(stats LevelStats) (min, max int) {
	if len(stats.Teams) == 0 {
		return 0, 0
	}
	min, max = stats.Teams[0].RefereeCount, stats.Teams[0].RefereeCount
	for _, ts := range stats.Teams[1:] {
		if ts.RefereeCount < min {
			min = ts.RefereeCount
		}
		if ts.RefereeCount > max {
			max = ts.RefereeCount
		}
	}
	return min, max
}

// SortedSlots returns the slots used across a team's play counts in
// ascending order, for stable table rendering.
func SortedSlots(ts TeamStats) []int {
	slots := make([]int, 0, len(ts.PlaysBySlot))
	for s := range ts.PlaysBySlot {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	return slots
}
