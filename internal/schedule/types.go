// Package schedule holds the engine's core domain values (WeekAssignment,
// Schedule) and the backtracking solvers that build them: C5 (half-
// schedule solver) and C6 (mirror solver).
package schedule

import "github.com/platelminto/basketball-scheduler-sub000/internal/roundrobin"

// WeekAssignment is one level's game slate for one week: three
// index-aligned vectors of length teams/2 (§3). Game i pairs
// Pairings[i], plays in Slots[i], refereed by Referees[i].
type WeekAssignment struct {
	Slots     []int
	Pairings  []roundrobin.Pairing
	Referees  []int
}

// Week maps a level name to its assignment for that week.
type Week map[string]WeekAssignment

// Schedule is the full season: TotalWeeks week-maps.
type Schedule []Week

// RefTallies tracks, per level, per team index, the running referee
// count. Carried forward week to week within a half; the second half's
// initial tallies are the first half's final tallies.
type RefTallies map[string]map[int]int

// Clone returns a deep copy so a caller can snapshot tallies before a
// speculative mutation.
func (t RefTallies) Clone() RefTallies {
	out := make(RefTallies, len(t))
	for level, m := range t {
		cp := make(map[int]int, len(m))
		for team, count := range m {
			cp[team] = count
		}
		out[level] = cp
	}
	return out
}

// RRPairings holds each level's fixed round-robin rounds, produced once
// by C2 and reused by both C5 and C6.
type RRPairings map[string][][]roundrobin.Pairing
