// Package roundrobin implements C2: the circle-method round-robin
// pairing generator. Teams are identified by their index into a level's
// team list (§9 "Arena+index"); name resolution happens at the boundary.
package roundrobin

// Pairing is an unordered pair of team indices within a level, stored
// canonically as (Low, High) so two pairings compare equal regardless of
// generation order.
type Pairing struct {
	Low, High int
}

// NewPairing builds a canonical Pairing from two team indices.
func NewPairing(a, b int) Pairing {
	if a < b {
		return Pairing{a, b}
	}
	return Pairing{b, a}
}

// Generate produces the round-robin length (n-1 for even n) rounds of
// pairings for a level with teamCount teams, using the circle method:
// fix team 0, rotate the rest. Each round lists teamCount/2 pairings
// covering every team exactly once. Deterministic given teamCount.
//
// teamCount must be even and positive; callers validate this at C1
// before reaching here.
func Generate(teamCount int) [][]Pairing {
	if teamCount < 2 || teamCount%2 != 0 {
		return nil
	}

	rounds := teamCount - 1
	gamesPerRound := teamCount / 2

	// teams is the rotating arrangement; teams[0] stays fixed, the rest
	// rotate one position clockwise each round.
	teams := make([]int, teamCount)
	for i := range teams {
		teams[i] = i
	}

	result := make([][]Pairing, 0, rounds)
	for r := 0; r < rounds; r++ {
		round := make([]Pairing, 0, gamesPerRound)
		for i := 0; i < gamesPerRound; i++ {
			a := teams[i]
			b := teams[teamCount-1-i]
			round = append(round, NewPairing(a, b))
		}
		result = append(result, round)
		rotate(teams)
	}
	return result
}

// rotate performs one circle-method rotation in place: team 0 stays
// fixed, the last team moves to position 1, and everything else shifts
// one slot to the right.
func rotate(teams []int) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	for i := len(teams) - 1; i > 1; i-- {
		teams[i] = teams[i-1]
	}
	teams[1] = last
}

// RoundRobinLength returns n-1, the number of weeks a single round-robin
// needs for n (even) teams.
func RoundRobinLength(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	return teamCount - 1
}
