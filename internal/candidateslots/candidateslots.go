// Package candidateslots implements C3: enumeration of feasible per-level
// slot assignments for one round, memoized by (team count, slot count)
// per spec.md §9.
package candidateslots

import (
	"math/rand/v2"
	"sync"
)

// Vector assigns a slot (1-indexed) to each of a level's games in one
// round. len(Vector) == teamCount/2.
type Vector []int

var (
	cacheMu sync.Mutex
	cache   = map[cacheKey][]Vector{}
)

type cacheKey struct {
	teamCount int
	numSlots  int
}

// Enumerate returns every slot vector satisfying, for a level with
// teamCount teams and numSlots available slots:
//
//   - no slot holds more than teamCount/3 games (maxLocal),
//   - at least two distinct slots are used,
//   - the set of used slots is an integer-contiguous range.
//
// Results are memoized by (teamCount, numSlots); callers that want a
// fresh ordering should shuffle the returned slice themselves (or call
// Shuffled, which does it without mutating the cache).
func Enumerate(teamCount, numSlots int) []Vector {
	key := cacheKey{teamCount, numSlots}

	cacheMu.Lock()
	if v, ok := cache[key]; ok {
		cacheMu.Unlock()
		return v
	}
	cacheMu.Unlock()

	games := teamCount / 2
	if games == 0 || numSlots <= 0 {
		return nil
	}
	maxLocal := teamCount / 3

	var out []Vector
	vec := make(Vector, games)
	var walk func(pos int)
	walk = func(pos int) {
		if pos == games {
			if valid(vec, numSlots, maxLocal) {
				cp := make(Vector, games)
				copy(cp, vec)
				out = append(out, cp)
			}
			return
		}
		for s := 1; s <= numSlots; s++ {
			vec[pos] = s
			walk(pos + 1)
		}
	}
	walk(0)

	cacheMu.Lock()
	cache[key] = out
	cacheMu.Unlock()
	return out
}

func valid(vec Vector, numSlots, maxLocal int) bool {
	counts := make([]int, numSlots+1)
	for _, s := range vec {
		counts[s]++
		if counts[s] > maxLocal {
			return false
		}
	}
	minSlot, maxSlot, distinct := 0, 0, 0
	for s := 1; s <= numSlots; s++ {
		if counts[s] > 0 {
			if distinct == 0 {
				minSlot = s
			}
			maxSlot = s
			distinct++
		}
	}
	if distinct < 2 {
		return false
	}
	return maxSlot-minSlot+1 == distinct
}

// Shuffled returns a shuffled copy of Enumerate's result, diversifying
// the search order per attempt without disturbing the shared cache.
func Shuffled(teamCount, numSlots int, rng *rand.Rand) []Vector {
	base := Enumerate(teamCount, numSlots)
	out := make([]Vector, len(base))
	copy(out, base)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
