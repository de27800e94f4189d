package candidateslots

import (
	"math/rand/v2"
	"testing"
)

// TestEnumerateSatisfiesConstraints is Property P3 (slot contiguity per
// level per week): every returned vector uses a contiguous slot range of
// size >= 2, and no slot holds more than teamCount/3 games.
func TestEnumerateSatisfiesConstraints(t *testing.T) {
	const teamCount = 6 // games = 3, maxLocal = 2
	const numSlots = 4

	vectors := Enumerate(teamCount, numSlots)
	if len(vectors) == 0 {
		t.Fatal("expected at least one candidate vector")
	}

	maxLocal := teamCount / 3
	for _, v := range vectors {
		counts := make(map[int]int)
		for _, s := range v {
			counts[s]++
			if counts[s] > maxLocal {
				t.Fatalf("vector %v: slot %d exceeds maxLocal %d", v, s, maxLocal)
			}
		}
		if len(counts) < 2 {
			t.Fatalf("vector %v: uses fewer than 2 distinct slots", v)
		}
		min, max := numSlots+1, 0
		for s := range counts {
			if s < min {
				min = s
			}
			if s > max {
				max = s
			}
		}
		if max-min+1 != len(counts) {
			t.Fatalf("vector %v: slot set is not contiguous", v)
		}
	}
}

func TestEnumerateIsMemoized(t *testing.T) {
	a := Enumerate(6, 4)
	b := Enumerate(6, 4)
	if len(a) != len(b) {
		t.Fatalf("expected memoized results to have equal length, got %d and %d", len(a), len(b))
	}
}

func TestEnumerateRejectsAllSameSlot(t *testing.T) {
	for _, v := range Enumerate(6, 4) {
		allSame := true
		for _, s := range v {
			if s != v[0] {
				allSame = false
			}
		}
		if allSame {
			t.Fatalf("vector %v uses only one distinct slot", v)
		}
	}
}

func TestShuffledDoesNotMutateCache(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	before := Enumerate(6, 4)
	_ = Shuffled(6, 4, rng)
	after := Enumerate(6, 4)
	if len(before) != len(after) {
		t.Fatalf("cache length changed after Shuffled: %d vs %d", len(before), len(after))
	}
}
