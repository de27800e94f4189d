package roundrobin

import "testing"

func TestGenerateProducesNMinusOneRounds(t *testing.T) {
	rounds := Generate(6)
	if len(rounds) != 5 {
		t.Fatalf("expected 5 rounds for 6 teams, got %d", len(rounds))
	}
	for i, round := range rounds {
		if len(round) != 3 {
			t.Errorf("round %d: expected 3 pairings, got %d", i, len(round))
		}
	}
}

// TestGenerateCoversEveryPairExactlyOnce is Property P1 (round-robin
// coverage): over n-1 consecutive weeks, every unordered pair of teams
// in the level appears exactly once.
func TestGenerateCoversEveryPairExactlyOnce(t *testing.T) {
	const n = 6
	rounds := Generate(n)

	seen := make(map[Pairing]int)
	for _, round := range rounds {
		for _, p := range round {
			seen[p]++
		}
	}

	want := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			want++
			p := NewPairing(i, j)
			if seen[p] != 1 {
				t.Errorf("pair %v seen %d times, want 1", p, seen[p])
			}
		}
	}
	if len(seen) != want {
		t.Errorf("expected %d distinct pairs, got %d", want, len(seen))
	}
}

func TestGenerateEachRoundCoversEveryTeamOnce(t *testing.T) {
	const n = 8
	rounds := Generate(n)
	for i, round := range rounds {
		seen := make(map[int]bool)
		for _, p := range round {
			if seen[p.Low] || seen[p.High] {
				t.Fatalf("round %d: team appears twice: %+v", i, round)
			}
			seen[p.Low] = true
			seen[p.High] = true
		}
		if len(seen) != n {
			t.Errorf("round %d: expected %d distinct teams, got %d", i, n, len(seen))
		}
	}
}

func TestGenerateRejectsOddOrTooSmall(t *testing.T) {
	if Generate(5) != nil {
		t.Error("expected nil for odd team count")
	}
	if Generate(1) != nil {
		t.Error("expected nil for teamCount < 2")
	}
}

func TestNewPairingCanonical(t *testing.T) {
	if NewPairing(3, 1) != (Pairing{1, 3}) {
		t.Error("expected canonical (low, high) ordering regardless of argument order")
	}
}

func TestRoundRobinLength(t *testing.T) {
	if RoundRobinLength(6) != 5 {
		t.Errorf("expected 5, got %d", RoundRobinLength(6))
	}
}
