package schedule

import (
	"math/rand/v2"
	"testing"

	"github.com/platelminto/basketball-scheduler-sub000/internal/roundrobin"
)

// TestSolveMirrorPreservesPairings is Property P8 (mirror): for every
// level and w < first_half_weeks, the pairing set of week w equals that
// of week w+first_half_weeks.
func TestSolveMirrorPreservesPairings(t *testing.T) {
	cfg := scenarioS2Config()
	rr := GenerateRRPairings(cfg)
	rng := rand.New(rand.NewPCG(5, 5))

	firstHalf, tally, err := SolveHalf(cfg, rr, rng)
	if err != nil {
		t.Fatalf("SolveHalf failed: %v", err)
	}

	secondHalf, _, err := SolveMirror(cfg, firstHalf, tally, rng)
	if err != nil {
		t.Fatalf("SolveMirror failed: %v", err)
	}
	if len(secondHalf) != cfg.FirstHalfWeeks {
		t.Fatalf("expected %d mirror weeks, got %d", cfg.FirstHalfWeeks, len(secondHalf))
	}

	for w := 0; w < cfg.FirstHalfWeeks; w++ {
		for _, level := range cfg.LevelNames() {
			want := pairingSet(firstHalf[w][level].Pairings)
			got := pairingSet(secondHalf[w][level].Pairings)
			if len(want) != len(got) {
				t.Fatalf("week %d level %s: pairing set size mismatch", w, level)
			}
			for p := range want {
				if !got[p] {
					t.Errorf("week %d level %s: mirror missing pairing %v", w, level, p)
				}
			}
		}
	}
}

func TestSolveMirrorRespectsCourtCapacityAtOffsetWeek(t *testing.T) {
	cfg := scenarioS2Config()
	rr := GenerateRRPairings(cfg)
	rng := rand.New(rand.NewPCG(6, 6))

	firstHalf, tally, err := SolveHalf(cfg, rr, rng)
	if err != nil {
		t.Fatalf("SolveHalf failed: %v", err)
	}
	secondHalf, _, err := SolveMirror(cfg, firstHalf, tally, rng)
	if err != nil {
		t.Fatalf("SolveMirror failed: %v", err)
	}

	for w, week := range secondHalf {
		actualWeek := w + cfg.FirstHalfWeeks
		counts := map[int]int{}
		for _, wa := range week {
			for _, s := range wa.Slots {
				counts[s]++
			}
		}
		for s := 1; s <= cfg.NumSlots; s++ {
			want := cfg.CourtsPerSlot[s][actualWeek]
			if counts[s] != want {
				t.Errorf("mirror week %d (actual %d) slot %d: got %d games, want %d", w, actualWeek, s, counts[s], want)
			}
		}
	}
}

func pairingSet(pairings []roundrobin.Pairing) map[[2]int]bool {
	out := make(map[[2]int]bool, len(pairings))
	for _, p := range pairings {
		out[[2]int{p.Low, p.High}] = true
	}
	return out
}
