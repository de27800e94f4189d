package validator

import (
	"math/rand/v2"
	"testing"

	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/roundrobin"
	"github.com/platelminto/basketball-scheduler-sub000/internal/schedule"
)

func scenarioS2Config() *config.Config {
	return &config.Config{
		Levels: []config.Level{
			{Name: "A", Teams: []string{"T0", "T1", "T2", "T3"}},
		},
		FirstHalfWeeks: 3,
		TotalWeeks:     6,
		NumSlots:       2,
		CourtsPerSlot: map[int][]int{
			1: {1, 1, 1, 1, 1, 1},
			2: {1, 1, 1, 1, 1, 1},
		},
		SlotLimits:      map[int]int{1: 3, 2: 3},
		MinRefereeCount: 1,
		MaxRefereeCount: 5,
		Balancer:        config.DefaultBalancerParams(),
	}
}

func buildFullSchedule(t *testing.T, cfg *config.Config, seed uint64) schedule.Schedule {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	rr := schedule.GenerateRRPairings(cfg)
	firstHalf, tally, err := schedule.SolveHalf(cfg, rr, rng)
	if err != nil {
		t.Fatalf("SolveHalf failed: %v", err)
	}
	secondHalf, _, err := schedule.SolveMirror(cfg, firstHalf, tally, rng)
	if err != nil {
		t.Fatalf("SolveMirror failed: %v", err)
	}
	return append(firstHalf, secondHalf...)
}

func TestValidateAcceptsGeneratedSchedule(t *testing.T) {
	cfg := scenarioS2Config()
	sched := buildFullSchedule(t, cfg, 20)

	violations := Validate(cfg, sched)
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

// TestValidateIsIdempotent is Property P9.
func TestValidateIsIdempotent(t *testing.T) {
	cfg := scenarioS2Config()
	sched := buildFullSchedule(t, cfg, 21)

	first := Validate(cfg, sched)
	second := Validate(cfg, sched)
	if len(first) != len(second) {
		t.Fatalf("validation is not idempotent: first=%d second=%d violations", len(first), len(second))
	}
}

func TestCheckNoSelfRefereeCatchesViolation(t *testing.T) {
	cfg := scenarioS2Config()
	sched := buildFullSchedule(t, cfg, 22)

	wa := sched[0]["A"]
	wa.Referees = append([]int(nil), wa.Referees...)
	wa.Referees[0] = wa.Pairings[0].Low
	sched[0]["A"] = wa

	violations := checkNoSelfReferee(cfg, sched)
	if len(violations) == 0 {
		t.Error("expected a self-referee violation to be caught")
	}
}

func TestCheckCourtCapacityCatchesViolation(t *testing.T) {
	cfg := scenarioS2Config()
	sched := buildFullSchedule(t, cfg, 23)

	wa := sched[0]["A"]
	wa.Slots = append([]int(nil), wa.Slots...)
	wa.Slots[0] = wa.Slots[1]
	sched[0]["A"] = wa

	violations := checkCourtCapacity(cfg, sched)
	if len(violations) == 0 {
		t.Error("expected a court capacity violation to be caught")
	}
}

func TestCheckMirrorPairingsCatchesViolation(t *testing.T) {
	cfg := scenarioS2Config()
	sched := buildFullSchedule(t, cfg, 24)

	mirrorWA := sched[cfg.FirstHalfWeeks]["A"]
	mirrorWA.Pairings = append([]roundrobin.Pairing(nil), mirrorWA.Pairings...)
	mirrorWA.Pairings[0].Low, mirrorWA.Pairings[0].High = mirrorWA.Pairings[0].High+10, mirrorWA.Pairings[0].Low+10
	sched[cfg.FirstHalfWeeks]["A"] = mirrorWA

	violations := checkMirrorPairings(cfg, sched)
	if len(violations) == 0 {
		t.Error("expected a mirror pairing violation to be caught")
	}
}
