package config

import (
	"strings"
	"testing"

	"github.com/platelminto/basketball-scheduler-sub000/internal/enginerr"
)

func scenarioS1YAML() string {
	return `
levels:
  - name: A
    teams: [A1, A2, A3, A4, A5, A6]
  - name: B
    teams: [B1, B2, B3, B4, B5, B6]
  - name: C
    teams: [C1, C2, C3, C4, C5, C6]
first_half_weeks: 5
total_weeks: 10
num_slots: 4
courts_per_slot:
  1: [1, 1, 2, 2, 2, 2, 2, 2, 2, 2]
  2: [3, 3, 2, 2, 2, 2, 2, 2, 2, 2]
  3: [2, 2, 2, 2, 2, 2, 2, 2, 2, 2]
  4: [3, 3, 3, 3, 3, 3, 3, 3, 3, 3]
slot_limits:
  1: 4
  2: 6
  3: 6
  4: 4
min_referee_count: 3
max_referee_count: 7
priority_slots: [1, 4]
`
}

func TestLoadFromBytesScenarioS1(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(scenarioS1YAML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Levels) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(cfg.Levels))
	}
	if cfg.TeamCount("A") != 6 {
		t.Errorf("expected level A to have 6 teams, got %d", cfg.TeamCount("A"))
	}
	if cfg.TeamName("A", 0) != "A1" {
		t.Errorf("expected team 0 in level A to be A1, got %q", cfg.TeamName("A", 0))
	}
	// Balancer defaults should have been applied since the YAML omits them.
	if cfg.Balancer.MaxIterations != 200 {
		t.Errorf("expected default max_iterations 200, got %d", cfg.Balancer.MaxIterations)
	}
}

func TestLoadFromBytesRejectsOddTeamCount(t *testing.T) {
	yaml := strings.Replace(scenarioS1YAML(), "teams: [A1, A2, A3, A4, A5, A6]", "teams: [A1, A2, A3, A4, A5]", 1)
	_, err := LoadFromBytes([]byte(yaml))
	if err == nil {
		t.Fatal("expected error for odd team count, got nil")
	}
	if !enginerr.Is(err, enginerr.InvalidConfig) {
		t.Errorf("expected InvalidConfig, got %v", err)
	}
}

func TestLoadFromBytesRejectsMismatchedTotalWeeks(t *testing.T) {
	yaml := strings.Replace(scenarioS1YAML(), "total_weeks: 10", "total_weeks: 9", 1)
	_, err := LoadFromBytes([]byte(yaml))
	if !enginerr.Is(err, enginerr.InvalidConfig) {
		t.Errorf("expected InvalidConfig, got %v", err)
	}
}

func TestLoadFromBytesRejectsCourtsPerSlotMismatch(t *testing.T) {
	// Scenario S3: slot 1 week 1 bumped so the weekly sum no longer
	// equals total games per round (9 across 3 levels of 6 teams each).
	yaml := strings.Replace(scenarioS1YAML(), "1: [1, 1, 2, 2, 2, 2, 2, 2, 2, 2]", "1: [10, 1, 2, 2, 2, 2, 2, 2, 2, 2]", 1)
	_, err := LoadFromBytes([]byte(yaml))
	if !enginerr.Is(err, enginerr.InvalidConfig) {
		t.Errorf("expected InvalidConfig, got %v", err)
	}
}

func TestLoadFromBytesRejectsBadRefereeBounds(t *testing.T) {
	yaml := strings.Replace(scenarioS1YAML(), "max_referee_count: 7", "max_referee_count: 1", 1)
	_, err := LoadFromBytes([]byte(yaml))
	if !enginerr.Is(err, enginerr.InvalidConfig) {
		t.Errorf("expected InvalidConfig, got %v", err)
	}
}

func TestSortedSlotLimits(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(scenarioS1YAML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := cfg.SortedSlotLimits()
	want := []int{1, 2, 3, 4}
	for i, e := range entries {
		if e.Slot != want[i] {
			t.Errorf("entry %d: expected slot %d, got %d", i, want[i], e.Slot)
		}
	}
}
