// Package config loads and validates the scheduler's input configuration
// (C1). A Config is an immutable value once loaded: nothing downstream
// mutates it.
package config

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/platelminto/basketball-scheduler-sub000/internal/enginerr"
)

// BalancerParams tunes the simulated-annealing balancer (C7).
type BalancerParams struct {
	MaxIterations      int     `yaml:"max_iterations"`
	WeightPlay         float64 `yaml:"weight_play"`
	WeightRef          float64 `yaml:"weight_ref"`
	CoolingRate        float64 `yaml:"cooling_rate"`
	InitialTemp        float64 `yaml:"initial_temp"`
	CandidateProb      float64 `yaml:"candidate_prob"`
	SwapProb           float64 `yaml:"swap_prob"`
	ViolationPenalty   float64 `yaml:"violation_penalty"`
	PriorityMultiplier float64 `yaml:"priority_multiplier"`
}

// DefaultBalancerParams mirrors the defaults original_source/schedule.py's
// balance_schedule uses when the caller doesn't override them.
func DefaultBalancerParams() BalancerParams {
	return BalancerParams{
		MaxIterations:      200,
		WeightPlay:         0.1,
		WeightRef:          10.0,
		CoolingRate:        0.9,
		InitialTemp:        5.0,
		CandidateProb:      1.0,
		SwapProb:           0.0,
		ViolationPenalty:   1e6,
		PriorityMultiplier: 100,
	}
}

// Level holds a level identifier plus its ordered team names. Team
// identity inside the engine is the team's index into Teams; the name
// table is carried only at the boundary (§9 "Arena+index").
type Level struct {
	Name  string   `yaml:"name"`
	Teams []string `yaml:"teams"`
}

// Config is the engine's pure input value (§3).
type Config struct {
	Levels          []Level        `yaml:"levels"`
	FirstHalfWeeks  int            `yaml:"first_half_weeks"`
	TotalWeeks      int            `yaml:"total_weeks"`
	NumSlots        int            `yaml:"num_slots"`
	CourtsPerSlot   map[int][]int  `yaml:"courts_per_slot"`
	SlotLimits      map[int]int    `yaml:"slot_limits"`
	MinRefereeCount int            `yaml:"min_referee_count"`
	MaxRefereeCount int            `yaml:"max_referee_count"`
	PrioritySlots   []int          `yaml:"priority_slots"`
	Balancer        BalancerParams `yaml:"balancer"`
}

// LevelNames returns the level identifiers in configured order.
func (c *Config) LevelNames() []string {
	names := make([]string, len(c.Levels))
	for i, l := range c.Levels {
		names[i] = l.Name
	}
	return names
}

// TeamCount returns the number of teams in the named level, or 0 if the
// level doesn't exist.
func (c *Config) TeamCount(level string) int {
	for _, l := range c.Levels {
		if l.Name == level {
			return len(l.Teams)
		}
	}
	return 0
}

// TeamName maps a level's team index back to its configured name.
func (c *Config) TeamName(level string, idx int) string {
	for _, l := range c.Levels {
		if l.Name == level {
			if idx >= 0 && idx < len(l.Teams) {
				return l.Teams[idx]
			}
		}
	}
	return fmt.Sprintf("team-%d", idx)
}

// LoadFromBytes parses YAML bytes into a Config, applies balancer
// defaults for anything left zero, and runs C1 validation.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := &Config{Balancer: DefaultBalancerParams()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, enginerr.Wrap(enginerr.InvalidConfig, err, "parsing config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, enginerr.Wrap(enginerr.InvalidConfig, err, "reading config file")
	}
	return LoadFromBytes(data)
}

// validate runs every C1 check from spec.md §4.1. It fails fast on the
// first hard violation; sum-of-slot-limits is a warning, not a failure,
// matching original_source/schedule.py's _validate_config.
func (c *Config) validate() error {
	if len(c.Levels) == 0 {
		return enginerr.New(enginerr.InvalidConfig, "at least one level is required")
	}

	totalTeams := 0
	totalGamesPerRound := 0
	for _, l := range c.Levels {
		if len(l.Teams) == 0 {
			return enginerr.New(enginerr.InvalidConfig, "level %q has no teams", l.Name)
		}
		if len(l.Teams)%2 != 0 {
			return enginerr.New(enginerr.InvalidConfig,
				"level %q has an odd team count (%d); the engine assumes even team counts per level",
				l.Name, len(l.Teams))
		}
		totalTeams += len(l.Teams)
		totalGamesPerRound += len(l.Teams) / 2
	}
	if totalTeams%2 != 0 {
		return enginerr.New(enginerr.InvalidConfig, "sum of teams across levels (%d) must be even", totalTeams)
	}

	if c.FirstHalfWeeks <= 0 {
		return enginerr.New(enginerr.InvalidConfig, "first_half_weeks must be positive")
	}
	if c.TotalWeeks != c.FirstHalfWeeks*2 {
		return enginerr.New(enginerr.InvalidConfig,
			"total_weeks (%d) must be exactly double first_half_weeks (%d)", c.TotalWeeks, c.FirstHalfWeeks)
	}

	if c.NumSlots <= 0 {
		return enginerr.New(enginerr.InvalidConfig, "num_slots must be positive")
	}

	if len(c.CourtsPerSlot) == 0 {
		return enginerr.New(enginerr.InvalidConfig, "courts_per_slot is required")
	}
	for s := range c.CourtsPerSlot {
		if s < 1 || s > c.NumSlots {
			return enginerr.New(enginerr.InvalidConfig, "courts_per_slot key %d is outside the valid range 1-%d", s, c.NumSlots)
		}
	}
	for s, weeks := range c.CourtsPerSlot {
		if len(weeks) != c.TotalWeeks {
			return enginerr.New(enginerr.InvalidConfig,
				"courts_per_slot[%d] has %d weeks of data, expected %d", s, len(weeks), c.TotalWeeks)
		}
	}
	for w := 0; w < c.TotalWeeks; w++ {
		sum := 0
		for s := 1; s <= c.NumSlots; s++ {
			if weeks, ok := c.CourtsPerSlot[s]; ok && w < len(weeks) {
				sum += weeks[w]
			}
		}
		if sum != totalGamesPerRound {
			return enginerr.New(enginerr.InvalidConfig,
				"week %d: sum of courts per slot (%d) must equal total games per round (%d)", w+1, sum, totalGamesPerRound)
		}
	}

	if c.MinRefereeCount < 0 || c.MaxRefereeCount < c.MinRefereeCount {
		return enginerr.New(enginerr.InvalidConfig, "invalid min/max referee count values (%d/%d)", c.MinRefereeCount, c.MaxRefereeCount)
	}

	for _, s := range c.PrioritySlots {
		if s < 1 || s > c.NumSlots {
			return enginerr.New(enginerr.InvalidConfig, "priority slot %d is outside the valid range 1-%d", s, c.NumSlots)
		}
	}

	if len(c.SlotLimits) == 0 {
		return enginerr.New(enginerr.InvalidConfig, "slot_limits is required")
	}
	if totalTeams > 0 && c.TotalWeeks > 0 {
		totalGamesInSeason := totalGamesPerRound * c.TotalWeeks
		avgGamesPerTeam := float64(totalGamesInSeason*2) / float64(totalTeams)
		sumLimits := 0
		for _, limit := range c.SlotLimits {
			sumLimits += limit
		}
		if float64(sumLimits) < math.Ceil(avgGamesPerTeam) {
			// Non-fatal: mirrors original_source's printed warning.
			fmt.Printf("warning: sum of slot limits (%d) is less than average games per team (%.2f)\n", sumLimits, avgGamesPerTeam)
		}
	}

	return nil
}

// SlotLimitEntry is one (slot, limit) pair from SlotLimits in ascending
// slot order.
type SlotLimitEntry struct {
	Slot  int
	Limit int
}

// SortedSlotLimits returns slot_limits as ascending (slot, limit) pairs.
func (c *Config) SortedSlotLimits() []SlotLimitEntry {
	keys := make([]int, 0, len(c.SlotLimits))
	for k := range c.SlotLimits {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]SlotLimitEntry, len(keys))
	for i, k := range keys {
		out[i] = SlotLimitEntry{Slot: k, Limit: c.SlotLimits[k]}
	}
	return out
}
