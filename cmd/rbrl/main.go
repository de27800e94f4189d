package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/engine"
	"github.com/platelminto/basketball-scheduler-sub000/internal/report"
	"github.com/platelminto/basketball-scheduler-sub000/internal/roundrobin"
	"github.com/platelminto/basketball-scheduler-sub000/internal/schedule"
	"github.com/platelminto/basketball-scheduler-sub000/internal/validator"
	"github.com/platelminto/basketball-scheduler-sub000/internal/xlsxio"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass the path as an argument", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "rbrl",
		Short: "Round-robin league schedule generator",
	}

	var outputFile string
	var maxAttempts int
	var seasonStartFlag string
	generateCmd := &cobra.Command{
		Use:          "generate [config.yaml]",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(args)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile, maxAttempts, seasonStartFlag)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Maximum attempts before giving up (0 = unlimited)")
	generateCmd.Flags().StringVar(&seasonStartFlag, "season-start", "", "Season start date (YYYY-MM-DD), for the exported date column")

	validateCmd := &cobra.Command{
		Use:          "validate [config.yaml] <schedule.xlsx>",
		Short:        "Validate an exported schedule against a config file",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				return runValidate(args[0], args[1])
			}
			configPath, err := resolveConfigPath(nil)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	rootCmd.AddCommand(generateCmd, validateCmd, initCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Round-robin league schedule configuration
# ==========================================
# This file defines the parameters for generating a season's schedule.

# Levels and their teams. Team counts must be even; team identity inside
# the engine is positional (index into this list), names are used only
# for display.
levels:
  - name: A
    teams: [T0, T1, T2, T3, T4, T5]
  - name: B
    teams: [T6, T7, T8, T9, T10, T11]
  - name: C
    teams: [T12, T13, T14, T15, T16, T17]

# The season is split into a first half (a full round-robin per level)
# and a mirrored second half reusing the same pairings. total_weeks must
# be exactly double first_half_weeks.
first_half_weeks: 5
total_weeks: 10

# Number of distinct time slots available per week.
num_slots: 4

# Courts (simultaneous games) available in each slot, per week, 1-indexed
# by slot. Each week's column must sum to the total games played that
# week across all levels.
courts_per_slot:
  1: [1, 1, 2, 2, 2, 2, 2, 2, 2, 2]
  2: [3, 3, 2, 2, 2, 2, 2, 2, 2, 2]
  3: [2, 2, 2, 2, 2, 2, 2, 2, 2, 2]
  4: [3, 3, 3, 3, 3, 3, 3, 3, 3, 3]

# Season-long cap on how many times a team may play in a given slot.
slot_limits:
  1: 4
  2: 6
  3: 6
  4: 4

# Referee count bounds, per team, across the season.
min_referee_count: 3
max_referee_count: 7

# Slots the balancer penalizes more heavily when slot_limits is exceeded.
priority_slots: [1, 4]

# Balancer tuning (all optional; defaults shown).
balancer:
  max_iterations: 200
  weight_play: 0.1
  weight_ref: 10.0
  cooling_rate: 0.9
  initial_temp: 5.0
  candidate_prob: 1.0
  swap_prob: 0.0
  violation_penalty: 1000000
  priority_multiplier: 100
`

func runGenerate(configPath, outputPath string, maxAttempts int, seasonStartFlag string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	seasonStart := time.Now()
	if seasonStartFlag != "" {
		seasonStart, err = time.Parse("2006-01-02", seasonStartFlag)
		if err != nil {
			return fmt.Errorf("parsing --season-start: %w", err)
		}
	}

	fmt.Printf("Searching for a valid schedule across %d level(s)...\n", len(cfg.Levels))

	result, err := engine.FindSchedule(context.Background(), cfg, engine.Options{MaxAttempts: maxAttempts})
	if err != nil {
		return fmt.Errorf("generating schedule: %w", err)
	}

	fmt.Printf("✓ Found a valid schedule after %d attempt(s) in %s\n",
		result.Diagnostics.Attempts, result.Diagnostics.Elapsed.Round(time.Millisecond))

	fmt.Println("\nPer Team Summary:")
	for _, levelStats := range report.Summarize(cfg, result.Schedule) {
		fmt.Printf("  Level %s\n", levelStats.Level)
		fmt.Printf("    %-15s %8s %s\n", "Team", "Referee", "Plays by slot")
		for _, ts := range levelStats.Teams {
			fmt.Printf("    %-15s %8d %v\n", ts.Team, ts.RefereeCount, ts.PlaysBySlot)
		}
		min, max := report.RefereeSpread(levelStats)
		fmt.Printf("    referee spread: %d-%d\n", min, max)
	}

	f, err := xlsxio.Export(cfg, result.Schedule, seasonStart)
	if err != nil {
		return fmt.Errorf("exporting schedule: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	games, err := xlsxio.ReadSchedule(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("reading schedule: %w", err)
	}

	sched := rebuildSchedule(cfg, games)
	violations := validator.Validate(cfg, sched)

	errs := 0
	for _, v := range violations {
		errs++
		fmt.Printf("✗ %s\n", v.Message)
	}

	fmt.Printf("\nValidation complete: %d violation(s)\n", errs)
	if errs > 0 {
		return fmt.Errorf("%d constraint violations found", errs)
	}
	fmt.Println("✓ Schedule is valid")
	return nil
}

// rebuildSchedule reassembles a schedule.Schedule from parsed game rows,
// so the validator can run its struct-based checks against an xlsx
// export that may have been hand-edited since generation.
func rebuildSchedule(cfg *config.Config, games []xlsxio.ParsedGame) schedule.Schedule {
	weekCount := cfg.TotalWeeks
	sched := make(schedule.Schedule, weekCount)
	for w := range sched {
		sched[w] = schedule.Week{}
	}

	type levelWeek struct {
		week  int
		level string
	}
	grouped := map[levelWeek][]xlsxio.ParsedGame{}
	for _, g := range games {
		key := levelWeek{g.Week, g.Level}
		grouped[key] = append(grouped[key], g)
	}

	for key, gs := range grouped {
		if key.week < 0 || key.week >= weekCount {
			continue
		}
		wa := schedule.WeekAssignment{
			Slots:    make([]int, len(gs)),
			Pairings: make([]roundrobin.Pairing, len(gs)),
			Referees: make([]int, len(gs)),
		}
		for i, g := range gs {
			wa.Slots[i] = g.Slot
			wa.Pairings[i] = roundrobin.NewPairing(g.Home, g.Away)
			wa.Referees[i] = g.Ref
		}
		sched[key.week][key.level] = wa
	}
	return sched
}
