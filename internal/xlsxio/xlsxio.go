// Package xlsxio exports a Schedule to an .xlsx workbook (a master sheet
// plus one sheet per team) and reads such a workbook back into parsed
// game rows for the `validate <schedule.xlsx>` CLI path.
package xlsxio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/platelminto/basketball-scheduler-sub000/internal/calendar"
	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/schedule"
)

// Export writes sched to an .xlsx workbook: one "Master Schedule" sheet
// (rows are weeks, columns are level/slot pairs) plus one sheet per team
// listing that team's own games and referee assignments.
func Export(cfg *config.Config, sched schedule.Schedule, seasonStart time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeMasterSheet(f, cfg, sched, seasonStart); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}
	if err := writeTeamSheets(f, cfg, sched); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeMasterSheet(f *excelize.File, cfg *config.Config, sched schedule.Schedule, seasonStart time.Time) error {
	sheet := "Master Schedule"
	f.NewSheet(sheet)

	levels := cfg.LevelNames()
	var columns []string
	type col struct {
		level string
		slot  int
	}
	var cols []col
	for _, level := range levels {
		for s := 1; s <= cfg.NumSlots; s++ {
			cols = append(cols, col{level, s})
			columns = append(columns, fmt.Sprintf("%s %s", level, calendar.SlotLabel(s)))
		}
	}

	headers := append([]string{"Week", "Date"}, columns...)
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
		}
	}

	dates := calendar.WeekDates(seasonStart, cfg.TotalWeeks)

	for w, week := range sched {
		row := w + 2
		f.SetCellValue(sheet, cellRef(1, row), w+1)
		if w < len(dates) {
			f.SetCellValue(sheet, cellRef(2, row), dates[w].Format("01/02/2006"))
		}

		for ci, c := range cols {
			wa, ok := week[c.level]
			if !ok {
				continue
			}
			var lines []string
			for i, p := range wa.Pairings {
				if wa.Slots[i] != c.slot {
					continue
				}
				lines = append(lines, fmt.Sprintf("%s @ %s (ref %s)",
					cfg.TeamName(c.level, p.High), cfg.TeamName(c.level, p.Low), cfg.TeamName(c.level, wa.Referees[i])))
			}
			if len(lines) > 0 {
				f.SetCellValue(sheet, cellRef(ci+3, row), strings.Join(lines, "\n"))
			}
		}
	}

	f.SetColWidth(sheet, "A", "B", 14)
	lastCol := colLetter(len(headers))
	f.SetColWidth(sheet, "C", lastCol, 32)
	return nil
}

func writeTeamSheets(f *excelize.File, cfg *config.Config, sched schedule.Schedule) error {
	for _, level := range cfg.LevelNames() {
		teamCount := cfg.TeamCount(level)
		for team := 0; team < teamCount; team++ {
			name := cfg.TeamName(level, team)
			sheet := sheetName(level, name)
			f.NewSheet(sheet)

			headers := []string{"Week", "Opponent", "Home/Away", "Slot", "Role"}
			for i, h := range headers {
				f.SetCellValue(sheet, cellRef(i+1, 1), h)
			}
			headerStyle, _ := f.NewStyle(&excelize.Style{
				Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
				Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
				Alignment: &excelize.Alignment{Horizontal: "center"},
			})
			if headerStyle != 0 {
				for i := range headers {
					f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
				}
			}

			row := 2
			for w, week := range sched {
				wa, ok := week[level]
				if !ok {
					continue
				}
				for i, p := range wa.Pairings {
					if p.Low == team {
						writeTeamRow(f, sheet, row, w, cfg.TeamName(level, p.High), "Home", wa.Slots[i])
						row++
					} else if p.High == team {
						writeTeamRow(f, sheet, row, w, cfg.TeamName(level, p.Low), "Away", wa.Slots[i])
						row++
					}
					if wa.Referees[i] == team {
						f.SetCellValue(sheet, cellRef(1, row), w+1)
						f.SetCellValue(sheet, cellRef(2, row), fmt.Sprintf("%s vs %s",
							cfg.TeamName(level, p.Low), cfg.TeamName(level, p.High)))
						f.SetCellValue(sheet, cellRef(4, row), wa.Slots[i])
						f.SetCellValue(sheet, cellRef(5, row), "Referee")
						row++
					}
				}
			}

			f.SetColWidth(sheet, "A", "A", 8)
			f.SetColWidth(sheet, "B", "B", 24)
			f.SetColWidth(sheet, "C", "E", 14)
		}
	}
	return nil
}

func writeTeamRow(f *excelize.File, sheet string, row, week int, opponent, homeAway string, slot int) {
	f.SetCellValue(sheet, cellRef(1, row), week+1)
	f.SetCellValue(sheet, cellRef(2, row), opponent)
	f.SetCellValue(sheet, cellRef(3, row), homeAway)
	f.SetCellValue(sheet, cellRef(4, row), slot)
	f.SetCellValue(sheet, cellRef(5, row), "Player")
}

// sheetName truncates to Excel's 31-character sheet-name limit.
func sheetName(level, team string) string {
	name := level + " " + team
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// ParsedGame is one game row read back from a master sheet, with team
// names resolved to level-local indices via cfg.
type ParsedGame struct {
	Week  int
	Level string
	Slot  int
	Home  int
	Away  int
	Ref   int
}

// ReadSchedule parses an exported workbook's "Master Schedule" sheet back
// into ParsedGame rows, for the validate CLI path. It is the inverse of
// Export's writeMasterSheet, reconstructing each cell's "Away @ Home (ref
// Referee)" lines.
func ReadSchedule(cfg *config.Config, path string) ([]ParsedGame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Master Schedule")
	if err != nil {
		return nil, fmt.Errorf("reading Master Schedule: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Master Schedule is empty")
	}

	header := rows[0]
	type levelSlotCol struct {
		index int
		level string
		slot  int
	}
	var cols []levelSlotCol
	for i := 2; i < len(header); i++ {
		level, slot, ok := parseColumnHeader(header[i])
		if !ok {
			continue
		}
		cols = append(cols, levelSlotCol{i, level, slot})
	}

	var games []ParsedGame
	for rowIdx, row := range rows {
		if rowIdx == 0 || len(row) == 0 {
			continue
		}
		week, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		for _, c := range cols {
			if c.index >= len(row) || row[c.index] == "" {
				continue
			}
			for _, line := range strings.Split(row[c.index], "\n") {
				away, home, ref, ok := parseGameLine(line)
				if !ok {
					continue
				}
				homeIdx := teamIndex(cfg, c.level, home)
				awayIdx := teamIndex(cfg, c.level, away)
				refIdx := teamIndex(cfg, c.level, ref)
				if homeIdx < 0 || awayIdx < 0 || refIdx < 0 {
					continue
				}
				games = append(games, ParsedGame{
					Week: week - 1, Level: c.level, Slot: c.slot,
					Home: homeIdx, Away: awayIdx, Ref: refIdx,
				})
			}
		}
	}
	return games, nil
}

func parseColumnHeader(header string) (level string, slot int, ok bool) {
	idx := strings.LastIndex(header, " Slot ")
	if idx < 0 {
		return "", 0, false
	}
	level = header[:idx]
	slotStr := header[idx+len(" Slot "):]
	s, err := strconv.Atoi(slotStr)
	if err != nil {
		return "", 0, false
	}
	return level, s, true
}

// parseGameLine parses "Away @ Home (ref Referee)".
func parseGameLine(line string) (away, home, ref string, ok bool) {
	sep := " @ "
	i := strings.Index(line, sep)
	if i < 0 {
		return "", "", "", false
	}
	away = line[:i]
	rest := line[i+len(sep):]

	refMarker := " (ref "
	j := strings.Index(rest, refMarker)
	if j < 0 || !strings.HasSuffix(rest, ")") {
		return "", "", "", false
	}
	home = rest[:j]
	ref = rest[j+len(refMarker) : len(rest)-1]
	return away, home, ref, true
}

func teamIndex(cfg *config.Config, level, name string) int {
	teamCount := cfg.TeamCount(level)
	for i := 0; i < teamCount; i++ {
		if cfg.TeamName(level, i) == name {
			return i
		}
	}
	return -1
}
